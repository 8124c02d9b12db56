// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/maxviazov/wealth-balance-service/internal/importer"
	"github.com/maxviazov/wealth-balance-service/internal/model"
	"github.com/maxviazov/wealth-balance-service/internal/pagination"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// NewInvalidInputError lets transport code report request-shape problems
// (unparsable query params, malformed bodies) in the same envelope.
func NewInvalidInputError(fe ...FieldError) error {
	return newInvalidInput(fe)
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// ImportRejectedError lists every record that failed conversion. Nothing is
// stored when it is returned.
type ImportRejectedError struct {
	Errors []importer.IndexedError
}

func (e *ImportRejectedError) Error() string {
	return fmt.Sprintf("import rejected: %d invalid record(s)", len(e.Errors))
}

func (e *ImportRejectedError) Unwrap() error { return ErrInvalidInput }

// Messages returns one line per rejected record in payload order.
func (e *ImportRejectedError) Messages() []string {
	out := make([]string, len(e.Errors))
	for i, ie := range e.Errors {
		out[i] = ie.Error()
	}
	return out
}

// ImportResult identifies a stored batch.
type ImportResult struct {
	BatchID uuid.UUID `json:"batch_id"`
	Count   int       `json:"count"`
}

// BalanceService defines balance snapshot use cases.
type BalanceService interface {
	ListBalances(ctx context.Context, req pagination.Request) (pagination.Connection[model.BalanceNode], error)
	ImportAssets(ctx context.Context, records []importer.Record) (ImportResult, error)
}
