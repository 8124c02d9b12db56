package response_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/wealth-balance-service/internal/importer"
	"github.com/maxviazov/wealth-balance-service/internal/repository"
	"github.com/maxviazov/wealth-balance-service/internal/service"
	"github.com/maxviazov/wealth-balance-service/pkg/response"
)

// fakeInvalid mimics service aggregated validation error to test mapping without reaching into internals.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

func TestMapError(t *testing.T) {
	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
	}{
		{"ok", nil, 200, "ok"},
		{"invalid_input", &fakeInvalid{fe: []service.FieldError{{Field: "first", Message: "bad"}}}, 400, "invalid_input"},
		{"not_found", repository.ErrNotFound, 404, "not_found"},
		{"already_exists", repository.ErrAlreadyExists, 409, "already_exists"},
		{"conflict", repository.ErrConflict, 409, "conflict"},
		{"unavailable", fmt.Errorf("ping: %w", repository.ErrUnavailable), 503, "unavailable"},
		{"timeout", context.DeadlineExceeded, 504, "timeout"},
		{"internal", errors.New("boom"), 500, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantErr, payload.Error)
			if tc.wantErr == "invalid_input" {
				assert.NotEmpty(t, payload.FieldErrors)
			}
		})
	}
}

func TestMapError_ImportRejected(t *testing.T) {
	err := &service.ImportRejectedError{Errors: []importer.IndexedError{
		{Index: 0, Err: errors.New("assetId is required")},
		{Index: 4, Err: errors.New("wid must be numeric")},
	}}

	code, payload := response.MapError(err)
	assert.Equal(t, 400, code)
	assert.Equal(t, "import_rejected", payload.Error)
	assert.Equal(t, []string{
		"failed to convert asset at index 0: assetId is required",
		"failed to convert asset at index 4: wid must be numeric",
	}, payload.Errors)
	assert.Empty(t, payload.FieldErrors)
}
