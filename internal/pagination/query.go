package pagination

import (
	"context"
	"fmt"
	"time"
)

// Snapshot is the store collaborator: a row set observed as of an instant,
// in a stable total order. Count and Fetch must agree on the same asOf.
type Snapshot[R any] interface {
	Count(ctx context.Context, asOf time.Time) (int, error)
	Fetch(ctx context.Context, asOf time.Time, w Window) ([]R, error)
}

// Request is a cursor pagination request as received from a caller.
// A zero AsOf means "now".
type Request struct {
	AsOf   time.Time
	After  *string
	Before *string
	First  *int
	Last   *int
}

type queryOptions struct {
	codec    CursorCodec
	resolver Resolver
	now      func() time.Time
}

// Option tweaks Query.
type Option func(*queryOptions)

// WithCodec replaces the default decimal cursor codec.
func WithCodec(c CursorCodec) Option { return func(o *queryOptions) { o.codec = c } }

// WithResolver replaces DefaultResolver.
func WithResolver(r Resolver) Option { return func(o *queryOptions) { o.resolver = r } }

// WithClock sets the clock used when the request has no AsOf.
func WithClock(now func() time.Time) Option { return func(o *queryOptions) { o.now = now } }

// Query resolves req against store and returns the page mapped through mapFn.
// Invalid cursors and negative counts fail before the store is called.
// Store errors are returned unchanged.
func Query[R, T any](ctx context.Context, store Snapshot[R], req Request, mapFn func(R) T, opts ...Option) (Connection[T], error) {
	o := queryOptions{codec: OffsetCursor{}, resolver: DefaultResolver, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	args, err := decodeArgs(o.codec, req)
	if err != nil {
		return Connection[T]{}, err
	}

	asOf := req.AsOf
	if asOf.IsZero() {
		asOf = o.now()
	}

	total, err := store.Count(ctx, asOf)
	if err != nil {
		return Connection[T]{}, err
	}
	w := o.resolver.Resolve(total, args)

	var rows []R
	if w.Limit > 0 {
		rows, err = store.Fetch(ctx, asOf, w)
		if err != nil {
			return Connection[T]{}, err
		}
	}
	// A store that over-delivers would break hasNextPage and cursor math.
	if len(rows) > w.Limit {
		rows = rows[:w.Limit]
	}

	return Map(Assemble(w, rows, total, o.codec), mapFn), nil
}

// ArgumentError reports which argument failed to decode.
type ArgumentError struct {
	Arg string
	Err error
}

func (e *ArgumentError) Error() string { return e.Arg + ": " + e.Err.Error() }
func (e *ArgumentError) Unwrap() error { return e.Err }

func decodeArgs(codec CursorCodec, req Request) (Args, error) {
	var args Args
	if req.After != nil {
		pos, err := codec.Decode(*req.After)
		if err != nil {
			return Args{}, &ArgumentError{Arg: "after", Err: err}
		}
		args.After = &pos
	}
	if req.Before != nil {
		pos, err := codec.Decode(*req.Before)
		if err != nil {
			return Args{}, &ArgumentError{Arg: "before", Err: err}
		}
		args.Before = &pos
	}
	if req.First != nil {
		if *req.First < 0 {
			return Args{}, &ArgumentError{Arg: "first", Err: fmt.Errorf("%w: must be non-negative", ErrInvalidArgument)}
		}
		args.First = req.First
	}
	if req.Last != nil {
		if *req.Last < 0 {
			return Args{}, &ArgumentError{Arg: "last", Err: fmt.Errorf("%w: must be non-negative", ErrInvalidArgument)}
		}
		args.Last = req.Last
	}
	return args, nil
}
