// Package pagination turns cursor pagination arguments (after, before, first, last)
// into a limit/offset window over a totally ordered snapshot, and assembles the
// returned page from the rows fetched with that window.
package pagination

// MaxPageSize is the hard ceiling on rows returned in a single page.
// Larger first/last values are truncated, never rejected.
const MaxPageSize = 100

// Window is the concrete limit/offset slice requested from a store.
type Window struct {
	Limit  int
	Offset int
}

// Args carries decoded pagination arguments. Nil means "not supplied".
// After and Before are absolute zero-based positions; First and Last are counts.
type Args struct {
	After  *int
	Before *int
	First  *int
	Last   *int
}

// Resolver computes windows. The zero value is not useful; use DefaultResolver
// or NewResolver.
type Resolver struct {
	// MaxPageSize caps the window limit. Values outside 1..MaxPageSize fall back to MaxPageSize.
	MaxPageSize int
	// IntersectBounds keeps the start derived from After when Before is also present.
	// When false, Before overwrites it with a trailing window ending just before the cursor.
	IntersectBounds bool
}

// DefaultResolver applies MaxPageSize and lets Before override After.
var DefaultResolver = Resolver{MaxPageSize: MaxPageSize}

// NewResolver builds a resolver from configured limits.
func NewResolver(maxPageSize int, intersectBounds bool) Resolver {
	return Resolver{MaxPageSize: maxPageSize, IntersectBounds: intersectBounds}.normalized()
}

func (r Resolver) normalized() Resolver {
	if r.MaxPageSize <= 0 || r.MaxPageSize > MaxPageSize {
		r.MaxPageSize = MaxPageSize
	}
	return r
}

// ResolveWindow resolves args against total rows with the default resolver.
func ResolveWindow(total int, args Args) Window {
	return DefaultResolver.Resolve(total, args)
}

// Resolve converts args into a window against total rows visible in the snapshot.
// Every subtraction saturates at zero, so any combination of inputs yields a
// well-formed (possibly empty) window.
func (r Resolver) Resolve(total int, args Args) Window {
	r = r.normalized()
	if total < 0 {
		total = 0
	}

	start, end := 0, total

	if args.After != nil {
		// Positions past total collapse to an empty window below; capping here keeps +1 from overflowing.
		start = min(nonNegative(*args.After), total) + 1
	}
	if args.Before != nil {
		end = subSat(nonNegative(*args.Before), 1)
		if !r.IntersectBounds || args.After == nil {
			start = subSat(end, r.MaxPageSize)
		}
	}
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}

	if args.First != nil {
		if f := nonNegative(*args.First); f < end-start {
			end = start + f
		}
	}
	if args.Last != nil {
		if l := nonNegative(*args.Last); l < end-start {
			start = end - l
		}
	}

	return Window{Limit: min(subSat(end, start), r.MaxPageSize), Offset: start}
}

func subSat(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
