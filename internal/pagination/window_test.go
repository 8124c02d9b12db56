package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maxviazov/wealth-balance-service/internal/pagination"
)

func ptr(v int) *int { return &v }

func TestResolveWindow_Scenarios(t *testing.T) {
	const total = 1000
	cases := []struct {
		name string
		args pagination.Args
		want pagination.Window
	}{
		{"no args", pagination.Args{}, pagination.Window{Limit: 100, Offset: 0}},
		{"after", pagination.Args{After: ptr(100)}, pagination.Window{Limit: 100, Offset: 101}},
		{"before", pagination.Args{Before: ptr(200)}, pagination.Window{Limit: 100, Offset: 99}},
		{"after first", pagination.Args{After: ptr(100), First: ptr(50)}, pagination.Window{Limit: 50, Offset: 101}},
		{"before last", pagination.Args{Before: ptr(200), Last: ptr(50)}, pagination.Window{Limit: 50, Offset: 149}},
		{"first", pagination.Args{First: ptr(50)}, pagination.Window{Limit: 50, Offset: 0}},
		{"last", pagination.Args{Last: ptr(100)}, pagination.Window{Limit: 100, Offset: 900}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pagination.ResolveWindow(total, tc.args))
		})
	}
}

func TestResolveWindow_EdgeCases(t *testing.T) {
	cases := []struct {
		name  string
		total int
		args  pagination.Args
		want  pagination.Window
	}{
		{"empty set ignores args", 0, pagination.Args{After: ptr(5), Before: ptr(9), First: ptr(3), Last: ptr(2)}, pagination.Window{}},
		{"after past end", 10, pagination.Args{After: ptr(50)}, pagination.Window{Limit: 0, Offset: 10}},
		{"after last row", 10, pagination.Args{After: ptr(9)}, pagination.Window{Limit: 0, Offset: 10}},
		{"before zero", 10, pagination.Args{Before: ptr(0)}, pagination.Window{}},
		{"before one", 10, pagination.Args{Before: ptr(1)}, pagination.Window{}},
		{"before past end clamps", 10, pagination.Args{Before: ptr(500)}, pagination.Window{Limit: 0, Offset: 10}},
		{"before overrides after", 1000, pagination.Args{After: ptr(10), Before: ptr(200)}, pagination.Window{Limit: 100, Offset: 99}},
		{"first larger than range", 30, pagination.Args{First: ptr(80)}, pagination.Window{Limit: 30, Offset: 0}},
		{"last larger than range", 30, pagination.Args{Last: ptr(80)}, pagination.Window{Limit: 30, Offset: 0}},
		{"first zero", 30, pagination.Args{First: ptr(0)}, pagination.Window{Limit: 0, Offset: 0}},
		{"last zero", 30, pagination.Args{Last: ptr(0)}, pagination.Window{Limit: 0, Offset: 30}},
		{"first over ceiling", 1000, pagination.Args{First: ptr(500)}, pagination.Window{Limit: 100, Offset: 0}},
		{"first and last", 1000, pagination.Args{First: ptr(50), Last: ptr(10)}, pagination.Window{Limit: 10, Offset: 40}},
		{"huge after", 10, pagination.Args{After: ptr(int(^uint(0) >> 1))}, pagination.Window{Limit: 0, Offset: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, pagination.ResolveWindow(tc.total, tc.args))
		})
	}
}

func TestResolveWindow_Properties(t *testing.T) {
	totals := []int{0, 1, 2, 99, 100, 101, 250, 1000}
	for _, total := range totals {
		got := pagination.ResolveWindow(total, pagination.Args{})
		assert.Equal(t, pagination.Window{Limit: min(total, 100), Offset: 0}, got, "no args total=%d", total)

		for a := 0; a <= total+2; a += 7 {
			w := pagination.ResolveWindow(total, pagination.Args{After: ptr(a)})
			if a+1 >= total {
				assert.Equal(t, 0, w.Limit, "after=%d total=%d", a, total)
				continue
			}
			assert.Equal(t, a+1, w.Offset, "after=%d total=%d", a, total)
			assert.Equal(t, min(total-(a+1), 100), w.Limit, "after=%d total=%d", a, total)
		}

		// Runs well past total so a start beyond the clamped end collapses to an empty window at total.
		for b := 1; b <= total+250; b += 5 {
			w := pagination.ResolveWindow(total, pagination.Args{Before: ptr(b)})
			wantEnd := min(b-1, total)
			wantOffset := min(max(b-1-100, 0), wantEnd)
			assert.Equal(t, wantOffset, w.Offset, "before=%d total=%d", b, total)
			assert.Equal(t, wantEnd-wantOffset, w.Limit, "before=%d total=%d", b, total)
			if b-1-100 >= total {
				assert.Equal(t, pagination.Window{Limit: 0, Offset: total}, w, "before=%d total=%d", b, total)
			}
		}
	}
}

func TestResolveWindow_FirstLastOnlyShrink(t *testing.T) {
	const total = 300
	bases := []pagination.Args{{}, {After: ptr(20)}, {Before: ptr(150)}, {After: ptr(290)}}
	for _, base := range bases {
		ref := pagination.ResolveWindow(total, base)
		for n := 0; n <= 120; n += 15 {
			withFirst := base
			withFirst.First = ptr(n)
			wf := pagination.ResolveWindow(total, withFirst)
			assert.LessOrEqual(t, wf.Limit, ref.Limit)
			assert.Equal(t, ref.Offset, wf.Offset, "first keeps the start")

			withLast := base
			withLast.Last = ptr(n)
			wl := pagination.ResolveWindow(total, withLast)
			assert.LessOrEqual(t, wl.Limit, 100)
			assert.GreaterOrEqual(t, wl.Offset, ref.Offset, "last only moves the start forward")
		}
	}
}

func TestResolveWindow_LimitCeilingAndIdempotence(t *testing.T) {
	vals := []*int{nil, ptr(0), ptr(1), ptr(99), ptr(150), ptr(5000)}
	for _, a := range vals {
		for _, b := range vals {
			for _, f := range vals {
				for _, l := range vals {
					args := pagination.Args{After: a, Before: b, First: f, Last: l}
					w := pagination.ResolveWindow(5000, args)
					assert.LessOrEqual(t, w.Limit, pagination.MaxPageSize)
					assert.GreaterOrEqual(t, w.Limit, 0)
					assert.LessOrEqual(t, w.Offset, 5000)
					assert.Equal(t, w, pagination.ResolveWindow(5000, args))
				}
			}
		}
	}
}

func TestResolver_IntersectBounds(t *testing.T) {
	r := pagination.NewResolver(100, true)
	assert.Equal(t, pagination.Window{Limit: 88, Offset: 11}, r.Resolve(1000, pagination.Args{After: ptr(10), Before: ptr(100)}))
	// Without after the trailing window is unchanged.
	assert.Equal(t, pagination.Window{Limit: 100, Offset: 99}, r.Resolve(1000, pagination.Args{Before: ptr(200)}))
	// Crossed bounds collapse to empty.
	assert.Equal(t, pagination.Window{Limit: 0, Offset: 49}, r.Resolve(1000, pagination.Args{After: ptr(100), Before: ptr(50)}))
}

func TestResolver_MaxPageSize(t *testing.T) {
	r := pagination.NewResolver(25, false)
	assert.Equal(t, pagination.Window{Limit: 25, Offset: 0}, r.Resolve(1000, pagination.Args{}))
	assert.Equal(t, pagination.Window{Limit: 25, Offset: 174}, r.Resolve(1000, pagination.Args{Before: ptr(200)}))

	assert.Equal(t, pagination.MaxPageSize, pagination.NewResolver(0, false).MaxPageSize)
	assert.Equal(t, pagination.MaxPageSize, pagination.NewResolver(1000, false).MaxPageSize)
}
