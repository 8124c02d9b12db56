package pagination

// Edge pairs a row with the cursor of its absolute position.
type Edge[T any] struct {
	Cursor string `json:"cursor"`
	Node   T      `json:"node"`
}

// PageInfo carries navigation flags and the boundary cursors of a page.
type PageInfo struct {
	HasPreviousPage bool    `json:"hasPreviousPage"`
	HasNextPage     bool    `json:"hasNextPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

// Connection is one page of a snapshot: ordered edges plus navigation info.
type Connection[T any] struct {
	Edges      []Edge[T] `json:"edges"`
	PageInfo   PageInfo  `json:"pageInfo"`
	TotalCount int       `json:"totalCount"`
}

// Assemble builds a page from rows fetched with w. rows must be the slice of the
// total order starting at w.Offset; their order is kept as is.
func Assemble[R any](w Window, rows []R, total int, codec CursorCodec) Connection[R] {
	if codec == nil {
		codec = OffsetCursor{}
	}
	c := Connection[R]{
		Edges:      make([]Edge[R], 0, len(rows)),
		TotalCount: total,
		PageInfo: PageInfo{
			HasPreviousPage: w.Offset > 0,
			HasNextPage:     w.Offset+len(rows) < total,
		},
	}
	for i, row := range rows {
		c.Edges = append(c.Edges, Edge[R]{Cursor: codec.Encode(w.Offset + i), Node: row})
	}
	if n := len(c.Edges); n > 0 {
		first, last := c.Edges[0].Cursor, c.Edges[n-1].Cursor
		c.PageInfo.StartCursor = &first
		c.PageInfo.EndCursor = &last
	}
	return c
}

// Map projects every node of c through fn, keeping cursors and page info.
func Map[R, T any](c Connection[R], fn func(R) T) Connection[T] {
	out := Connection[T]{
		Edges:      make([]Edge[T], len(c.Edges)),
		PageInfo:   c.PageInfo,
		TotalCount: c.TotalCount,
	}
	for i, e := range c.Edges {
		out.Edges[i] = Edge[T]{Cursor: e.Cursor, Node: fn(e.Node)}
	}
	return out
}
