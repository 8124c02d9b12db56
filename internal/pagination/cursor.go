package pagination

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidCursor marks an after/before value that does not decode to a position.
	ErrInvalidCursor = errors.New("invalid cursor")
	// ErrInvalidArgument marks a negative first/last count.
	ErrInvalidArgument = errors.New("invalid pagination argument")
)

// CursorCodec converts absolute positions to opaque cursor strings and back.
// Cursors are only meaningful within the snapshot they were issued for.
type CursorCodec interface {
	Encode(pos int) string
	Decode(cursor string) (int, error)
}

// OffsetCursor encodes a position as its decimal string.
type OffsetCursor struct{}

func (OffsetCursor) Encode(pos int) string { return strconv.Itoa(pos) }

func (OffsetCursor) Decode(cursor string) (int, error) {
	s := strings.TrimSpace(cursor)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidCursor)
	}
	// ParseUint rejects signs, so "-1" and "+1" both fail here.
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	return int(n), nil
}

var _ CursorCodec = OffsetCursor{}
