package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Direction of travel relative to a cursor position.
const (
	Next = "next"
	Prev = "prev"
)

// ErrBadCursor is returned when a cursor token cannot be decoded.
var ErrBadCursor = errors.New("malformed cursor")

// ErrCursorSortMismatch is returned when a cursor was minted under a
// different sort field or direction than the current request.  Such cursors
// point into a differently ordered sequence and cannot be resumed; the
// caller must restart pagination from the beginning.
var ErrCursorSortMismatch = errors.New("cursor does not match current sort")

// Cursor pins a position inside a sorted log sequence.  Value is the sort
// column value of the boundary row and ID is its primary key, which acts as
// the tie-breaker: together they identify exactly one row even when many
// rows share the same sort value.  SortField and SortDir record the ordering
// the cursor was minted under so a resumed request can be checked against it.
type Cursor struct {
	SortField string `json:"f"`
	SortDir   string `json:"d"`
	Value     string `json:"v"`
	ID        uint64 `json:"id"`
	Point     string `json:"p"` // Next or Prev
}

// Encode serializes the cursor into an opaque URL-safe token.
func (c Cursor) Encode() string {
	b, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor parses a token produced by Encode and verifies it was minted
// under the given sort field and direction.
func DecodeCursor(token, sortField, sortDir string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrBadCursor
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, ErrBadCursor
	}
	if c.Point != Next && c.Point != Prev {
		return Cursor{}, ErrBadCursor
	}
	if c.SortField != sortField || c.SortDir != sortDir {
		return Cursor{}, ErrCursorSortMismatch
	}
	return c, nil
}

// KeysetComparators returns the SQL comparison operators for the sort column
// and the id tie-breaker when walking away from the cursor.  Travelling Next
// under asc (or Prev under desc) means strictly greater; the opposite
// combinations mean strictly less.  The caller composes them into
//
//	(col OP1 ? OR (col = ? AND id OP1 ?))
//
// which yields a total order because id is unique.
func (c Cursor) KeysetComparators() (op string) {
	forward := c.SortDir == "asc"
	if c.Point == Prev {
		forward = !forward
	}
	if forward {
		return ">"
	}
	return "<"
}

// CursorWindow describes one window of a cursor-paginated result set.  The
// tokens are nil at the respective end of the sequence.
type CursorWindow struct {
	Limit      int     `json:"limit"`
	NextCursor *string `json:"next_cursor"`
	PrevCursor *string `json:"prev_cursor"`
}

// Boundary is the (value, id) pair of a row at the edge of a window, used to
// mint the window's next and previous cursors.
type Boundary struct {
	Value string
	ID    uint64
}

// NewCursorWindow mints the next/prev tokens for a window.  first and last
// are the boundary rows of the returned window (nil when the window is
// empty).  hasMoreAfter and hasMoreBefore report whether rows exist beyond
// each edge in the current sort order.
func NewCursorWindow(limit int, sortField, sortDir string, first, last *Boundary, hasMoreBefore, hasMoreAfter bool) CursorWindow {
	w := CursorWindow{Limit: limit}
	if hasMoreAfter && last != nil {
		tok := Cursor{SortField: sortField, SortDir: sortDir, Value: last.Value, ID: last.ID, Point: Next}.Encode()
		w.NextCursor = &tok
	}
	if hasMoreBefore && first != nil {
		tok := Cursor{SortField: sortField, SortDir: sortDir, Value: first.Value, ID: first.ID, Point: Prev}.Encode()
		w.PrevCursor = &tok
	}
	return w
}
