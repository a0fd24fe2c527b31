package cursor

import (
	"fmt"

	"github.com/dshills/commentator/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Selection represents a range of selected text.
// Anchor is where the selection started; Head is the current cursor position.
// When Anchor == Head, this represents a cursor with no selection.
type Selection struct {
	Anchor Point
	Head   Point
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Point) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor.
func NewCursorSelection(p Point) Selection {
	return Selection{Anchor: p, Head: p}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Point {
	if s.Anchor.Before(s.Head) {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound of the selection.
func (s Selection) End() Point {
	if s.Anchor.Before(s.Head) {
		return s.Head
	}
	return s.Anchor
}

// Range returns the selection as a range (always Start <= End).
func (s Selection) Range() buffer.PointRange {
	return buffer.PointRange{Start: s.Start(), End: s.End()}
}

// Cursor returns the head position (where typing would occur).
func (s Selection) Cursor() Point {
	return s.Head
}

// Lines returns the first and last line the selection covers.
// A multi-line selection ending at column 0 does not include its last line.
func (s Selection) Lines() (first, last int) {
	start, end := s.Start(), s.End()
	first, last = start.Line, end.Line
	if last > first && end.Column == 0 {
		last--
	}
	return first, last
}

// String returns a human-readable representation.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor%s", s.Head)
	}
	return fmt.Sprintf("Selection%s->%s", s.Anchor, s.Head)
}
