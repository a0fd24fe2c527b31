package buffer

import "fmt"

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   PointRange // The range to replace
	NewText string     // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(r PointRange, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(at Point, text string) Edit {
	return Edit{Range: PointRange{Start: at, End: at}, NewText: text}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(start, end Point) Edit {
	return Edit{Range: PointRange{Start: start, End: end}}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%s, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range)
	}
	return fmt.Sprintf("Replace%s with %q", e.Range, e.NewText)
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsEmpty() && e.NewText == ""
}

// NewEnd returns the end of the inserted text once the edit is applied.
func (e Edit) NewEnd() Point {
	return e.Range.Start.Advance(e.NewText)
}

// TransformPoint maps a point through the edit.
//
// Points before the edit are unchanged. Points at or after the replaced
// range shift by the edit's line/column delta. An insertion exactly at the
// point pushes it to the end of the inserted text. A point strictly inside
// a replaced range collapses to the range start.
func (e Edit) TransformPoint(p Point) Point {
	start, end := e.Range.Start, e.Range.End
	if p.Before(start) {
		return p
	}
	if e.Range.IsEmpty() || !p.Before(end) {
		newEnd := e.NewEnd()
		if p.Line == end.Line {
			return Point{Line: newEnd.Line, Column: newEnd.Column + p.Column - end.Column}
		}
		return Point{Line: p.Line + newEnd.Line - end.Line, Column: p.Column}
	}
	if p == start {
		return p
	}
	return start
}
