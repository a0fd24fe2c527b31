package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/engine/cursor"
	"github.com/dshills/commentator/internal/planner"
)

// ParseSelection parses a cursor written as LINE:COL or a selection
// written as LINE:COL-LINE:COL. Lines and columns are 1-based; columns
// count bytes.
func ParseSelection(s string) (cursor.Selection, error) {
	anchorText, headText, isRange := strings.Cut(strings.TrimSpace(s), "-")
	anchor, err := parsePoint(anchorText)
	if err != nil {
		return cursor.Selection{}, fmt.Errorf("%w %q: %w", ErrInvalidCursor, s, err)
	}
	if !isRange {
		return cursor.NewCursorSelection(anchor), nil
	}
	head, err := parsePoint(headText)
	if err != nil {
		return cursor.Selection{}, fmt.Errorf("%w %q: %w", ErrInvalidCursor, s, err)
	}
	return cursor.NewSelection(anchor, head), nil
}

func parsePoint(s string) (buffer.Point, error) {
	lineText, colText, ok := strings.Cut(s, ":")
	if !ok {
		return buffer.Point{}, fmt.Errorf("want LINE:COL")
	}
	line, err := strconv.Atoi(lineText)
	if err != nil || line < 1 {
		return buffer.Point{}, fmt.Errorf("bad line %q", lineText)
	}
	col, err := strconv.Atoi(colText)
	if err != nil || col < 1 {
		return buffer.Point{}, fmt.Errorf("bad column %q", colText)
	}
	return buffer.Point{Line: line - 1, Column: col - 1}, nil
}

// FormatSelection renders a selection in the form ParseSelection reads.
func FormatSelection(sel cursor.Selection) string {
	point := func(p buffer.Point) string {
		return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
	}
	if sel.IsEmpty() {
		return point(sel.Head)
	}
	return point(sel.Anchor) + "-" + point(sel.Head)
}

// RunIntent places the cursors and runs one dispatch of intent. It
// reports whether the engine handled the event.
func (a *Application) RunIntent(intent planner.Intent, sels []cursor.Selection) bool {
	if len(sels) > 0 {
		a.doc.SetSelections(sels)
	}
	handled := a.Engine().Dispatch(intent)
	a.logger.Debug("%s handled=%v cursors=%d", intent, handled, len(a.doc.Selections()))
	return handled
}
