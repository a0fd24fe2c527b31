package history

import (
	"errors"
	"testing"

	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/engine/cursor"
)

type bufferTarget struct {
	buf  *buffer.Buffer
	sels []cursor.Selection
}

func (t *bufferTarget) Restore(edits []buffer.Edit, sels []cursor.Selection) error {
	if err := t.buf.Apply(edits); err != nil {
		return err
	}
	t.sels = sels
	return nil
}

func at(line, col int) cursor.Selection {
	return cursor.NewCursorSelection(buffer.Point{Line: line, Column: col})
}

func record(t *testing.T, h *History, tgt *bufferTarget, label string, edits ...buffer.Edit) {
	t.Helper()
	inverse, err := tgt.buf.ApplyInverse(edits)
	if err != nil {
		t.Fatalf("ApplyInverse() error = %v", err)
	}
	h.Push(Entry{Label: label, Edits: edits, Inverse: inverse, Selections: tgt.sels})
	tgt.sels = cursor.Normalize(cursor.TransformAll(tgt.sels, edits))
}

func TestUndoRedo(t *testing.T) {
	h := New(0)
	tgt := &bufferTarget{
		buf:  buffer.NewBufferFromString("// a\n// b"),
		sels: []cursor.Selection{at(0, 4), at(1, 4)},
	}

	record(t, h, tgt, "continue",
		buffer.NewInsert(buffer.Point{Line: 1, Column: 4}, "\n// "),
		buffer.NewInsert(buffer.Point{Line: 0, Column: 4}, "\n// "),
	)
	if got, want := tgt.buf.Text(), "// a\n// \n// b\n// "; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}

	e, err := h.Undo(tgt)
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if e.Label != "continue" {
		t.Errorf("Undo() label = %q, want continue", e.Label)
	}
	if got := tgt.buf.Text(); got != "// a\n// b" {
		t.Errorf("Text() after undo = %q", got)
	}
	if len(tgt.sels) != 2 || tgt.sels[0] != at(0, 4) || tgt.sels[1] != at(1, 4) {
		t.Errorf("selections after undo = %v", tgt.sels)
	}

	if _, err := h.Redo(tgt); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	if got := tgt.buf.Text(); got != "// a\n// \n// b\n// " {
		t.Errorf("Text() after redo = %q", got)
	}
	if len(tgt.sels) != 2 || tgt.sels[0] != at(1, 3) || tgt.sels[1] != at(3, 3) {
		t.Errorf("selections after redo = %v", tgt.sels)
	}
}

func TestEmptyStacks(t *testing.T) {
	h := New(10)
	tgt := &bufferTarget{buf: buffer.NewBuffer()}
	if _, err := h.Undo(tgt); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo() error = %v, want ErrNothingToUndo", err)
	}
	if _, err := h.Redo(tgt); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo() error = %v, want ErrNothingToRedo", err)
	}
	h.Push(Entry{Label: "noop"})
	if h.CanUndo() {
		t.Error("CanUndo() = true after pushing an entry without edits")
	}
}

func TestPushClearsRedo(t *testing.T) {
	h := New(10)
	tgt := &bufferTarget{buf: buffer.NewBufferFromString("x"), sels: []cursor.Selection{at(0, 1)}}

	record(t, h, tgt, "a", buffer.NewInsert(buffer.Point{Column: 1}, "a"))
	if _, err := h.Undo(tgt); err != nil {
		t.Fatal(err)
	}
	if !h.CanRedo() {
		t.Fatal("CanRedo() = false after undo")
	}
	record(t, h, tgt, "b", buffer.NewInsert(buffer.Point{Column: 1}, "b"))
	if h.CanRedo() {
		t.Error("CanRedo() = true after a new change")
	}
}

func TestMaxEntries(t *testing.T) {
	h := New(2)
	tgt := &bufferTarget{buf: buffer.NewBuffer(), sels: []cursor.Selection{at(0, 0)}}
	for _, s := range []string{"a", "b", "c"} {
		record(t, h, tgt, s, buffer.NewInsert(tgt.sels[0].Cursor(), s))
	}
	if h.UndoCount() != 2 {
		t.Fatalf("UndoCount() = %d, want 2", h.UndoCount())
	}
	for h.CanUndo() {
		if _, err := h.Undo(tgt); err != nil {
			t.Fatal(err)
		}
	}
	if got := tgt.buf.Text(); got != "a" {
		t.Errorf("Text() = %q, want oldest change kept", got)
	}
	if h.RedoCount() != 2 {
		t.Errorf("RedoCount() = %d, want 2", h.RedoCount())
	}
}

func TestUndoRejected(t *testing.T) {
	h := New(10)
	tgt := &bufferTarget{buf: buffer.NewBufferFromString("x"), sels: []cursor.Selection{at(0, 1)}}
	record(t, h, tgt, "a", buffer.NewInsert(buffer.Point{Column: 1}, "a"))

	tgt.buf.SetReadOnly(true)
	if _, err := h.Undo(tgt); !errors.Is(err, buffer.ErrReadOnly) {
		t.Fatalf("Undo() error = %v, want ErrReadOnly", err)
	}
	if h.UndoCount() != 1 {
		t.Errorf("UndoCount() = %d, want entry kept", h.UndoCount())
	}
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear() left entries")
	}
}
