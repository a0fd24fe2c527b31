package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/commentator/internal/engine"
	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/engine/cursor"
	"github.com/dshills/commentator/internal/engine/history"
	"github.com/dshills/commentator/internal/grammar"
)

func pt(line, col int) buffer.Point {
	return buffer.Point{Line: line, Column: col}
}

func cursorsAt(points ...buffer.Point) []cursor.Selection {
	sels := make([]cursor.Selection, len(points))
	for i, p := range points {
		sels[i] = cursor.NewCursorSelection(p)
	}
	return sels
}

func TestOpenDocumentDetectsLanguage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenDocument(path, "", grammar.NewDefaultRegistry())
	if err != nil {
		t.Fatalf("OpenDocument() error = %v", err)
	}
	if doc.Language() != "go" {
		t.Errorf("Language() = %q, want go", doc.Language())
	}
	if doc.Name != "main.go" {
		t.Errorf("Name = %q, want main.go", doc.Name)
	}

	missing, err := OpenDocument(filepath.Join(dir, "new.py"), "", grammar.NewDefaultRegistry())
	if err != nil {
		t.Fatalf("OpenDocument(missing) error = %v", err)
	}
	if missing.Language() != "python" || missing.Text() != "" {
		t.Errorf("missing document = %q (%s)", missing.Text(), missing.Language())
	}
}

func TestDocumentSetSelectionsClampsAndNormalizes(t *testing.T) {
	doc := NewDocument("", "ab\ncd", "go")
	doc.SetSelections(cursorsAt(pt(1, 9), pt(0, 1), pt(0, 1)))

	got := doc.Selections()
	want := cursorsAt(pt(0, 1), pt(1, 2))
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Selections() = %v, want %v", got, want)
	}

	doc.SetSelections(nil)
	if got := doc.Selections(); len(got) != 1 || got[0].Cursor() != pt(0, 0) {
		t.Errorf("Selections() after empty set = %v", got)
	}
}

func TestDocumentMoveCursors(t *testing.T) {
	doc := NewDocument("", "héllo\nx", "go")
	doc.SetSelections(cursorsAt(pt(0, 1)))

	doc.MoveCursors(Right)
	if got := doc.Primary().Cursor(); got != pt(0, 3) {
		t.Errorf("after Right = %v, want (0,3)", got)
	}
	doc.MoveCursors(Left)
	if got := doc.Primary().Cursor(); got != pt(0, 1) {
		t.Errorf("after Left = %v, want (0,1)", got)
	}
	doc.MoveCursors(Down)
	if got := doc.Primary().Cursor(); got != pt(1, 1) {
		t.Errorf("after Down = %v, want (1,1)", got)
	}
	doc.MoveCursors(Right)
	doc.MoveCursors(Up)
	if got := doc.Primary().Cursor(); got != pt(0, 1) {
		t.Errorf("after Up = %v, want (0,1)", got)
	}
	doc.SetSelections(cursorsAt(pt(1, 0)))
	doc.MoveCursors(Left)
	if got := doc.Primary().Cursor(); got != pt(0, 6) {
		t.Errorf("Left at line start = %v, want (0,6)", got)
	}
}

func TestDocumentAddCursorBelow(t *testing.T) {
	doc := NewDocument("", "abcd\nab\nabcd", "go")
	doc.SetSelections(cursorsAt(pt(0, 3)))

	if !doc.AddCursorBelow() || !doc.AddCursorBelow() {
		t.Fatal("AddCursorBelow() = false, want true")
	}
	if doc.AddCursorBelow() {
		t.Error("AddCursorBelow() on last line = true, want false")
	}

	got := doc.Selections()
	want := []buffer.Point{pt(0, 3), pt(1, 2), pt(2, 2)}
	if len(got) != len(want) {
		t.Fatalf("Selections() = %v", got)
	}
	for i := range want {
		if got[i].Cursor() != want[i] {
			t.Errorf("Selections()[%d] = %v, want %v", i, got[i].Cursor(), want[i])
		}
	}

	doc.CollapseCursors()
	if got := doc.Selections(); len(got) != 1 || got[0].Cursor() != pt(0, 3) {
		t.Errorf("CollapseCursors() = %v", got)
	}
}

func TestDocumentReplaceSelections(t *testing.T) {
	doc := NewDocument("", "ab\ncd", "go")
	doc.SetSelections(cursorsAt(pt(0, 1), pt(1, 1)))

	if err := doc.ReplaceSelections(func(cursor.Selection) string { return "\n" }); err != nil {
		t.Fatalf("ReplaceSelections() error = %v", err)
	}
	if got, want := doc.Text(), "a\nb\nc\nd"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	got := doc.Selections()
	if len(got) != 2 || got[0].Cursor() != pt(1, 0) || got[1].Cursor() != pt(3, 0) {
		t.Errorf("Selections() = %v", got)
	}
	if !doc.IsModified() {
		t.Error("IsModified() = false after edit")
	}
}

func TestDocumentBackspace(t *testing.T) {
	doc := NewDocument("", "abc\nd", "go")
	doc.SetSelections(cursorsAt(pt(0, 0), pt(0, 2), pt(1, 0)))

	if err := doc.Backspace(); err != nil {
		t.Fatalf("Backspace() error = %v", err)
	}
	if got, want := doc.Text(), "acd"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	doc.SetSelections([]cursor.Selection{cursor.NewSelection(pt(0, 0), pt(0, 2))})
	if err := doc.Backspace(); err != nil {
		t.Fatalf("Backspace() error = %v", err)
	}
	if got, want := doc.Text(), "d"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestDocumentSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.go")
	doc := NewDocument(path, "// a", "go")
	doc.SetSelections(cursorsAt(pt(0, 4)))
	if err := doc.ReplaceSelections(func(cursor.Selection) string { return "b" }); err != nil {
		t.Fatal(err)
	}

	if err := doc.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "// ab" {
		t.Errorf("saved %q, want %q", data, "// ab")
	}
	if doc.IsModified() {
		t.Error("IsModified() = true after save")
	}

	if err := NewDocument("", "", "go").Save(); !errors.Is(err, ErrNoFilePath) {
		t.Errorf("Save() scratch error = %v, want ErrNoFilePath", err)
	}
}

func TestDocumentReadOnly(t *testing.T) {
	doc := NewDocument("", "x", "go", buffer.WithReadOnly())
	err := doc.ReplaceSelections(func(cursor.Selection) string { return "y" })
	if !errors.Is(err, buffer.ErrReadOnly) {
		t.Errorf("ReplaceSelections() error = %v, want ErrReadOnly", err)
	}
	if doc.IsModified() {
		t.Error("IsModified() = true after rejected edit")
	}

	path := filepath.Join(t.TempDir(), "ro.go")
	ro := NewDocument(path, "x", "go", buffer.WithReadOnly())
	if err := ro.Save(); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Save() error = %v, want ErrReadOnly", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("read-only save wrote %s", path)
	}
}

func TestDocumentUndoRedo(t *testing.T) {
	doc := NewDocument("", "// a\n// b", "go")
	doc.SetSelections(cursorsAt(pt(0, 4), pt(1, 4)))

	e := engine.New(doc)
	if !e.OnEnter() {
		t.Fatal("OnEnter() = false, want true")
	}
	if err := doc.ReplaceSelections(func(cursor.Selection) string { return "x" }); err != nil {
		t.Fatal(err)
	}
	if got, want := doc.Text(), "// a\n// x\n// b\n// x"; got != want {
		t.Fatalf("Text() = %q, want %q", got, want)
	}

	if err := doc.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if err := doc.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if got := doc.Text(); got != "// a\n// b" {
		t.Errorf("Text() after undo = %q", got)
	}
	if sels := doc.Selections(); len(sels) != 2 || sels[0].Cursor() != pt(0, 4) || sels[1].Cursor() != pt(1, 4) {
		t.Errorf("Selections() after undo = %v", sels)
	}
	if err := doc.Undo(); !errors.Is(err, history.ErrNothingToUndo) {
		t.Errorf("Undo() on empty history error = %v", err)
	}

	if err := doc.Redo(); err != nil {
		t.Fatalf("Redo() error = %v", err)
	}
	if got, want := doc.Text(), "// a\n// \n// b\n// "; got != want {
		t.Errorf("Text() after redo = %q, want %q", got, want)
	}
}
