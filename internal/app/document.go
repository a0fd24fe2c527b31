package app

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/engine/cursor"
	"github.com/dshills/commentator/internal/engine/history"
	"github.com/dshills/commentator/internal/grammar"
)

// Document is an open file with its cursors. It implements engine.Host.
type Document struct {
	*buffer.Buffer

	// Path is the file path (empty for scratch buffers).
	Path string

	// Name is the display name.
	Name string

	mu       sync.RWMutex
	sels     []cursor.Selection
	modified atomic.Bool
	history  *history.History
}

// NewDocument creates a document holding content with a cursor at the
// start of the buffer.
func NewDocument(path, content, lang string, opts ...buffer.Option) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}
	opts = append([]buffer.Option{buffer.WithLanguage(lang)}, opts...)
	return &Document{
		Buffer:  buffer.NewBufferFromString(content, opts...),
		Path:    path,
		Name:    name,
		sels:    []cursor.Selection{cursor.NewCursorSelection(buffer.Point{})},
		history: history.New(history.DefaultMaxEntries),
	}
}

// OpenDocument reads path into a document. A missing file opens as an
// empty document that will be created on save. When lang is empty the
// language is detected from the file name through reg.
func OpenDocument(path, lang string, reg *grammar.Registry, opts ...buffer.Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	if lang == "" && reg != nil {
		lang = reg.LanguageForPath(path)
	}
	return NewDocument(path, string(data), lang, opts...), nil
}

// Apply commits edits, records them for undo and marks the document
// modified.
func (d *Document) Apply(edits []buffer.Edit) error {
	before := d.Selections()
	inverse, err := d.Buffer.ApplyInverse(edits)
	if err != nil {
		return err
	}
	if len(edits) > 0 {
		d.history.Push(history.Entry{Edits: edits, Inverse: inverse, Selections: before})
		d.modified.Store(true)
	}
	return nil
}

// Restore applies edits without recording them and installs sels. It is
// used by undo and redo.
func (d *Document) Restore(edits []buffer.Edit, sels []cursor.Selection) error {
	if err := d.Buffer.Apply(edits); err != nil {
		return err
	}
	d.modified.Store(true)
	d.SetSelections(sels)
	return nil
}

// Undo reverts the last change.
func (d *Document) Undo() error {
	_, err := d.history.Undo(d)
	return err
}

// Redo reapplies the last undone change.
func (d *Document) Redo() error {
	_, err := d.history.Redo(d)
	return err
}

// Selections returns a copy of the cursor set.
func (d *Document) Selections() []cursor.Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]cursor.Selection(nil), d.sels...)
}

// SetSelections replaces the cursor set. Positions are clamped to the
// buffer and the set is normalised. An empty set leaves one cursor at the
// start of the buffer.
func (d *Document) SetSelections(sels []cursor.Selection) {
	clamped := make([]cursor.Selection, 0, len(sels))
	for _, s := range sels {
		clamped = append(clamped, cursor.NewSelection(d.Clamp(s.Anchor), d.Clamp(s.Head)))
	}
	clamped = cursor.Normalize(clamped)
	if len(clamped) == 0 {
		clamped = []cursor.Selection{cursor.NewCursorSelection(buffer.Point{})}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.sels = clamped
}

// Primary returns the first cursor.
func (d *Document) Primary() cursor.Selection {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sels[0]
}

// AddCursorBelow adds a cursor on the line below the last cursor, at the
// same column or the end of that line.
func (d *Document) AddCursorBelow() bool {
	sels := d.Selections()
	last := sels[len(sels)-1].Cursor()
	if last.Line+1 >= d.LineCount() {
		return false
	}
	next := d.Clamp(buffer.Point{Line: last.Line + 1, Column: last.Column})
	d.SetSelections(append(sels, cursor.NewCursorSelection(next)))
	return true
}

// CollapseCursors keeps only the primary cursor and drops its selection.
func (d *Document) CollapseCursors() {
	d.SetSelections([]cursor.Selection{cursor.NewCursorSelection(d.Primary().Cursor())})
}

// Direction is a cursor movement.
type Direction int

// Cursor movements.
const (
	Left Direction = iota
	Right
	Up
	Down
)

// MoveCursors moves every cursor one step, collapsing selections.
func (d *Document) MoveCursors(dir Direction) {
	sels := d.Selections()
	for i, s := range sels {
		sels[i] = cursor.NewCursorSelection(d.step(s.Cursor(), dir))
	}
	d.SetSelections(sels)
}

func (d *Document) step(p buffer.Point, dir Direction) buffer.Point {
	line := d.LineText(p.Line)
	switch dir {
	case Left:
		if p.Column > 0 {
			_, size := utf8.DecodeLastRuneInString(line[:p.Column])
			return buffer.Point{Line: p.Line, Column: p.Column - size}
		}
		if p.Line > 0 {
			return buffer.Point{Line: p.Line - 1, Column: len(d.LineText(p.Line - 1))}
		}
	case Right:
		if p.Column < len(line) {
			_, size := utf8.DecodeRuneInString(line[p.Column:])
			return buffer.Point{Line: p.Line, Column: p.Column + size}
		}
		if p.Line+1 < d.LineCount() {
			return buffer.Point{Line: p.Line + 1}
		}
	case Up:
		if p.Line > 0 {
			return d.snap(buffer.Point{Line: p.Line - 1, Column: p.Column})
		}
	case Down:
		if p.Line+1 < d.LineCount() {
			return d.snap(buffer.Point{Line: p.Line + 1, Column: p.Column})
		}
	}
	return p
}

// snap clamps p and moves it back to a rune boundary.
func (d *Document) snap(p buffer.Point) buffer.Point {
	p = d.Clamp(p)
	line := d.LineText(p.Line)
	for p.Column > 0 && p.Column < len(line) && !utf8.RuneStart(line[p.Column]) {
		p.Column--
	}
	return p
}

// ReplaceSelections replaces every selection with the text returned by fn
// as one atomic edit, moving cursors past the inserted text.
func (d *Document) ReplaceSelections(fn func(sel cursor.Selection) string) error {
	sels := d.Selections()
	// Later positions first, so earlier ranges are still valid when applied.
	edits := make([]buffer.Edit, 0, len(sels))
	for i := len(sels) - 1; i >= 0; i-- {
		edits = append(edits, buffer.NewEdit(sels[i].Range(), fn(sels[i])))
	}
	return d.commit(sels, edits)
}

// Backspace deletes each selection, or the character before each cursor.
func (d *Document) Backspace() error {
	sels := d.Selections()
	edits := make([]buffer.Edit, 0, len(sels))
	for i := len(sels) - 1; i >= 0; i-- {
		s := sels[i]
		if !s.IsEmpty() {
			edits = append(edits, buffer.NewDelete(s.Start(), s.End()))
			continue
		}
		p := s.Cursor()
		prev := d.step(p, Left)
		if prev == p {
			continue
		}
		if len(edits) > 0 && edits[len(edits)-1].Range.Start.Before(p) {
			continue
		}
		edits = append(edits, buffer.NewDelete(prev, p))
	}
	return d.commit(sels, edits)
}

func (d *Document) commit(sels []cursor.Selection, edits []buffer.Edit) error {
	var live []buffer.Edit
	for _, e := range edits {
		if !e.IsNoOp() {
			live = append(live, e)
		}
	}
	if len(live) == 0 {
		return nil
	}
	if err := d.Apply(live); err != nil {
		return err
	}
	d.SetSelections(cursor.TransformAll(sels, live))
	return nil
}

// IsModified reports whether the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.modified.Load()
}

// Save writes the document to its path. Read-only documents are never
// written.
func (d *Document) Save() error {
	if d.Path == "" {
		return ErrNoFilePath
	}
	if d.ReadOnly() {
		return ErrReadOnly
	}
	if err := os.WriteFile(d.Path, []byte(d.Text()), 0o644); err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	d.modified.Store(false)
	return nil
}
