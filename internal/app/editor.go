package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/commentator/internal/config/watcher"
	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/engine/cursor"
	"github.com/dshills/commentator/internal/engine/history"
)

// Editor is a minimal terminal editor for one document. Enter, Tab and
// Ctrl-/ go to the comment engine first and fall back to plain editing
// when the engine declines.
//
// Keys: Ctrl-S save, Ctrl-Q quit, Ctrl-Z undo, Ctrl-Y redo, Ctrl-Down add
// a cursor below, Esc keep only the primary cursor.
type Editor struct {
	app    *Application
	screen tcell.Screen

	top       int
	status    string
	quitArmed bool
}

// NewEditor creates an editor drawing on screen. The screen must already
// be initialized.
func NewEditor(a *Application, screen tcell.Screen) *Editor {
	return &Editor{app: a, screen: screen}
}

// RunTerminal opens the terminal, runs the editor until the user quits,
// and restores the terminal.
func (a *Application) RunTerminal() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	if err := a.WatchConfig(func(ev watcher.Event) {
		_ = screen.PostEvent(tcell.NewEventInterrupt(ev))
	}); err != nil {
		a.logger.Warn("live reload disabled: %v", err)
	}

	return NewEditor(a, screen).Run()
}

// Run draws and handles events until quit.
func (e *Editor) Run() error {
	for {
		e.draw()
		ev := e.screen.PollEvent()
		if ev == nil {
			return nil
		}
		err := e.handleEvent(ev)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			e.status = err.Error()
		}
	}
}

func (e *Editor) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(watcher.Event); ok {
			if err := e.app.Reload(); err != nil {
				return fmt.Errorf("reload: %w", err)
			}
			e.status = "grammars reloaded"
		}
	case *tcell.EventKey:
		return e.handleKey(ev)
	}
	return nil
}

func (e *Editor) handleKey(ev *tcell.EventKey) error {
	doc := e.app.Document()
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	if ev.Key() != tcell.KeyCtrlQ {
		e.quitArmed = false
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ:
		if doc.IsModified() && !e.quitArmed {
			e.quitArmed = true
			e.status = "unsaved changes; Ctrl-Q again to quit"
			return nil
		}
		return ErrQuit

	case tcell.KeyCtrlS:
		if err := doc.Save(); err != nil {
			return err
		}
		e.status = "saved " + doc.Path

	case tcell.KeyCtrlZ:
		if err := doc.Undo(); err != nil && !errors.Is(err, history.ErrNothingToUndo) {
			return err
		}
	case tcell.KeyCtrlY:
		if err := doc.Redo(); err != nil && !errors.Is(err, history.ErrNothingToRedo) {
			return err
		}

	case tcell.KeyEnter:
		if e.app.Engine().OnEnter() {
			e.status = "comment continued"
			return nil
		}
		e.status = ""
		return doc.ReplaceSelections(func(cursor.Selection) string { return "\n" })

	case tcell.KeyTab:
		if e.app.Engine().OnTab() {
			e.status = "comment aligned"
			return nil
		}
		e.status = ""
		return doc.ReplaceSelections(e.tabStop)

	case tcell.KeyCtrlUnderscore:
		e.toggle()

	case tcell.KeyUp:
		doc.MoveCursors(Up)
	case tcell.KeyDown:
		if ctrl {
			doc.AddCursorBelow()
			return nil
		}
		doc.MoveCursors(Down)
	case tcell.KeyLeft:
		doc.MoveCursors(Left)
	case tcell.KeyRight:
		doc.MoveCursors(Right)
	case tcell.KeyEscape:
		doc.CollapseCursors()

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return doc.Backspace()

	case tcell.KeyRune:
		if ctrl && ev.Rune() == '/' {
			e.toggle()
			return nil
		}
		return doc.ReplaceSelections(func(cursor.Selection) string { return string(ev.Rune()) })
	}
	return nil
}

// toggle runs the inline comment intent. It has no plain-editing fallback.
func (e *Editor) toggle() {
	if e.app.Engine().OnInline() {
		e.status = "comments toggled"
		return
	}
	lang := e.app.Document().LanguageAt(e.app.Document().Primary().Cursor())
	e.status = fmt.Sprintf("no comment grammar for %q", lang)
}

// tabStop returns the spaces that move a cursor to the next tab stop.
func (e *Editor) tabStop(sel cursor.Selection) string {
	doc := e.app.Document()
	tab := e.app.Config().Editor.TabWidth
	p := sel.Start()
	x := displayWidth(doc.LineText(p.Line)[:p.Column], tab)
	return strings.Repeat(" ", tab-x%tab)
}

// scroll keeps line visible in a view of height rows.
func (e *Editor) scroll(line, height int) {
	if line < e.top {
		e.top = line
	}
	if height > 0 && line >= e.top+height {
		e.top = line - height + 1
	}
}

func (e *Editor) draw() {
	s := e.screen
	s.Clear()
	width, height := s.Size()
	textHeight := height - 1

	doc := e.app.Document()
	tab := e.app.Config().Editor.TabWidth
	sels := doc.Selections()
	primary := sels[0].Cursor()
	e.scroll(primary.Line, textHeight)

	plain := tcell.StyleDefault
	marked := plain.Reverse(true)
	dim := plain.Dim(true)

	for row := 0; row < textHeight; row++ {
		line := e.top + row
		if line >= doc.LineCount() {
			s.SetContent(0, row, '~', nil, dim)
			continue
		}
		text := doc.LineText(line)
		x := 0
		for col, r := range text {
			w := cellWidth(r, x, tab)
			if x+w > width {
				break
			}
			style := plain
			if markedAt(sels[1:], sels, buffer.Point{Line: line, Column: col}) {
				style = marked
			}
			if r == '\t' {
				for i := 0; i < w; i++ {
					s.SetContent(x+i, row, ' ', nil, style)
				}
			} else if w > 0 {
				s.SetContent(x, row, r, nil, style)
			}
			x += w
		}
		if x < width && markedAt(sels[1:], nil, buffer.Point{Line: line, Column: len(text)}) {
			s.SetContent(x, row, ' ', nil, marked)
		}
	}

	modified := ""
	if doc.IsModified() {
		modified = "*"
	}
	status := fmt.Sprintf(" %s%s | %s | %d:%d | %d cursors | %s",
		doc.Name, modified, doc.LanguageAt(primary), primary.Line+1, primary.Column+1, len(sels), e.status)
	drawString(s, 0, height-1, width, status, plain.Reverse(true))

	cx := displayWidth(doc.LineText(primary.Line)[:primary.Column], tab)
	s.ShowCursor(cx, primary.Line-e.top)
	s.Show()
}

// markedAt reports whether p is a secondary cursor position or lies inside
// any non-empty selection.
func markedAt(secondary, all []cursor.Selection, p buffer.Point) bool {
	for _, sel := range secondary {
		if sel.Cursor() == p {
			return true
		}
	}
	for _, sel := range all {
		if !sel.IsEmpty() && !p.Before(sel.Start()) && p.Before(sel.End()) {
			return true
		}
	}
	return false
}
