package dispatcher

import (
	"github.com/dshills/commentator/internal/analyzer"
	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/engine/cursor"
	"github.com/dshills/commentator/internal/grammar"
)

// Host is the editing substrate owned by the host editor. The dispatcher
// borrows it for the duration of one Dispatch call and keeps nothing.
type Host interface {
	analyzer.LineSource

	// Apply commits edits atomically. Each edit is interpreted against the
	// state left by the edits before it.
	Apply(edits []buffer.Edit) error

	// Selections returns the active cursors and selections.
	Selections() []cursor.Selection

	// SetSelections replaces the active cursors and selections.
	SetSelections(sels []cursor.Selection)

	// LanguageAt returns the language identifier in effect at p.
	LanguageAt(p buffer.Point) string
}

// GrammarSource resolves a language identifier to its comment grammar.
// *grammar.Registry implements it.
type GrammarSource interface {
	Lookup(lang string) (grammar.Grammar, error)
}
