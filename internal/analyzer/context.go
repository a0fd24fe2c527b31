package analyzer

import (
	"strings"

	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/grammar"
)

// Kind classifies where a cursor sits relative to comment structure.
type Kind uint8

const (
	// KindNone means the cursor is not in a comment.
	KindNone Kind = iota
	// KindLine means the cursor is in a line comment.
	KindLine
	// KindBlockBody means the cursor is inside an open block comment.
	KindBlockBody
	// KindBlockBoundaryOpen means the cursor is immediately after a block opener.
	KindBlockBoundaryOpen
	// KindBlockBoundaryClose means the cursor is immediately before a block closer.
	KindBlockBoundaryClose
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindLine:
		return "line"
	case KindBlockBody:
		return "block-body"
	case KindBlockBoundaryOpen:
		return "block-open"
	case KindBlockBoundaryClose:
		return "block-close"
	default:
		return "unknown"
	}
}

// IsBlock reports whether the kind is any block comment position.
func (k Kind) IsBlock() bool {
	return k == KindBlockBody || k == KindBlockBoundaryOpen || k == KindBlockBoundaryClose
}

// Context describes a cursor position. It is derived fresh for every event
// and never cached, since the buffer changes between events.
type Context struct {
	// Position is the analysed cursor position, clamped to the line.
	Position buffer.Point

	// LineText is the full text of the cursor's line.
	LineText string

	// Indentation is the leading whitespace of the cursor's line.
	Indentation string

	// Inside classifies the cursor.
	Inside Kind

	// Grammar is the comment grammar the classification used.
	Grammar grammar.Grammar

	// Prefix is the text that keeps a new line inside the same comment:
	// the line marker for KindLine, the block continuation for block body
	// and opener positions, empty otherwise.
	Prefix string

	// Marker is the comment marker text alignment measures from.
	Marker string

	// Base is the indentation continuation lines and alignment start from.
	// For line comments it equals Indentation; inside a block it is the
	// indentation of the line holding the unmatched opener, so that
	// continuation markers stay in one column.
	Base string

	// Opener is the position of the unmatched block opener when Inside is a
	// block kind.
	Opener buffer.Point
}

// InComment reports whether the cursor is in any kind of comment.
func (c Context) InComment() bool {
	return c.Inside != KindNone
}

// Before returns the line text left of the cursor.
func (c Context) Before() string {
	return c.LineText[:c.Position.Column]
}

// After returns the line text right of the cursor.
func (c Context) After() string {
	return c.LineText[c.Position.Column:]
}

// TargetColumn is the canonical column comment text starts at: the base
// indentation, the marker, and one separating space.
func (c Context) TargetColumn() int {
	return len(c.Base) + len(c.Marker) + 1
}

// Body returns the line's comment content after the line marker, trimmed.
// It is empty unless Inside is KindLine.
func (c Context) Body() string {
	if c.Inside != KindLine {
		return ""
	}
	rest := strings.TrimLeft(c.LineText, " \t")
	return strings.TrimSpace(strings.TrimPrefix(rest, c.Grammar.LineMarker))
}

// LeadingWhitespace returns the run of spaces and tabs at the start of s.
func LeadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
