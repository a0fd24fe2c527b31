package analyzer

import (
	"strings"

	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/grammar"
)

// DefaultWindow is the number of lines above the cursor searched for an
// unmatched block opener.
const DefaultWindow = 200

// LineSource is the read side of the host buffer.
type LineSource interface {
	LineCount() int
	LineText(line int) string
}

// Analyzer classifies cursor positions.
type Analyzer struct {
	window int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWindow bounds how many preceding lines are scanned.
func WithWindow(lines int) Option {
	return func(a *Analyzer) {
		if lines > 0 {
			a.window = lines
		}
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{window: DefaultWindow}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Window returns the look-back window in lines.
func (a *Analyzer) Window() int {
	return a.window
}

// Analyze classifies pos under g using a default Analyzer.
func Analyze(src LineSource, pos buffer.Point, g grammar.Grammar) Context {
	return New().Analyze(src, pos, g)
}

// Analyze classifies pos under g.
func (a *Analyzer) Analyze(src LineSource, pos buffer.Point, g grammar.Grammar) Context {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if n := src.LineCount(); pos.Line >= n && n > 0 {
		pos.Line = n - 1
	}
	line := src.LineText(pos.Line)
	if pos.Column < 0 {
		pos.Column = 0
	}
	if pos.Column > len(line) {
		pos.Column = len(line)
	}

	ctx := Context{
		Position:    pos,
		LineText:    line,
		Indentation: LeadingWhitespace(line),
		Grammar:     g,
	}
	ctx.Base = ctx.Indentation

	if g.HasBlock() {
		if opener, ok := a.findOpener(src, pos, g); ok {
			a.classifyBlock(&ctx, src, opener)
			return ctx
		}
	}

	if g.HasLine() && isLineComment(ctx.Before(), g) {
		ctx.Inside = KindLine
		ctx.Prefix = g.LineMarker
		ctx.Marker = g.LineMarker
	}
	return ctx
}

// classifyBlock fills in the block-related fields of ctx.
func (a *Analyzer) classifyBlock(ctx *Context, src LineSource, opener buffer.Point) {
	g := ctx.Grammar
	ctx.Opener = opener
	ctx.Base = LeadingWhitespace(src.LineText(opener.Line))

	switch {
	case strings.HasSuffix(ctx.Before(), g.BlockStart):
		ctx.Inside = KindBlockBoundaryOpen
		ctx.Prefix = g.BlockContinuation
		ctx.Marker = g.BlockStart
	case strings.HasPrefix(ctx.After(), g.BlockEnd):
		ctx.Inside = KindBlockBoundaryClose
		ctx.Marker = strings.TrimRight(g.BlockContinuation, " \t")
	default:
		ctx.Inside = KindBlockBody
		ctx.Prefix = g.BlockContinuation
		ctx.Marker = strings.TrimRight(g.BlockContinuation, " \t")
	}
}

// isLineComment reports whether text, the line up to the cursor, is a line
// comment: after leading whitespace it starts with the line marker.
func isLineComment(text string, g grammar.Grammar) bool {
	trimmed := strings.TrimLeft(text, " \t")
	return strings.HasPrefix(trimmed, g.LineMarker)
}

// findOpener scans forward from the top of the window to pos and returns
// the innermost block opener still unmatched at pos. Outside a block the
// line marker ends the line; inside a block only delimiters count. Nesting
// grammars stack openers, other grammars close on the first closer. A
// closer met outside any block closes one opened above the window.
func (a *Analyzer) findOpener(src LineSource, pos buffer.Point, g grammar.Grammar) (buffer.Point, bool) {
	first := pos.Line - a.window
	if first < 0 {
		first = 0
	}

	var open []buffer.Point
	for ln := first; ln <= pos.Line; ln++ {
		text := src.LineText(ln)
		if ln == pos.Line {
			text = text[:pos.Column]
		}
		open = scanLine(text, ln, g, open)
	}
	if len(open) == 0 {
		return buffer.Point{}, false
	}
	return open[len(open)-1], true
}

// scanLine advances the stack of unmatched openers across one line.
func scanLine(text string, line int, g grammar.Grammar, open []buffer.Point) []buffer.Point {
	for i := 0; i < len(text); {
		rest := text[i:]
		if len(open) > 0 {
			switch {
			case strings.HasPrefix(rest, g.BlockEnd):
				open = open[:len(open)-1]
				i += len(g.BlockEnd)
			case g.AllowsNesting && strings.HasPrefix(rest, g.BlockStart):
				open = append(open, buffer.Point{Line: line, Column: i})
				i += len(g.BlockStart)
			default:
				i++
			}
			continue
		}

		switch {
		case strings.HasPrefix(rest, g.BlockStart):
			open = append(open, buffer.Point{Line: line, Column: i})
			i += len(g.BlockStart)
		case g.HasLine() && strings.HasPrefix(rest, g.LineMarker):
			return open
		case strings.HasPrefix(rest, g.BlockEnd):
			i += len(g.BlockEnd)
		default:
			i++
		}
	}
	return open
}
