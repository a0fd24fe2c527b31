package planner

import (
	"strings"

	"github.com/dshills/commentator/internal/analyzer"
	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/grammar"
)

// Toggle plans the Inline key: it comments or uncomments every line
// covered by each cursor's selection.
//
// One direction is chosen per invocation. If more than half of the
// non-blank lines across all cursors are already commented, every
// commented line is uncommented; otherwise every non-blank line gets a
// marker. Blank lines are left alone. Grammars without a line marker wrap
// each line in block delimiters instead.
type Toggle struct{}

// Intent returns IntentToggle.
func (Toggle) Intent() Intent { return IntentToggle }

// Plan decides the direction across all requests, then plans each one.
func (Toggle) Plan(reqs []Request) []Plan {
	uncomment, ok := majorityCommented(reqs)
	plans := make([]Plan, len(reqs))
	for i, req := range reqs {
		if !ok {
			plans[i] = Abstain("no non-blank lines")
			continue
		}
		plans[i] = toggleLines(req, uncomment)
	}
	return plans
}

// majorityCommented reports whether the majority of distinct non-blank
// lines under the requests are commented. ok is false when there are no
// non-blank lines.
func majorityCommented(reqs []Request) (uncomment, ok bool) {
	seen := make(map[int]bool)
	var total, commented int
	for _, req := range reqs {
		g := req.Context.Grammar
		first, last := req.Selection.Lines()
		for line := first; line <= last; line++ {
			if seen[line] {
				continue
			}
			seen[line] = true
			text := req.Source.LineText(line)
			if strings.TrimSpace(text) == "" {
				continue
			}
			total++
			if IsCommented(text, g) {
				commented++
			}
		}
	}
	return commented*2 > total, total > 0
}

// toggleLines plans one request's lines in the chosen direction.
func toggleLines(req Request, uncomment bool) Plan {
	g := req.Context.Grammar
	first, last := req.Selection.Lines()

	var edits []buffer.Edit
	for line := first; line <= last; line++ {
		text := req.Source.LineText(line)
		if strings.TrimSpace(text) == "" {
			continue
		}
		if uncomment {
			edits = append(edits, uncommentLine(line, text, g)...)
		} else {
			edits = append(edits, commentLine(line, text, g)...)
		}
	}
	if len(edits) == 0 {
		return Abstain("nothing to toggle")
	}
	return Replace(edits...)
}

// IsCommented reports whether a line is commented under g: it starts with
// the line marker, or for block-only grammars is one comment wrapping the
// whole line, with no closer before the final one.
func IsCommented(text string, g grammar.Grammar) bool {
	trimmed := strings.TrimSpace(text)
	if g.HasLine() {
		return strings.HasPrefix(trimmed, g.LineMarker)
	}
	if !g.HasBlock() ||
		len(trimmed) < len(g.BlockStart)+len(g.BlockEnd) ||
		!strings.HasPrefix(trimmed, g.BlockStart) ||
		!strings.HasSuffix(trimmed, g.BlockEnd) {
		return false
	}
	inner := trimmed[len(g.BlockStart) : len(trimmed)-len(g.BlockEnd)]
	return !strings.Contains(inner, g.BlockEnd)
}

// commentLine inserts markers after the line's indentation. A block-only
// line that already holds a closer is left alone unless the grammar nests,
// since wrapping it would end the new comment early.
func commentLine(line int, text string, g grammar.Grammar) []buffer.Edit {
	at := buffer.Point{Line: line, Column: len(analyzer.LeadingWhitespace(text))}
	if g.HasLine() {
		return []buffer.Edit{buffer.NewInsert(at, g.LineMarker+" ")}
	}
	if !g.HasBlock() || (!g.AllowsNesting && strings.Contains(text, g.BlockEnd)) {
		return nil
	}
	end := buffer.Point{Line: line, Column: len(strings.TrimRight(text, " \t"))}
	return []buffer.Edit{
		buffer.NewInsert(at, g.BlockStart+" "),
		buffer.NewInsert(end, " "+g.BlockEnd),
	}
}

// uncommentLine removes the marker and exactly one following space.
func uncommentLine(line int, text string, g grammar.Grammar) []buffer.Edit {
	if !IsCommented(text, g) {
		return nil
	}
	indent := len(analyzer.LeadingWhitespace(text))

	if g.HasLine() {
		end := indent + len(g.LineMarker)
		if end < len(text) && text[end] == ' ' {
			end++
		}
		return []buffer.Edit{buffer.NewDelete(
			buffer.Point{Line: line, Column: indent},
			buffer.Point{Line: line, Column: end},
		)}
	}

	open := indent + len(g.BlockStart)
	if open < len(text) && text[open] == ' ' {
		open++
	}
	stop := len(strings.TrimRight(text, " \t"))
	closeAt := stop - len(g.BlockEnd)
	if closeAt > open && text[closeAt-1] == ' ' {
		closeAt--
	}
	if closeAt < open {
		closeAt = open
	}
	return []buffer.Edit{
		buffer.NewDelete(buffer.Point{Line: line, Column: indent}, buffer.Point{Line: line, Column: open}),
		buffer.NewDelete(buffer.Point{Line: line, Column: closeAt}, buffer.Point{Line: line, Column: stop}),
	}
}
