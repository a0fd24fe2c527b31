package planner

import (
	"strings"
	"testing"

	"github.com/dshills/commentator/internal/analyzer"
	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/engine/cursor"
	"github.com/dshills/commentator/internal/grammar"
)

var (
	lineGrammar  = grammar.Grammar{Language: "x", LineMarker: "//"}
	blockGrammar = grammar.Grammar{Language: "x", BlockStart: "/*", BlockEnd: "*/", BlockContinuation: " * "}
	goGrammar    = grammar.Grammar{
		Language: "go", LineMarker: "//",
		BlockStart: "/*", BlockEnd: "*/", BlockContinuation: " * ",
	}
	htmlGrammar = grammar.Grammar{Language: "html", BlockStart: "<!--", BlockEnd: "-->"}
)

// request analyses a cursor in text and builds a planner request.
func request(b *buffer.Buffer, sel cursor.Selection, g grammar.Grammar) Request {
	return Request{
		Context:   analyzer.Analyze(b, sel.Head, g),
		Selection: sel,
		Source:    b,
	}
}

func at(line, col int) cursor.Selection {
	return cursor.NewCursorSelection(buffer.Point{Line: line, Column: col})
}

// apply commits a single consuming plan to b.
func apply(t *testing.T, b *buffer.Buffer, p Plan) {
	t.Helper()
	if p.Abstained() {
		t.Fatalf("plan abstained: %s", p.Reason)
	}
	// Edits within a plan are in pre-event coordinates; apply from the end.
	for i := len(p.Edits) - 1; i >= 0; i-- {
		if err := b.Apply([]buffer.Edit{p.Edits[i]}); err != nil {
			t.Fatalf("Apply(%v) error = %v", p.Edits[i], err)
		}
	}
}

func TestContinue(t *testing.T) {
	tests := []struct {
		name string
		text string
		sel  cursor.Selection
		g    grammar.Grammar
		want string
	}{
		{"line comment", "  // hello", at(0, 10), lineGrammar, "  // hello\n  // "},
		{"line comment mid text", "// hello world", at(0, 8), lineGrammar, "// hello\n// world"},
		{"block body", "/*\n * doc\n", at(1, 6), blockGrammar, "/*\n * doc\n * \n"},
		{"block open", "/*", at(0, 2), blockGrammar, "/*\n * "},
		{"block close", "/*\n * foo */", at(1, 7), blockGrammar, "/*\n * foo \n */"},
		{"block without continuation", "<!--\n  text", at(1, 6), htmlGrammar, "<!--\n  text\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.NewBufferFromString(tt.text)
			plans := Continue{}.Plan([]Request{request(b, tt.sel, tt.g)})
			apply(t, b, plans[0])
			if got := b.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContinueAbstains(t *testing.T) {
	tests := []struct {
		name string
		text string
		sel  cursor.Selection
	}{
		{"code", "x := 1", at(0, 6)},
		{"empty comment", "  // ", at(0, 5)},
		{"bare marker", "//", at(0, 2)},
		{"selection", "// abc", cursor.NewSelection(buffer.Point{Column: 3}, buffer.Point{Column: 6})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.NewBufferFromString(tt.text)
			p := Continue{}.Plan([]Request{request(b, tt.sel, goGrammar)})[0]
			if !p.Abstained() || len(p.Edits) != 0 {
				t.Errorf("plan = %+v, want abstain", p)
			}
		})
	}
}

func TestContinueIdempotence(t *testing.T) {
	for _, g := range grammar.Builtins() {
		if !g.HasLine() {
			continue
		}
		t.Run(g.Language, func(t *testing.T) {
			b := buffer.NewBufferFromString("\t" + g.LineMarker + " hello")
			sel := at(0, len(b.LineText(0)))
			p := Continue{}.Plan([]Request{request(b, sel, g)})[0]
			apply(t, b, p)

			end := p.Edits[0].NewEnd()
			ctx := analyzer.Analyze(b, end, g)
			if ctx.Inside != analyzer.KindLine {
				t.Errorf("continued line %q classified %v, want line", b.LineText(1), ctx.Inside)
			}
		})
	}
}

func TestAlign(t *testing.T) {
	tests := []struct {
		name string
		text string
		sel  cursor.Selection
		want string
	}{
		{"pads to target", "  //x", at(0, 4), "  // x"},
		{"single space at target", "  // x", at(0, 5), "  //  x"},
		{"single space past target", "// hello", at(0, 8), "// hello "},
		{"block body", "/*\n *x", at(1, 2), "/*\n * x"},
		{"block open", "/*", at(0, 2), "/* "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.NewBufferFromString(tt.text)
			p := Align{}.Plan([]Request{request(b, tt.sel, goGrammar)})[0]
			apply(t, b, p)
			if got := b.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlignBlockTargetFollowsOpenerIndentation(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		sel    cursor.Selection
		target int
		want   string
	}{
		{"text one space after star", "/*\n * doc", at(1, 3), 3, "/*\n *  doc"},
		{"indented opener", "  /*\n   *doc", at(1, 4), 5, "  /*\n   * doc"},
		{"line indentation ignored", "/*\n    *doc", at(1, 5), 3, "/*\n    * doc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := buffer.NewBufferFromString(tt.text)
			req := request(b, tt.sel, goGrammar)
			if got := req.Context.TargetColumn(); got != tt.target {
				t.Errorf("TargetColumn() = %d, want %d", got, tt.target)
			}
			apply(t, b, Align{}.Plan([]Request{req})[0])
			if got := b.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAlignNonDestructive(t *testing.T) {
	b := buffer.NewBufferFromString("//x")
	pos := buffer.Point{Column: 2}
	for i := 0; i < 3; i++ {
		before := b.Text()
		p := Align{}.Plan([]Request{request(b, cursor.NewCursorSelection(pos), goGrammar)})[0]
		for _, e := range p.Edits {
			if !e.Range.IsEmpty() {
				t.Fatalf("align edit %v removes text", e)
			}
		}
		apply(t, b, p)
		pos = p.Edits[0].NewEnd()
		if len(b.Text()) <= len(before) {
			t.Fatalf("iteration %d did not grow text", i)
		}
		if pos.Column < 3 {
			t.Errorf("iteration %d cursor column %d < target 3", i, pos.Column)
		}
	}
}

func TestNonCommentContextsAbstain(t *testing.T) {
	texts := []string{"x := 1", "  return nil", "a /* b */ c", "fmt.Println(\"//\")"}
	for _, text := range texts {
		b := buffer.NewBufferFromString(text)
		sel := at(0, len(text))
		req := request(b, sel, goGrammar)
		if req.Context.InComment() {
			continue
		}
		for _, p := range []Planner{Continue{}, Align{}} {
			if plan := p.Plan([]Request{req})[0]; !plan.Abstained() {
				t.Errorf("%s on %q = %+v, want abstain", p.Intent(), text, plan)
			}
		}
		if b.Revision() != 0 {
			t.Errorf("buffer mutated for %q", text)
		}
	}
}

func TestToggleMajorityUncomments(t *testing.T) {
	b := buffer.NewBufferFromString("// a\n// b\nc")
	sel := cursor.NewSelection(buffer.Point{}, buffer.Point{Line: 2, Column: 1})
	p := Toggle{}.Plan([]Request{request(b, sel, goGrammar)})[0]
	apply(t, b, p)
	if got := b.Text(); got != "a\nb\nc" {
		t.Errorf("Text() = %q, want all uncommented", got)
	}
}

func TestToggleMinorityComments(t *testing.T) {
	b := buffer.NewBufferFromString("// a\nb\n\n  c")
	sel := cursor.NewSelection(buffer.Point{}, buffer.Point{Line: 3, Column: 3})
	p := Toggle{}.Plan([]Request{request(b, sel, goGrammar)})[0]
	apply(t, b, p)
	if got := b.Text(); got != "// // a\n// b\n\n  // c" {
		t.Errorf("Text() = %q", got)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	originals := []string{"x := 1", "    return err", "\tfoo()  ", "//already"}
	for _, g := range []grammar.Grammar{goGrammar, htmlGrammar} {
		for _, text := range originals {
			b := buffer.NewBufferFromString(text)
			if IsCommented(text, g) {
				continue
			}
			apply(t, b, Toggle{}.Plan([]Request{request(b, at(0, 0), g)})[0])
			if !IsCommented(b.LineText(0), g) {
				t.Fatalf("%s: %q not commented after toggle", g.Language, b.LineText(0))
			}
			apply(t, b, Toggle{}.Plan([]Request{request(b, at(0, 0), g)})[0])
			if got := b.Text(); got != text {
				t.Errorf("%s: round trip %q -> %q", g.Language, text, got)
			}
		}
	}
}

func TestToggleBlockOnlyMixedLine(t *testing.T) {
	text := "<!-- a --> b <!-- c -->"
	if IsCommented(text, htmlGrammar) {
		t.Fatalf("IsCommented(%q) = true, want false", text)
	}
	b := buffer.NewBufferFromString(text)
	if p := (Toggle{}).Plan([]Request{request(b, at(0, 0), htmlGrammar)})[0]; !p.Abstained() {
		t.Errorf("plan = %+v, want abstain", p)
	}

	b = buffer.NewBufferFromString("  <!-- a -->")
	apply(t, b, Toggle{}.Plan([]Request{request(b, at(0, 0), htmlGrammar)})[0])
	if got := b.Text(); got != "  a" {
		t.Errorf("Text() = %q, want %q", got, "  a")
	}
}

func TestToggleUncommentsWithoutSpace(t *testing.T) {
	b := buffer.NewBufferFromString("  //x\n  //  y")
	sel := cursor.NewSelection(buffer.Point{}, buffer.Point{Line: 1, Column: 7})
	apply(t, b, Toggle{}.Plan([]Request{request(b, sel, goGrammar)})[0])
	if got := b.Text(); got != "  x\n   y" {
		t.Errorf("Text() = %q", got)
	}
}

func TestToggleDirectionPerInvocation(t *testing.T) {
	b := buffer.NewBufferFromString("// a\n// b\nc")
	reqs := []Request{
		request(b, at(0, 0), goGrammar),
		request(b, at(1, 0), goGrammar),
		request(b, at(2, 0), goGrammar),
	}
	plans := Toggle{}.Plan(reqs)
	if !plans[2].Abstained() {
		t.Errorf("uncommented line planned %+v during uncomment-all", plans[2])
	}
	for i := 0; i < 2; i++ {
		if plans[i].Abstained() || plans[i].Edits[0].NewText != "" {
			t.Errorf("plan %d = %+v, want removal", i, plans[i])
		}
	}
}

func TestToggleBlankAbstains(t *testing.T) {
	b := buffer.NewBufferFromString("   ")
	if p := (Toggle{}).Plan([]Request{request(b, at(0, 1), goGrammar)})[0]; !p.Abstained() {
		t.Errorf("plan = %+v, want abstain", p)
	}
}

func TestIntent(t *testing.T) {
	for _, intent := range Intents {
		parsed, err := ParseIntent(strings.ToUpper(intent.String()))
		if err != nil || parsed != intent {
			t.Errorf("ParseIntent(%q) = %v, %v", intent, parsed, err)
		}
		p, ok := For(intent)
		if !ok || p.Intent() != intent {
			t.Errorf("For(%v) = %v, %v", intent, p, ok)
		}
	}
	if _, err := ParseIntent("escape"); err == nil {
		t.Error("ParseIntent(escape) error = nil")
	}
	if _, ok := For(Intent(9)); ok {
		t.Error("For(9) ok = true")
	}
}

func TestPlanRange(t *testing.T) {
	p := Replace(
		buffer.NewInsert(buffer.Point{Line: 2, Column: 1}, "x"),
		buffer.NewDelete(buffer.Point{Line: 0, Column: 0}, buffer.Point{Line: 0, Column: 3}),
	)
	want := buffer.NewPointRange(buffer.Point{}, buffer.Point{Line: 2, Column: 1})
	if p.Range() != want {
		t.Errorf("Range() = %v, want %v", p.Range(), want)
	}
	if p.Edits[0].Range.Start.Line != 0 {
		t.Errorf("Replace() did not sort edits: %v", p.Edits)
	}
}
