package grammar

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinsValid(t *testing.T) {
	seen := make(map[string]bool)
	for _, g := range Builtins() {
		if err := g.Validate(); err != nil {
			t.Errorf("builtin %s: %v", g.Language, err)
		}
		if seen[g.Language] {
			t.Errorf("builtin %s registered twice", g.Language)
		}
		seen[g.Language] = true
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewDefaultRegistry()

	g, err := r.Lookup("go")
	if err != nil {
		t.Fatalf("Lookup(go) error = %v", err)
	}
	if g.LineMarker != "//" || g.BlockContinuation != " * " {
		t.Errorf("go grammar = %+v", g)
	}

	alias, err := r.Lookup(" Golang ")
	if err != nil {
		t.Fatalf("Lookup(Golang) error = %v", err)
	}
	if alias.Language != "go" {
		t.Errorf("alias resolved to %q, want go", alias.Language)
	}

	_, err = r.Lookup("brainfuck")
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("Lookup(unknown) error = %v, want ErrUnknownLanguage", err)
	}
}

func TestRegistryOverride(t *testing.T) {
	r := NewDefaultRegistry()
	err := r.Register(Grammar{Language: "go", LineMarker: "///"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	g, _ := r.Lookup("go")
	if g.LineMarker != "///" || g.HasBlock() {
		t.Errorf("override not applied: %+v", g)
	}
}

func TestRegistryLookupReturnsCopy(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Grammar{Language: "x", LineMarker: "#", Aliases: []string{"y"}})
	g, _ := r.Lookup("x")
	g.Aliases[0] = "mutated"
	again, _ := r.Lookup("x")
	if again.Aliases[0] != "y" {
		t.Errorf("registry grammar mutated through Lookup result")
	}
}

func TestGrammarValidate(t *testing.T) {
	tests := []struct {
		name string
		g    Grammar
		ok   bool
	}{
		{"line only", Grammar{Language: "a", LineMarker: "#"}, true},
		{"block only", Grammar{Language: "a", BlockStart: "<!--", BlockEnd: "-->"}, true},
		{"no language", Grammar{LineMarker: "#"}, false},
		{"no markers", Grammar{Language: "a"}, false},
		{"half block", Grammar{Language: "a", BlockStart: "/*"}, false},
		{"symmetric nesting", Grammar{Language: "a", BlockStart: `"""`, BlockEnd: `"""`, AllowsNesting: true}, false},
		{"multiline marker", Grammar{Language: "a", LineMarker: "#\n"}, false},
		{"continuation without block", Grammar{Language: "a", LineMarker: "#", BlockContinuation: " * "}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidGrammar) {
				t.Errorf("Validate() error = %v, want ErrInvalidGrammar", err)
			}
		})
	}
}

func TestRegistryReplace(t *testing.T) {
	r := NewDefaultRegistry()
	before := r.Len()

	err := r.Replace([]Grammar{{Language: "a", LineMarker: "#"}, {Language: ""}})
	if !errors.Is(err, ErrInvalidGrammar) {
		t.Fatalf("Replace() error = %v, want ErrInvalidGrammar", err)
	}
	if r.Len() != before {
		t.Errorf("Len() = %d after failed Replace, want %d", r.Len(), before)
	}

	if err := r.Replace([]Grammar{{Language: "a", LineMarker: "#"}}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if r.Len() != 1 || r.Has("go") {
		t.Errorf("Replace() left %v", r.Languages())
	}
}

func TestLanguageForPath(t *testing.T) {
	r := NewDefaultRegistry()
	tests := map[string]string{
		"main.go":               "go",
		"/src/lib.RS":           "rust",
		"Makefile":              "make",
		"docs/README.md":        "markdown",
		"component.tsx":         "typescript",
		"unknown.extension":     "",
		"/etc/nginx/Dockerfile": "dockerfile",
	}
	for path, want := range tests {
		if got := r.LanguageForPath(path); got != want {
			t.Errorf("LanguageForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestClear(t *testing.T) {
	r := NewDefaultRegistry()
	r.Clear()
	if r.Len() != 0 || r.LanguageForPath("a.go") != "" {
		t.Errorf("Clear() left grammars behind")
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
grammars:
  - language: nim
    line: "#"
    block_start: "#["
    block_end: "]#"
    nesting: true
    extensions: [".nim"]
`)
	gs, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if len(gs) != 1 || gs[0].BlockEnd != "]#" || !gs[0].AllowsNesting {
		t.Fatalf("ParseYAML() = %+v", gs)
	}

	out, err := MarshalYAML(gs)
	if err != nil {
		t.Fatalf("MarshalYAML() error = %v", err)
	}
	again, err := ParseYAML(out)
	if err != nil || len(again) != 1 || again[0].Language != "nim" {
		t.Errorf("re-parse = %+v, %v", again, err)
	}
}

func TestLoadYAMLFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("grammars:\n  - language: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadYAMLFile(path); !errors.Is(err, ErrInvalidGrammar) {
		t.Errorf("LoadYAMLFile() error = %v, want ErrInvalidGrammar", err)
	}
	if _, err := LoadYAMLFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadYAMLFile(missing) error = nil")
	}
}
