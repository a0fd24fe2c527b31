package grammar

import (
	"fmt"
	"strings"
)

// Grammar is the comment syntax of one language.
// Grammars are values; a registered grammar is never mutated.
type Grammar struct {
	Language          string   `yaml:"language" toml:"language"`
	LineMarker        string   `yaml:"line,omitempty" toml:"line"`
	BlockStart        string   `yaml:"block_start,omitempty" toml:"block_start"`
	BlockEnd          string   `yaml:"block_end,omitempty" toml:"block_end"`
	BlockContinuation string   `yaml:"continuation,omitempty" toml:"continuation"`
	AllowsNesting     bool     `yaml:"nesting,omitempty" toml:"nesting"`
	Aliases           []string `yaml:"aliases,omitempty" toml:"aliases"`
	Extensions        []string `yaml:"extensions,omitempty" toml:"extensions"`
}

// HasLine reports whether the grammar has a line comment marker.
func (g Grammar) HasLine() bool {
	return g.LineMarker != ""
}

// HasBlock reports whether the grammar has block comment delimiters.
func (g Grammar) HasBlock() bool {
	return g.BlockStart != "" && g.BlockEnd != ""
}

// Validate checks that the grammar can drive the comment engine.
func (g Grammar) Validate() error {
	if normalize(g.Language) == "" {
		return fmt.Errorf("%w: missing language", ErrInvalidGrammar)
	}
	if (g.BlockStart == "") != (g.BlockEnd == "") {
		return fmt.Errorf("%w: %s: block_start and block_end must be set together", ErrInvalidGrammar, g.Language)
	}
	if !g.HasLine() && !g.HasBlock() {
		return fmt.Errorf("%w: %s: needs a line marker or block delimiters", ErrInvalidGrammar, g.Language)
	}
	if g.AllowsNesting && g.BlockStart == g.BlockEnd {
		return fmt.Errorf("%w: %s: symmetric block delimiters cannot nest", ErrInvalidGrammar, g.Language)
	}
	for _, m := range []string{g.LineMarker, g.BlockStart, g.BlockEnd, g.BlockContinuation} {
		if strings.ContainsAny(m, "\r\n") {
			return fmt.Errorf("%w: %s: markers cannot span lines", ErrInvalidGrammar, g.Language)
		}
	}
	if g.BlockContinuation != "" && !g.HasBlock() {
		return fmt.Errorf("%w: %s: continuation without block delimiters", ErrInvalidGrammar, g.Language)
	}
	return nil
}

// clone returns a copy that shares no slices with g.
func (g Grammar) clone() Grammar {
	g.Language = normalize(g.Language)
	g.Aliases = append([]string(nil), g.Aliases...)
	g.Extensions = append([]string(nil), g.Extensions...)
	return g
}

// normalize canonicalises a language identifier.
func normalize(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
