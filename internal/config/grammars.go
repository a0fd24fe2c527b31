package config

import (
	"fmt"

	"github.com/dshills/commentator/internal/grammar"
	"github.com/dshills/commentator/internal/plugin/lua"
)

// BuildGrammars merges the built-in grammars with every configured source.
// A grammar from a later source replaces an earlier one of the same
// language.
func (c *Config) BuildGrammars() ([]grammar.Grammar, error) {
	gs := grammar.Builtins()

	for _, path := range c.Grammars.Files {
		pack, err := grammar.LoadYAMLFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGrammarSource, err)
		}
		gs = append(gs, pack...)
	}

	for _, path := range c.Grammars.Scripts {
		script, err := lua.LoadGrammars(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrGrammarSource, path, err)
		}
		gs = append(gs, script...)
	}

	return append(gs, c.Grammar...), nil
}

// LoadRegistry replaces the contents of reg with the merged grammars. On
// error reg is unchanged.
func (c *Config) LoadRegistry(reg *grammar.Registry) error {
	gs, err := c.BuildGrammars()
	if err != nil {
		return err
	}
	return reg.Replace(gs)
}

// NewRegistry builds a registry from the merged grammars.
func (c *Config) NewRegistry() (*grammar.Registry, error) {
	reg := grammar.NewRegistry()
	if err := c.LoadRegistry(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
