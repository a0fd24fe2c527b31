// Package grammar describes comment syntax per language and keeps the
// registry the comment engine looks grammars up in.
//
// A Grammar names a language's line comment marker, block delimiters, the
// continuation prefix used on lines inside a block, and whether blocks nest.
// Registries are populated at configuration time, from the built-in table,
// TOML config, YAML grammar packs or Lua scripts, and are only read while
// key events are processed.
//
//	reg := grammar.NewDefaultRegistry()
//	g, err := reg.Lookup("go")
//	if errors.Is(err, grammar.ErrUnknownLanguage) {
//	    // abstain
//	}
//	_ = g.LineMarker // "//"
package grammar
