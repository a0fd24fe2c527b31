// Package config loads commentator settings.
//
// Settings come from three places, later ones winning:
//
//  1. Built-in defaults (Default).
//  2. A TOML file, usually $XDG_CONFIG_HOME/commentator/config.toml.
//  3. COMMENTATOR_* environment variables.
//
// A config file looks like:
//
//	[log]
//	level = "debug"
//	file = "/tmp/commentator.log"
//
//	[analyzer]
//	window = 400
//
//	[grammars]
//	files = ["grammars.yaml"]
//	scripts = ["grammars.lua"]
//
//	[[grammar]]
//	language = "go"
//	line = "//"
//	block_start = "/*"
//	block_end = "*/"
//	continuation = " ** "
//
// Relative grammar file paths are resolved against the config file's
// directory. BuildGrammars merges the built-in grammars with every grammar
// source in the order builtins, YAML packs, Lua scripts, inline entries.
package config
