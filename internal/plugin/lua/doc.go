// Package lua runs grammar scripts in a sandboxed gopher-lua state.
//
// A grammar script registers comment grammars through the commentator
// module:
//
//	commentator.grammar {
//	  language     = "nim",
//	  line         = "#",
//	  block_start  = "#[",
//	  block_end    = "]#",
//	  nesting      = true,
//	  extensions   = { ".nim", ".nims" },
//	}
//
// Only the base, table, string and math libraries are opened, and the base
// functions that reach the file system (dofile, loadfile, require) are
// removed. Each script runs under a wall-clock timeout.
package lua
