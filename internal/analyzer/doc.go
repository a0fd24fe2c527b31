// Package analyzer classifies a cursor position relative to comment
// structure.
//
// Analyze inspects the cursor's line and a bounded window of preceding
// lines and returns a Context: whether the cursor is outside any comment,
// in a line comment, in a block comment body, or sitting on a block
// boundary, together with the indentation and prefixes the planners need.
//
// Delimiters are matched textually. Comment markers inside string or
// character literals are not excluded, because grammars carry no literal
// syntax. Full-line line comments are skipped when searching for an open
// block, so "// see /*" does not open one.
package analyzer
