// Package buffer provides the text substrate the comment engine edits.
//
// Positions are line/column Points (both 0-indexed, column in bytes) and
// edits are PointRange replacements. Buffer is an in-memory, line-oriented
// implementation of the host buffer contract: it serves line reads, applies a
// batch of edits atomically, and reports the language in effect at a
// position. Hosts with their own document model only need to satisfy the
// same small interface.
//
// # Applying Edits
//
// Apply interprets each edit against the buffer state produced by the edits
// before it. Either every edit applies or none does:
//
//	b := buffer.NewBufferFromString("// hello", buffer.WithLanguage("go"))
//	err := b.Apply([]buffer.Edit{
//	    buffer.NewInsert(buffer.Point{Line: 0, Column: 8}, "\n// "),
//	})
//	// b.Text() == "// hello\n// "
//
// # Languages
//
// A buffer has a default language and optional per-line overrides. Markdown
// buffers additionally resolve fenced code blocks to the fence's language.
package buffer
