// Package engine is the host-facing entry point of the comment formatter.
//
// An Engine is bound to one host document. The host forwards its Tab,
// Enter and Inline-comment keys to OnTab, OnEnter and OnInline and
// suppresses its default key behaviour only when they return true:
//
//	e := engine.New(doc)
//	defer e.Destroy()
//
//	if !e.OnEnter() {
//		doc.InsertNewline()
//	}
//
// The engine never caches buffer content. Each event reanalyses the
// current text at every cursor, plans the edits for the intent and
// commits them as one atomic transaction through the Host interface.
//
// The buffer and cursor subpackages provide an in-memory implementation
// of the host substrate used by the command line tools and tests.
package engine
