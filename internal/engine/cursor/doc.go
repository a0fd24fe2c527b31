// Package cursor provides selection values for multi-cursor editing.
//
// A Selection is an anchor/head pair of buffer Points; a collapsed selection
// is a plain cursor. Selections are immutable values. Normalize sorts and
// merges a cursor set the way the host expects it back after a dispatch,
// and Transform maps selections through applied edits.
package cursor
