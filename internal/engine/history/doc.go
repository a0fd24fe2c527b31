// Package history provides undo and redo for a document.
//
// Every change is recorded as an Entry holding the edits that were applied,
// the edits that revert them, and the selections in place before the
// change. Entries are replayed on a Target:
//
//	h := history.New(1000)
//	inverse, _ := buf.ApplyInverse(edits)
//	h.Push(history.Entry{Label: "type", Edits: edits, Inverse: inverse, Selections: sels})
//
//	h.Undo(doc) // applies inverse, restores sels
//	h.Redo(doc) // reapplies edits, maps sels through them
//
// A multi-cursor comment transaction is a single entry, so one undo
// reverts every cursor's edit together.
package history
