// Package dispatcher fans one editing intent out across every cursor and
// commits the resulting edits as a single transaction.
//
// For each cursor the dispatcher resolves the language at the cursor,
// looks up its comment grammar, analyses the position and asks the
// intent's planner for a plan. If every cursor abstains, nothing is
// mutated and Dispatch reports the event as not handled so the host runs
// its default key behaviour. Otherwise the consuming plans are validated,
// ordered by position, stripped of conflicts and applied in one atomic
// host call.
//
// No error escapes Dispatch. Unknown languages abstain, malformed or
// conflicting plans are dropped, and a rejected apply reports not handled.
package dispatcher
