package dispatcher

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/dshills/commentator/internal/analyzer"
	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/engine/cursor"
	"github.com/dshills/commentator/internal/planner"
)

// Transaction collects the consuming plans of one dispatch and turns them
// into a single ordered edit batch.
type Transaction struct {
	// ID correlates log lines for one dispatch.
	ID string

	entries []entry
	dropped []Drop

	// edits and owners hold the last Resolve result; owners[i] is the
	// cursor whose plan produced edits[i].
	edits  []buffer.Edit
	owners []int
}

type entry struct {
	cursor int
	plan   planner.Plan
}

// Drop records a plan that was removed from the transaction.
type Drop struct {
	Cursor int
	Err    error
}

// NewTransaction creates an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{ID: uuid.New().String()}
}

// Add queues the plan for a cursor. Abstained plans are ignored.
func (t *Transaction) Add(owner int, p planner.Plan) {
	if p.Abstained() {
		return
	}
	t.entries = append(t.entries, entry{cursor: owner, plan: p})
}

// Len returns the number of queued plans.
func (t *Transaction) Len() int {
	return len(t.entries)
}

// Dropped returns the plans removed by the last Resolve.
func (t *Transaction) Dropped() []Drop {
	return t.dropped
}

// Resolve validates the queued plans against src, drops malformed plans
// and plans that overlap an earlier-positioned one, and returns the kept
// edits in application order with offsets corrected: each edit's range is
// expressed in the coordinates produced by the edits before it.
func (t *Transaction) Resolve(src analyzer.LineSource) []buffer.Edit {
	t.dropped = nil
	t.edits, t.owners = nil, nil

	valid := make([]entry, 0, len(t.entries))
	for _, e := range t.entries {
		if err := validatePlan(src, e.plan); err != nil {
			t.dropped = append(t.dropped, Drop{Cursor: e.cursor, Err: err})
			continue
		}
		valid = append(valid, e)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].plan.Range().Start.Before(valid[j].plan.Range().Start)
	})

	var (
		kept []entry
		end  buffer.Point
	)
	for _, e := range valid {
		r := e.plan.Range()
		if len(kept) > 0 {
			last := kept[len(kept)-1].plan.Range()
			if r.Start.Before(end) || r.Start == last.Start {
				t.dropped = append(t.dropped, Drop{
					Cursor: e.cursor,
					Err:    fmt.Errorf("%w: cursor %d overlaps cursor %d at %s", ErrPlanConflict, e.cursor, kept[len(kept)-1].cursor, r.Start),
				})
				continue
			}
		}
		kept = append(kept, e)
		if r.End.After(end) {
			end = r.End
		}
	}

	for _, e := range kept {
		for _, edit := range e.plan.Edits {
			t.edits = append(t.edits, shift(edit, t.edits))
			t.owners = append(t.owners, e.cursor)
		}
	}
	return t.edits
}

// MapSelections maps sels, indexed by cursor, through the resolved edits.
// A cursor sitting at the start of one of its own plan's edits moves to
// the end of that edit's text; other positions follow Edit.TransformPoint.
func (t *Transaction) MapSelections(sels []cursor.Selection) []cursor.Selection {
	out := make([]cursor.Selection, len(sels))
	for i, sel := range sels {
		for j, edit := range t.edits {
			if t.owners[j] == i && sel.IsEmpty() && sel.Head == edit.Range.Start {
				sel = cursor.NewCursorSelection(edit.NewEnd())
				continue
			}
			sel = cursor.Transform(sel, edit)
		}
		out[i] = sel
	}
	return out
}

// shift re-expresses edit, given in pre-transaction coordinates, in the
// coordinates produced by applying the earlier edits.
func shift(edit buffer.Edit, applied []buffer.Edit) buffer.Edit {
	start, end := edit.Range.Start, edit.Range.End
	for _, prev := range applied {
		start = prev.TransformPoint(start)
		end = prev.TransformPoint(end)
	}
	return buffer.NewEdit(buffer.NewPointRange(start, end), edit.NewText)
}

// validatePlan checks that every edit of p lies inside src and that the
// edits are ordered and disjoint.
func validatePlan(src analyzer.LineSource, p planner.Plan) error {
	lines := src.LineCount()
	inside := func(pt buffer.Point) bool {
		return pt.Line >= 0 && pt.Line < lines && pt.Column >= 0 && pt.Column <= len(src.LineText(pt.Line))
	}

	for i, e := range p.Edits {
		if !e.Range.IsValid() || !inside(e.Range.Start) || !inside(e.Range.End) {
			return fmt.Errorf("%w: edit %s out of range", ErrMalformedPlan, e)
		}
		if e.IsNoOp() {
			return fmt.Errorf("%w: edit %d is a no-op", ErrMalformedPlan, i)
		}
		if i > 0 {
			prev := p.Edits[i-1].Range
			if e.Range.Start.Before(prev.End) || e.Range.Start == prev.Start {
				return fmt.Errorf("%w: edits %d and %d overlap", ErrMalformedPlan, i-1, i)
			}
		}
	}
	return nil
}
