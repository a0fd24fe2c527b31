package planner

import (
	"sort"

	"github.com/dshills/commentator/internal/analyzer"
	"github.com/dshills/commentator/internal/engine/buffer"
	"github.com/dshills/commentator/internal/engine/cursor"
)

// Request is one cursor's input to a planner.
type Request struct {
	// Context is the analysed cursor position.
	Context analyzer.Context
	// Selection is the cursor's selection; empty for a plain cursor.
	Selection cursor.Selection
	// Source reads buffer lines, for planners that look beyond the cursor line.
	Source analyzer.LineSource
}

// Planner produces one Plan per request, in request order.
type Planner interface {
	Intent() Intent
	Plan(reqs []Request) []Plan
}

// Plan is a planner's decision for one cursor.
//
// A consuming plan holds one or more non-overlapping edits in pre-event
// buffer coordinates. An abstained plan holds none and never mutates the
// buffer.
type Plan struct {
	Edits    []buffer.Edit
	Consumes bool
	// Reason explains an abstention, for logging.
	Reason string
}

// Abstain returns a plan that declines the event.
func Abstain(reason string) Plan {
	return Plan{Reason: reason}
}

// Replace returns a plan that consumes the event with the given edits.
// Edits are sorted by start position.
func Replace(edits ...buffer.Edit) Plan {
	sorted := append([]buffer.Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start.Before(sorted[j].Range.Start)
	})
	return Plan{Edits: sorted, Consumes: true}
}

// Insert returns a plan that inserts text at a position.
func Insert(at buffer.Point, text string) Plan {
	return Replace(buffer.NewInsert(at, text))
}

// Abstained reports whether the plan declines the event.
func (p Plan) Abstained() bool {
	return !p.Consumes || len(p.Edits) == 0
}

// Range returns the span covering all of the plan's edits.
func (p Plan) Range() buffer.PointRange {
	if len(p.Edits) == 0 {
		return buffer.PointRange{}
	}
	r := p.Edits[0].Range
	for _, e := range p.Edits[1:] {
		r = r.Union(e.Range)
	}
	return r
}

// planEach applies fn to every request independently.
func planEach(reqs []Request, fn func(Request) Plan) []Plan {
	plans := make([]Plan, len(reqs))
	for i, req := range reqs {
		plans[i] = fn(req)
	}
	return plans
}
