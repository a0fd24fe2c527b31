package planner

import (
	"strings"

	"github.com/dshills/commentator/internal/analyzer"
)

// Align plans the Tab key inside comments. It pads with spaces up to the
// context's target column, or inserts a single space when the cursor is
// already there. It never removes text.
type Align struct{}

// Intent returns IntentAlign.
func (Align) Intent() Intent { return IntentAlign }

// Plan plans each request independently.
func (a Align) Plan(reqs []Request) []Plan {
	return planEach(reqs, a.plan)
}

func (Align) plan(req Request) Plan {
	ctx := req.Context
	if ctx.Inside == analyzer.KindNone {
		return Abstain("not in comment")
	}
	if !req.Selection.IsEmpty() {
		return Abstain("selection")
	}

	pad := ctx.TargetColumn() - ctx.Position.Column
	if pad < 1 {
		pad = 1
	}
	return Insert(ctx.Position, strings.Repeat(" ", pad))
}
