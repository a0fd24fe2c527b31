package planner

import (
	"github.com/dshills/commentator/internal/analyzer"
	"github.com/dshills/commentator/internal/engine/buffer"
)

// Continue plans the Enter key.
//
//	none         abstain
//	line         newline + indentation + marker + " ", unless the comment is empty
//	block body   newline + base indentation + continuation
//	block open   same as block body
//	block close  newline + indentation, leaving the closer on the new line
type Continue struct{}

// Intent returns IntentContinue.
func (Continue) Intent() Intent { return IntentContinue }

// Plan plans each request independently.
func (c Continue) Plan(reqs []Request) []Plan {
	return planEach(reqs, c.plan)
}

func (Continue) plan(req Request) Plan {
	ctx := req.Context
	if !req.Selection.IsEmpty() {
		return Abstain("selection")
	}

	var text string
	switch ctx.Inside {
	case analyzer.KindNone:
		return Abstain("not in comment")
	case analyzer.KindLine:
		if ctx.Body() == "" {
			return Abstain("empty line comment")
		}
		text = "\n" + ctx.Base + ctx.Grammar.LineMarker + " "
	case analyzer.KindBlockBody, analyzer.KindBlockBoundaryOpen:
		text = "\n" + ctx.Base + ctx.Prefix
	case analyzer.KindBlockBoundaryClose:
		return Insert(ctx.Position, "\n"+ctx.Indentation)
	default:
		return Abstain("unsupported context")
	}

	// Whitespace right of the cursor would double the separator the
	// continuation already ends with.
	end := ctx.Position
	end.Column += len(analyzer.LeadingWhitespace(ctx.After()))
	return Replace(buffer.NewEdit(buffer.NewPointRange(ctx.Position, end), text))
}
