package cursor

import (
	"sort"

	"github.com/dshills/commentator/internal/engine/buffer"
)

// Transform maps a selection through an applied edit.
// Anchor and head are transformed independently.
func Transform(sel Selection, edit buffer.Edit) Selection {
	return Selection{
		Anchor: edit.TransformPoint(sel.Anchor),
		Head:   edit.TransformPoint(sel.Head),
	}
}

// TransformAll maps every selection through edits applied in order.
func TransformAll(sels []Selection, edits []buffer.Edit) []Selection {
	out := make([]Selection, len(sels))
	for i, sel := range sels {
		for _, edit := range edits {
			sel = Transform(sel, edit)
		}
		out[i] = sel
	}
	return out
}

// Normalize sorts selections by start position and merges any that
// overlap or coincide. The direction of the first selection in a merged
// group is kept.
func Normalize(sels []Selection) []Selection {
	if len(sels) <= 1 {
		return append([]Selection(nil), sels...)
	}

	sorted := append([]Selection(nil), sels...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start().Before(sorted[j].Start())
	})

	out := make([]Selection, 0, len(sorted))
	out = append(out, sorted[0])
	for _, sel := range sorted[1:] {
		last := &out[len(out)-1]
		if sel.Start().After(last.End()) {
			out = append(out, sel)
			continue
		}
		if sel.Start() == last.End() && !sel.IsEmpty() && !last.IsEmpty() {
			out = append(out, sel)
			continue
		}
		end := last.End()
		if sel.End().After(end) {
			end = sel.End()
		}
		if last.Anchor.Before(last.Head) || last.IsEmpty() {
			*last = Selection{Anchor: last.Start(), Head: end}
		} else {
			*last = Selection{Anchor: end, Head: last.Start()}
		}
	}
	return out
}
