package redactor

import (
	"github.com/iw2rmb/blockedit/document"
	"github.com/iw2rmb/blockedit/geometry"
	"github.com/iw2rmb/blockedit/internal/log"
)

// guard clamps a selection spanning several blocks so that it neither starts
// nor ends in a block that cannot hold a selection. The start moves to the
// beginning of the nearest selectable block after the starting block, the
// end to the end of the nearest selectable block before the ending block.
// Each endpoint is clamped on its own; one without such a neighbour inside
// the selection stays where it is.
func (h *Handler) guard(sel document.Range) (document.Range, bool) {
	blocks, err := geometry.FindIntersectedBlocks(h.doc, sel)
	if err != nil || len(blocks) < 2 {
		return sel, false
	}
	r := h.doc.Normalize(sel)

	changed := false
	if !blocks[0].Selectable {
		if lo := nextSelectable(blocks, 0); lo >= 0 {
			r.Start = h.doc.Start(blocks[lo].Node)
			changed = true
		} else {
			log.Debug(log.CatGuard, "no selectable block after start", "block", blocks[0].ID)
		}
	}
	if last := len(blocks) - 1; !blocks[last].Selectable {
		if hi := prevSelectable(blocks, last); hi >= 0 {
			r.End = h.doc.End(blocks[hi].Node)
			changed = true
		} else {
			log.Debug(log.CatGuard, "no selectable block before end", "block", blocks[last].ID)
		}
	}
	if !changed {
		return sel, false
	}
	log.Debug(log.CatGuard, "clamped selection", "start", r.Start, "end", r.End)
	return r, true
}

func nextSelectable(blocks []document.Block, i int) int {
	for j := i + 1; j < len(blocks); j++ {
		if blocks[j].Selectable {
			return j
		}
	}
	return -1
}

func prevSelectable(blocks []document.Block, i int) int {
	for j := i - 1; j >= 0; j-- {
		if blocks[j].Selectable {
			return j
		}
	}
	return -1
}
