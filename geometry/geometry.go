package geometry

import (
	"errors"
	"fmt"

	"github.com/iw2rmb/blockedit/document"
	"github.com/iw2rmb/blockedit/internal/log"
)

// ErrNoEnclosingBlock reports a range endpoint that sits outside every block.
var ErrNoEnclosingBlock = errors.New("no enclosing block")

// InputHit is one input intersected by a range, with the block owning it.
type InputHit struct {
	Input document.NodeID
	Block document.Block
}

// Intersection is the result of mapping a range onto the document.
type Intersection struct {
	Range  document.Range
	Blocks []document.Block
	Inputs []InputHit
}

// Empty reports whether the range touches no input.
func (x Intersection) Empty() bool { return len(x.Inputs) == 0 }

// CrossBlock reports whether more than one block is intersected.
func (x Intersection) CrossBlock() bool { return len(x.Blocks) > 1 }

// FirstBlock returns the starting block.
func (x Intersection) FirstBlock() (document.Block, bool) {
	if len(x.Blocks) == 0 {
		return document.Block{}, false
	}
	return x.Blocks[0], true
}

// LastBlock returns the ending block.
func (x Intersection) LastBlock() (document.Block, bool) {
	if len(x.Blocks) == 0 {
		return document.Block{}, false
	}
	return x.Blocks[len(x.Blocks)-1], true
}

// Compute finds the intersected blocks of r and then the inputs within them.
func Compute(doc *document.Document, r document.Range) (Intersection, error) {
	r = doc.Normalize(r)
	blocks, err := FindIntersectedBlocks(doc, r)
	if err != nil {
		return Intersection{Range: r}, err
	}
	return Intersection{
		Range:  r,
		Blocks: blocks,
		Inputs: FindIntersectedInputs(doc, blocks, r),
	}, nil
}

// FindIntersectedBlocks returns the contiguous run of blocks from the block
// enclosing r's start to the block enclosing r's end, in document order.
// When either endpoint has no enclosing block the result is empty and the
// error wraps ErrNoEnclosingBlock.
func FindIntersectedBlocks(doc *document.Document, r document.Range) ([]document.Block, error) {
	if !doc.ValidAnchor(r.Start) || !doc.ValidAnchor(r.End) {
		return nil, fmt.Errorf("%w: unresolvable anchor %v..%v", ErrNoEnclosingBlock, r.Start, r.End)
	}
	r = doc.Normalize(r)

	start, ok := doc.ClosestBlock(r.Start.Node)
	if !ok {
		return nil, fmt.Errorf("%w: start %v", ErrNoEnclosingBlock, r.Start)
	}
	end, ok := doc.ClosestBlock(r.End.Node)
	if !ok {
		return nil, fmt.Errorf("%w: end %v", ErrNoEnclosingBlock, r.End)
	}
	if start.Node == end.Node {
		return []document.Block{start}, nil
	}

	from, to := doc.BlockIndex(start.ID), doc.BlockIndex(end.ID)
	blocks := make([]document.Block, 0, to-from+1)
	for i := from; i <= to; i++ {
		b, _ := doc.BlockAt(i)
		blocks = append(blocks, b)
	}
	log.Debug(log.CatGeometry, "intersected blocks", "from", start.ID, "to", end.ID, "count", len(blocks))
	return blocks, nil
}

// FindIntersectedInputs returns, in document order, every input of blocks
// that r intersects, partial overlap included. Blocks without inputs
// contribute nothing.
func FindIntersectedInputs(doc *document.Document, blocks []document.Block, r document.Range) []InputHit {
	var hits []InputHit
	for _, b := range blocks {
		for _, in := range doc.Inputs(b.Node) {
			if doc.IntersectsNode(r, in) {
				hits = append(hits, InputHit{Input: in, Block: b})
			}
		}
	}
	return hits
}

// WholeInputSelected reports whether the text covered by r equals the full
// text content of input. A collapsed range in an empty input qualifies.
func WholeInputSelected(doc *document.Document, r document.Range, input document.NodeID) bool {
	return doc.TextInRange(r) == doc.TextContent(input)
}
