package document

import (
	"fmt"

	"github.com/iw2rmb/blockedit/internal/grapheme"
)

// ExtractContents removes the content covered by r and returns its text,
// like the DOM's Range.extractContents. Boundary text nodes and native
// values are trimmed, fully contained nodes are detached and partially
// contained containers are kept.
func (d *Document) ExtractContents(r Range) (string, error) {
	if !d.ValidAnchor(r.Start) || !d.ValidAnchor(r.End) {
		return "", fmt.Errorf("%w: extract %v..%v", ErrInvalidAnchor, r.Start, r.End)
	}
	r = d.Normalize(r)
	if r.Collapsed() {
		return "", nil
	}

	text := d.TextInRange(r)
	owner, _ := d.ClosestBlock(r.Start.Node)

	// Plan both passes before mutating: detaching shifts child indices that
	// later comparisons depend on.
	var trims []span
	var contained []NodeID
	for _, s := range d.spans(r) {
		if !d.ContainsNode(r, s.leaf) {
			trims = append(trims, s)
		}
	}
	var collect func(id NodeID)
	collect = func(id NodeID) {
		for _, c := range d.nodes[id].children {
			if !d.IntersectsNode(r, c) {
				continue
			}
			if d.ContainsNode(r, c) {
				contained = append(contained, c)
				continue
			}
			collect(c)
		}
	}
	collect(d.root)

	if len(trims) == 0 && len(contained) == 0 {
		return "", nil
	}

	for _, s := range trims {
		n := &d.nodes[s.leaf]
		n.text = append(n.text[:s.lo:s.lo], n.text[s.hi:]...)
	}
	for _, id := range contained {
		d.detach(id)
	}

	d.commit(Change{Kind: ChangeExtract, Block: owner.ID, Node: r.Start.Node, Text: text})
	return text, nil
}

// RemoveNode detaches id and its subtree.
func (d *Document) RemoveNode(id NodeID) error {
	if !d.Attached(id) || id == d.root {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	if d.nodes[id].kind == KindBlock {
		return fmt.Errorf("%w: use RemoveBlock for blocks", ErrWrongKind)
	}
	owner, _ := d.ClosestBlock(id)
	text := d.TextContent(id)
	d.detach(id)
	d.commit(Change{Kind: ChangeRemoveNode, Block: owner.ID, Node: id, Text: text})
	return nil
}

// InsertText inserts text at a and returns the anchor just past it.
// Anchors on containers reuse an adjacent text node or create one.
func (d *Document) InsertText(a Anchor, text string) (Anchor, error) {
	if !d.ValidAnchor(a) {
		return a, fmt.Errorf("%w: insert at %v", ErrInvalidAnchor, a)
	}
	if text == "" {
		return a, nil
	}
	if _, ok := d.ClosestInput(a.Node); !ok {
		return a, fmt.Errorf("%w: insertion point is outside any input", ErrWrongKind)
	}
	if b, ok := d.ClosestBlock(a.Node); ok && b.ReadOnly {
		return a, fmt.Errorf("%w: %s", ErrReadOnly, b.ID)
	}

	leaf, off := a.Node, a.Offset
	if !d.isLeafText(leaf) {
		leaf, off = d.textNodeAt(a)
	}

	ins := grapheme.Split(text)
	n := &d.nodes[leaf]
	next := make([]string, 0, len(n.text)+len(ins))
	next = append(next, n.text[:off]...)
	next = append(next, ins...)
	next = append(next, n.text[off:]...)
	n.text = next

	d.commit(Change{Kind: ChangeInsertText, Node: leaf, Text: text})
	return Anchor{Node: leaf, Offset: off + len(ins)}, nil
}

// textNodeAt finds or creates a text node for inserting at container anchor a.
func (d *Document) textNodeAt(a Anchor) (NodeID, int) {
	if prev := d.ChildAt(a.Node, a.Offset-1); prev != NoNode && d.nodes[prev].kind == KindText {
		return prev, len(d.nodes[prev].text)
	}
	if next := d.ChildAt(a.Node, a.Offset); next != NoNode && d.nodes[next].kind == KindText {
		return next, 0
	}
	t := d.NewText("")
	d.insertChild(a.Node, a.Offset, t)
	return t, 0
}

// InsertMarker appends a zero-width marker as the last child of a rich-text
// input.
func (d *Document) InsertMarker(input NodeID) (NodeID, error) {
	if !d.Attached(input) {
		return NoNode, fmt.Errorf("%w: %d", ErrNodeNotFound, input)
	}
	if kind, ok := d.InputKind(input); !ok || kind != InputRichText {
		return NoNode, fmt.Errorf("%w: markers need a rich-text input", ErrWrongKind)
	}
	m := d.alloc(node{kind: KindMarker, parent: NoNode})
	d.appendChild(input, m)
	d.commit(Change{Kind: ChangeMarker, Node: m})
	return m, nil
}

// MarkerAnchor returns the container anchor immediately before marker m.
func (d *Document) MarkerAnchor(m NodeID) (Anchor, bool) {
	if d.kindOf(m) != KindMarker || !d.Attached(m) {
		return NoAnchor, false
	}
	return Anchor{Node: d.nodes[m].parent, Offset: d.IndexInParent(m)}, true
}

// MoveChildren moves every child of src, in order, to the end of dst.
func (d *Document) MoveChildren(dst, src NodeID) error {
	if !d.Attached(dst) || !d.valid(src) {
		return ErrNodeNotFound
	}
	if d.isLeafText(dst) || d.isLeafText(src) {
		if d.IsNative(dst) && d.IsNative(src) {
			d.nodes[dst].text = append(d.nodes[dst].text, d.nodes[src].text...)
			d.nodes[src].text = nil
			d.commit(Change{Kind: ChangeMoveChildren, Node: dst})
			return nil
		}
		return fmt.Errorf("%w: cannot move children between %s and %s", ErrWrongKind, d.nodes[src].kind, d.nodes[dst].kind)
	}
	moved := d.nodes[src].children
	if len(moved) == 0 {
		return nil
	}
	d.nodes[src].children = nil
	for _, c := range moved {
		d.appendChild(dst, c)
	}
	d.commit(Change{Kind: ChangeMoveChildren, Node: dst})
	return nil
}

// InsertBlock attaches the detached block node at document index i.
func (d *Document) InsertBlock(i int, blockNode NodeID) (Block, error) {
	if err := d.checkAttachable(d.root, blockNode); err != nil {
		return Block{}, err
	}
	bd := d.nodes[blockNode].block
	if _, dup := d.BlockByID(bd.id); dup {
		return Block{}, fmt.Errorf("%w: %s", ErrDuplicateBlock, bd.id)
	}
	d.insertChild(d.root, i, blockNode)
	d.commit(Change{Kind: ChangeInsertBlock, Block: bd.id, Node: blockNode})
	return d.blockView(blockNode), nil
}

// AppendBlock attaches the detached block node after the last block.
func (d *Document) AppendBlock(blockNode NodeID) (Block, error) {
	return d.InsertBlock(d.BlockCount(), blockNode)
}

// RemoveBlock detaches block id.
func (d *Document) RemoveBlock(id BlockID) error {
	b, ok := d.BlockByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	text := d.TextContent(b.Node)
	d.detach(b.Node)
	d.commit(Change{Kind: ChangeRemoveBlock, Block: id, Node: b.Node, Text: text})
	return nil
}

// SetCapabilities replaces the capability flags of block id.
func (d *Document) SetCapabilities(id BlockID, caps Capabilities) error {
	b, ok := d.BlockByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	if b.Capabilities == caps {
		return nil
	}
	d.nodes[b.Node].block.caps = caps
	d.commit(Change{Kind: ChangeCapabilities, Block: id, Node: b.Node})
	return nil
}
