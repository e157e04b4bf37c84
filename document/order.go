package document

// Compare orders two boundary points: -1 if a is before b, 0 if equal, 1 if
// a is after b. Both anchors should reference nodes of the same tree.
func (d *Document) Compare(a, b Anchor) int {
	if a.Node == b.Node {
		return cmpInt(a.Offset, b.Offset)
	}
	if d.Contains(a.Node, b.Node) {
		child := b.Node
		for d.nodes[child].parent != a.Node {
			child = d.nodes[child].parent
		}
		if d.IndexInParent(child) < a.Offset {
			return 1
		}
		return -1
	}
	if d.Contains(b.Node, a.Node) {
		return -d.Compare(b, a)
	}
	return d.compareTreeOrder(a.Node, b.Node)
}

// Before reports whether a is strictly before b.
func (d *Document) Before(a, b Anchor) bool { return d.Compare(a, b) < 0 }

// Normalize orders the anchors of r so that Start <= End.
func (d *Document) Normalize(r Range) Range {
	if d.Compare(r.Start, r.End) <= 0 {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

// IntersectsNode reports whether r overlaps id, including partial overlap.
// The root and detached subtree tops intersect every range.
func (d *Document) IntersectsNode(r Range, id NodeID) bool {
	p := d.Parent(id)
	if p == NoNode {
		return true
	}
	idx := d.IndexInParent(id)
	return d.Before(Anchor{Node: p, Offset: idx}, r.End) &&
		d.Before(r.Start, Anchor{Node: p, Offset: idx + 1})
}

// ContainsNode reports whether id lies wholly inside r.
func (d *Document) ContainsNode(r Range, id NodeID) bool {
	return d.Before(r.Start, d.Start(id)) && d.Before(d.End(id), r.End)
}

// compareTreeOrder compares two nodes neither of which contains the other.
func (d *Document) compareTreeOrder(a, b NodeID) int {
	pa, pb := d.path(a), d.path(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			return cmpInt(pa[i], pb[i])
		}
	}
	return cmpInt(len(pa), len(pb))
}

// path returns child indices from the topmost ancestor down to id.
func (d *Document) path(id NodeID) []int {
	var rev []int
	for d.valid(id) && d.nodes[id].parent != NoNode {
		rev = append(rev, d.IndexInParent(id))
		id = d.nodes[id].parent
	}
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
