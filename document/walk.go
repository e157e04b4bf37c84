package document

// Step identifies a caret movement direction.
type Step int

const (
	StepBackward Step = iota
	StepForward
)

// OffsetOf returns the grapheme offset of a within input, counted over the
// input's text. It reports false when a is outside input.
func (d *Document) OffsetOf(input NodeID, a Anchor) (int, bool) {
	if !d.IsInput(input) || !d.ValidAnchor(a) || !d.Contains(input, a.Node) {
		return 0, false
	}
	if a.Node == input && d.IsNative(input) {
		return a.Offset, true
	}
	return d.ClustersInRange(Range{Start: d.Start(input), End: a}), true
}

// AnchorAt maps grapheme offset k within input to a leaf anchor. At a
// boundary between two text nodes the earlier node wins. Inputs without text
// nodes map to (input, 0).
func (d *Document) AnchorAt(input NodeID, k int) Anchor {
	if !d.IsInput(input) {
		return NoAnchor
	}
	if d.IsNative(input) {
		return Anchor{Node: input, Offset: clampInt(k, 0, d.Length(input))}
	}
	if k < 0 {
		k = 0
	}
	last := NoNode
	var out Anchor
	found := false
	d.leaves(input, func(leaf NodeID) bool {
		n := len(d.nodes[leaf].text)
		last = leaf
		if k <= n {
			out = Anchor{Node: leaf, Offset: k}
			found = true
			return false
		}
		k -= n
		return true
	})
	if found {
		return out
	}
	if last != NoNode {
		return d.End(last)
	}
	return Anchor{Node: input, Offset: 0}
}

// InputLength returns the number of grapheme clusters in input.
func (d *Document) InputLength(input NodeID) int {
	if d.IsNative(input) {
		return d.Length(input)
	}
	return d.ClustersInRange(Range{Start: d.Start(input), End: d.End(input)})
}

// StartOf returns the caret anchor at the beginning of input.
func (d *Document) StartOf(input NodeID) Anchor { return d.AnchorAt(input, 0) }

// EndOf returns the caret anchor at the end of input.
func (d *Document) EndOf(input NodeID) Anchor { return d.AnchorAt(input, d.InputLength(input)) }

// Move steps the caret at a by one grapheme in dir. Stepping past an input
// boundary lands on the adjacent input in document order; at the document
// edges the anchor is returned unchanged.
func (d *Document) Move(a Anchor, dir Step) Anchor {
	input, ok := d.ClosestInput(a.Node)
	if !ok {
		return a
	}
	k, ok := d.OffsetOf(input, a)
	if !ok {
		return a
	}

	switch dir {
	case StepBackward:
		if k > 0 {
			return d.AnchorAt(input, k-1)
		}
		if prev := d.adjacentInput(input, -1); prev != NoNode {
			return d.EndOf(prev)
		}
	case StepForward:
		if k < d.InputLength(input) {
			return d.AnchorAt(input, k+1)
		}
		if next := d.adjacentInput(input, 1); next != NoNode {
			return d.StartOf(next)
		}
	}
	return a
}

// MoveToEdge moves the caret to the start or end of its input.
func (d *Document) MoveToEdge(a Anchor, dir Step) Anchor {
	input, ok := d.ClosestInput(a.Node)
	if !ok {
		return a
	}
	if dir == StepBackward {
		return d.StartOf(input)
	}
	return d.EndOf(input)
}

// MoveInput moves the caret to the adjacent input, keeping the grapheme
// offset where the target is long enough.
func (d *Document) MoveInput(a Anchor, dir Step) Anchor {
	input, ok := d.ClosestInput(a.Node)
	if !ok {
		return a
	}
	k, _ := d.OffsetOf(input, a)
	delta := 1
	if dir == StepBackward {
		delta = -1
	}
	target := d.adjacentInput(input, delta)
	if target == NoNode {
		return d.MoveToEdge(a, dir)
	}
	return d.AnchorAt(target, minInt(k, d.InputLength(target)))
}

func (d *Document) adjacentInput(input NodeID, delta int) NodeID {
	all := d.AllInputs()
	for i, id := range all {
		if id == input {
			j := i + delta
			if j >= 0 && j < len(all) {
				return all[j]
			}
			return NoNode
		}
	}
	return NoNode
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
