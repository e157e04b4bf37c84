package document

import (
	"strings"

	"github.com/iw2rmb/blockedit/internal/grapheme"
)

// leaves calls fn for every text node and native input under id in tree
// order, id included. Returning false stops the walk.
func (d *Document) leaves(id NodeID, fn func(leaf NodeID) bool) bool {
	if !d.valid(id) {
		return true
	}
	if d.isLeafText(id) {
		return fn(id)
	}
	for _, c := range d.nodes[id].children {
		if !d.leaves(c, fn) {
			return false
		}
	}
	return true
}

// TextContent returns the concatenated text under id. Native input values
// are included; markers contribute nothing.
func (d *Document) TextContent(id NodeID) string {
	var sb strings.Builder
	d.leaves(id, func(leaf NodeID) bool {
		sb.WriteString(grapheme.Join(d.nodes[leaf].text))
		return true
	})
	return sb.String()
}

// IsEmpty reports whether id holds no visible content: no text at all, or
// only collapsible whitespace.
func (d *Document) IsEmpty(id NodeID) bool {
	return grapheme.IsCollapsedWhitespace(d.TextContent(id))
}

// span is the part [lo, hi) of a leaf covered by a range.
type span struct {
	leaf   NodeID
	lo, hi int
}

// spans returns the covered part of every leaf overlapping r, in order.
func (d *Document) spans(r Range) []span {
	r = d.Normalize(r)
	if r.Collapsed() {
		return nil
	}
	var out []span
	d.leaves(d.root, func(leaf NodeID) bool {
		n := len(d.nodes[leaf].text)
		if !d.Before(d.Start(leaf), r.End) {
			return false
		}
		if !d.Before(r.Start, d.End(leaf)) {
			return true
		}
		lo, hi := 0, n
		if r.Start.Node == leaf {
			lo = r.Start.Offset
		}
		if r.End.Node == leaf {
			hi = r.End.Offset
		}
		lo, hi = clampInt(lo, 0, n), clampInt(hi, 0, n)
		if lo < hi {
			out = append(out, span{leaf: leaf, lo: lo, hi: hi})
		}
		return true
	})
	return out
}

// TextInRange returns the text covered by r, like the DOM's Range.toString.
func (d *Document) TextInRange(r Range) string {
	var sb strings.Builder
	for _, s := range d.spans(r) {
		sb.WriteString(grapheme.Join(d.nodes[s.leaf].text[s.lo:s.hi]))
	}
	return sb.String()
}

// ClustersInRange returns the number of grapheme clusters covered by r.
func (d *Document) ClustersInRange(r Range) int {
	n := 0
	for _, s := range d.spans(r) {
		n += s.hi - s.lo
	}
	return n
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
