package editor

import (
	"strconv"

	"github.com/iw2rmb/blockedit/caret"
	"github.com/iw2rmb/blockedit/document"
)

// layoutRow is one visual row: an input, or a placeholder for a block
// without inputs.
type layoutRow struct {
	block      document.Block
	blockIndex int
	input      document.NodeID
	first      bool
}

func (r layoutRow) placeholder() bool { return r.input == document.NoNode }

func (m *Model) layoutRows() []layoutRow {
	blocks := m.doc.Blocks()
	rows := make([]layoutRow, 0, len(blocks))
	for i, b := range blocks {
		inputs := m.doc.Inputs(b.Node)
		if len(inputs) == 0 {
			rows = append(rows, layoutRow{block: b, blockIndex: i, input: document.NoNode, first: true})
			continue
		}
		for j, in := range inputs {
			rows = append(rows, layoutRow{block: b, blockIndex: i, input: in, first: j == 0})
		}
	}
	return rows
}

// caretPos locates the caret: the input and grapheme column holding it, or
// the block whose placeholder row holds it.
type caretPos struct {
	ok    bool
	block document.NodeID
	input document.NodeID
	col   int
}

func (m *Model) caretPos() caretPos {
	focus, ok := m.caret.Focus()
	if !ok {
		return caretPos{}
	}
	b, ok := m.doc.ClosestBlock(focus.Node)
	if !ok {
		return caretPos{}
	}
	out := caretPos{ok: true, block: b.Node, input: document.NoNode}
	resolved, ok := caret.ResolveCaret(m.doc, focus)
	if !ok {
		return out
	}
	in, ok := m.doc.ClosestInput(resolved.Node)
	if !ok {
		return out
	}
	out.input = in
	out.col = m.offsetIn(in, resolved)
	return out
}

func (m *Model) caretRow(rows []layoutRow) int {
	cp := m.caretPos()
	if !cp.ok {
		return -1
	}
	for i, r := range rows {
		if cp.input != document.NoNode && r.input == cp.input {
			return i
		}
		if cp.input == document.NoNode && r.block.Node == cp.block {
			return i
		}
	}
	return -1
}

// offsetIn maps a to a grapheme offset within input, clamping anchors that
// lie outside it to its edges.
func (m *Model) offsetIn(input document.NodeID, a document.Anchor) int {
	if m.doc.Compare(a, m.doc.Start(input)) <= 0 {
		return 0
	}
	if m.doc.Compare(a, m.doc.End(input)) >= 0 {
		return m.doc.InputLength(input)
	}
	k, _ := m.doc.OffsetOf(input, a)
	return k
}

// selectionSpan returns the grapheme columns [lo, hi) of input covered by a
// non-collapsed selection.
func (m *Model) selectionSpan(input document.NodeID) (lo, hi int, ok bool) {
	sel, ok := m.caret.Selection()
	if !ok || sel.Collapsed() {
		return 0, 0, false
	}
	r := m.doc.Normalize(sel)
	if !m.doc.IntersectsNode(r, input) {
		return 0, 0, false
	}
	lo, hi = m.offsetIn(input, r.Start), m.offsetIn(input, r.End)
	return lo, hi, lo < hi
}

// blockSelected reports whether a non-collapsed selection covers the block
// node of a placeholder row.
func (m *Model) blockSelected(b document.Block) bool {
	sel, ok := m.caret.Selection()
	if !ok || sel.Collapsed() {
		return false
	}
	return m.doc.IntersectsNode(m.doc.Normalize(sel), b.Node)
}

func (m *Model) gutterWidth() int {
	if !m.cfg.ShowBlockNums {
		return 0
	}
	return gutterDigits(m.doc.BlockCount()) + 1
}

func gutterDigits(blocks int) int {
	if blocks < 1 {
		blocks = 1
	}
	return len(strconv.Itoa(blocks))
}

// screenToAnchor maps viewport-local cell coordinates to a caret anchor.
// Coordinates are clamped into the document; gutter clicks map to the start
// of the row.
func (m *Model) screenToAnchor(x, y int) (document.Anchor, bool) {
	rows := m.layoutRows()
	if len(rows) == 0 {
		return document.NoAnchor, false
	}
	r := rows[clampInt(m.viewport.YOffset+y, 0, len(rows)-1)]
	if r.placeholder() {
		return m.doc.Start(r.block.Node), true
	}

	x -= m.gutterWidth()
	if x <= 0 {
		return m.doc.StartOf(r.input), true
	}
	cells := layoutClusters(m.doc.TextContent(r.input), 0)
	acc := 0
	for i, c := range cells {
		// Clicks on the right half of a wide cell land after it.
		if x < acc+(c.Width+1)/2 {
			return m.doc.AnchorAt(r.input, i), true
		}
		acc += c.Width
	}
	return m.doc.EndOf(r.input), true
}
