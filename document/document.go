package document

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/iw2rmb/blockedit/internal/grapheme"
)

type blockData struct {
	id   BlockID
	tool string
	caps Capabilities
}

type node struct {
	kind     NodeKind
	parent   NodeID
	children []NodeID

	// text holds grapheme clusters of a text node or a native input value.
	text []string

	tag   string
	input InputKind
	block *blockData
}

// Document is the arena-backed block tree. It is not safe for concurrent use.
type Document struct {
	nodes   []node
	root    NodeID
	version uint64

	changes changeLog
}

// New returns an empty document holding only the root node.
func New() *Document {
	d := &Document{}
	d.root = d.alloc(node{kind: KindRoot, parent: NoNode})
	d.changes.limit = defaultChangeLimit
	return d
}

func (d *Document) alloc(n node) NodeID {
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

// Root returns the root node id.
func (d *Document) Root() NodeID { return d.root }

// Version increments on every effective mutation.
func (d *Document) Version() uint64 { return d.version }

func (d *Document) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(d.nodes)
}

// Attached reports whether id is reachable from the root.
func (d *Document) Attached(id NodeID) bool {
	if !d.valid(id) {
		return false
	}
	for id != d.root {
		p := d.nodes[id].parent
		if p == NoNode {
			return false
		}
		id = p
	}
	return true
}

// Kind returns the node kind. Unknown ids report KindRoot with ok=false.
func (d *Document) Kind(id NodeID) (NodeKind, bool) {
	if !d.valid(id) {
		return KindRoot, false
	}
	return d.nodes[id].kind, true
}

func (d *Document) kindOf(id NodeID) NodeKind {
	if !d.valid(id) {
		return KindRoot
	}
	return d.nodes[id].kind
}

// IsInput reports whether id is an input node.
func (d *Document) IsInput(id NodeID) bool { return d.kindOf(id) == KindInput }

// IsNative reports whether id is a native input.
func (d *Document) IsNative(id NodeID) bool {
	return d.kindOf(id) == KindInput && d.nodes[id].input == InputNative
}

// isLeafText reports whether id stores clusters: a text node or native input.
func (d *Document) isLeafText(id NodeID) bool {
	if !d.valid(id) {
		return false
	}
	n := &d.nodes[id]
	return n.kind == KindText || (n.kind == KindInput && n.input == InputNative)
}

// InputKind returns the input kind of id.
func (d *Document) InputKind(id NodeID) (InputKind, bool) {
	if d.kindOf(id) != KindInput {
		return InputRichText, false
	}
	return d.nodes[id].input, true
}

// Tag returns the element tag or input name recorded at creation.
func (d *Document) Tag(id NodeID) string {
	if !d.valid(id) {
		return ""
	}
	return d.nodes[id].tag
}

// Parent returns the parent of id, or NoNode.
func (d *Document) Parent(id NodeID) NodeID {
	if !d.valid(id) {
		return NoNode
	}
	return d.nodes[id].parent
}

// Children returns a copy of id's children.
func (d *Document) Children(id NodeID) []NodeID {
	if !d.valid(id) {
		return nil
	}
	return append([]NodeID(nil), d.nodes[id].children...)
}

// ChildAt returns the child of id at index i, or NoNode.
func (d *Document) ChildAt(id NodeID, i int) NodeID {
	if !d.valid(id) || i < 0 || i >= len(d.nodes[id].children) {
		return NoNode
	}
	return d.nodes[id].children[i]
}

// Length is the boundary-point length of id: grapheme count for text nodes
// and native inputs, child count otherwise.
func (d *Document) Length(id NodeID) int {
	if !d.valid(id) {
		return 0
	}
	if d.isLeafText(id) {
		return len(d.nodes[id].text)
	}
	return len(d.nodes[id].children)
}

// IndexInParent returns id's index among its parent's children, or -1.
func (d *Document) IndexInParent(id NodeID) int {
	p := d.Parent(id)
	if p == NoNode {
		return -1
	}
	for i, c := range d.nodes[p].children {
		if c == id {
			return i
		}
	}
	return -1
}

// Contains reports whether ancestor is id or one of id's ancestors.
func (d *Document) Contains(ancestor, id NodeID) bool {
	if !d.valid(ancestor) || !d.valid(id) {
		return false
	}
	for id != NoNode {
		if id == ancestor {
			return true
		}
		id = d.nodes[id].parent
	}
	return false
}

// Start returns the anchor at the very beginning of id.
func (d *Document) Start(id NodeID) Anchor { return Anchor{Node: id, Offset: 0} }

// End returns the anchor at the very end of id.
func (d *Document) End(id NodeID) Anchor { return Anchor{Node: id, Offset: d.Length(id)} }

// ValidAnchor reports whether a references an attached node with an offset
// within bounds.
func (d *Document) ValidAnchor(a Anchor) bool {
	if !d.Attached(a.Node) {
		return false
	}
	return a.Offset >= 0 && a.Offset <= d.Length(a.Node)
}

// ClosestBlock walks upward from id to the nearest block, id included.
func (d *Document) ClosestBlock(id NodeID) (Block, bool) {
	for d.valid(id) {
		if d.nodes[id].kind == KindBlock {
			return d.blockView(id), true
		}
		id = d.nodes[id].parent
	}
	return Block{}, false
}

// ClosestInput walks upward from id to the nearest input, id included.
func (d *Document) ClosestInput(id NodeID) (NodeID, bool) {
	for d.valid(id) {
		switch d.nodes[id].kind {
		case KindInput:
			return id, true
		case KindBlock, KindRoot:
			return NoNode, false
		}
		id = d.nodes[id].parent
	}
	return NoNode, false
}

func (d *Document) blockView(id NodeID) Block {
	bd := d.nodes[id].block
	return Block{ID: bd.id, Node: id, Tool: bd.tool, Capabilities: bd.caps}
}

// Blocks returns the attached blocks in document order.
func (d *Document) Blocks() []Block {
	children := d.nodes[d.root].children
	out := make([]Block, 0, len(children))
	for _, c := range children {
		if d.nodes[c].kind == KindBlock {
			out = append(out, d.blockView(c))
		}
	}
	return out
}

// BlockCount returns the number of attached blocks.
func (d *Document) BlockCount() int { return len(d.nodes[d.root].children) }

// BlockAt returns the block at document index i.
func (d *Document) BlockAt(i int) (Block, bool) {
	id := d.ChildAt(d.root, i)
	if id == NoNode {
		return Block{}, false
	}
	return d.blockView(id), true
}

// BlockByID resolves an attached block by id.
func (d *Document) BlockByID(id BlockID) (Block, bool) {
	for _, c := range d.nodes[d.root].children {
		if bd := d.nodes[c].block; bd != nil && bd.id == id {
			return d.blockView(c), true
		}
	}
	return Block{}, false
}

// BlockIndex returns the document index of block id, or -1.
func (d *Document) BlockIndex(id BlockID) int {
	for i, c := range d.nodes[d.root].children {
		if bd := d.nodes[c].block; bd != nil && bd.id == id {
			return i
		}
	}
	return -1
}

// Inputs returns the inputs owned by the block node in pre-order. The walk
// does not descend into inputs.
func (d *Document) Inputs(blockNode NodeID) []NodeID {
	if d.kindOf(blockNode) != KindBlock {
		return nil
	}
	var out []NodeID
	var walk func(id NodeID)
	walk = func(id NodeID) {
		for _, c := range d.nodes[id].children {
			switch d.nodes[c].kind {
			case KindInput:
				out = append(out, c)
			case KindElement:
				walk(c)
			}
		}
	}
	walk(blockNode)
	return out
}

// AllInputs returns every attached input in document order.
func (d *Document) AllInputs() []NodeID {
	var out []NodeID
	for _, b := range d.nodes[d.root].children {
		out = append(out, d.Inputs(b)...)
	}
	return out
}

// NewBlock allocates a detached block node. An empty id is replaced by a
// random UUID.
func (d *Document) NewBlock(id BlockID, tool string, caps Capabilities) NodeID {
	if id == "" {
		id = BlockID(uuid.NewString())
	}
	return d.alloc(node{
		kind:   KindBlock,
		parent: NoNode,
		tag:    tool,
		block:  &blockData{id: id, tool: tool, caps: caps},
	})
}

// NewElement allocates a detached wrapper or inline element.
func (d *Document) NewElement(tag string) NodeID {
	return d.alloc(node{kind: KindElement, parent: NoNode, tag: tag})
}

// NewInput allocates a detached input. For native inputs value is the flat
// value; rich-text inputs receive value as a single text node when non-empty.
func (d *Document) NewInput(kind InputKind, name, value string) NodeID {
	if kind == InputNative {
		return d.alloc(node{kind: KindInput, parent: NoNode, tag: name, input: InputNative, text: grapheme.Split(value)})
	}
	id := d.alloc(node{kind: KindInput, parent: NoNode, tag: name, input: InputRichText})
	if value != "" {
		d.appendChild(id, d.NewText(value))
	}
	return id
}

// NewText allocates a detached text node.
func (d *Document) NewText(text string) NodeID {
	return d.alloc(node{kind: KindText, parent: NoNode, text: grapheme.Split(text)})
}

// Append attaches the detached child as the last child of parent.
func (d *Document) Append(parent, child NodeID) error {
	if err := d.checkAttachable(parent, child); err != nil {
		return err
	}
	d.appendChild(parent, child)
	return nil
}

func (d *Document) checkAttachable(parent, child NodeID) error {
	if !d.valid(parent) || !d.valid(child) {
		return ErrNodeNotFound
	}
	if d.nodes[child].parent != NoNode || child == d.root {
		return fmt.Errorf("%w: node %d is already attached", ErrInvalidAnchor, child)
	}
	pk, ck := d.nodes[parent].kind, d.nodes[child].kind
	switch {
	case d.isLeafText(parent), pk == KindMarker:
		return fmt.Errorf("%w: %s cannot hold children", ErrWrongKind, pk)
	case pk == KindRoot && ck != KindBlock:
		return fmt.Errorf("%w: root holds only blocks, got %s", ErrWrongKind, ck)
	case pk != KindRoot && ck == KindBlock:
		return fmt.Errorf("%w: blocks attach only to the root", ErrWrongKind)
	case ck == KindInput && d.insideInput(parent):
		return fmt.Errorf("%w: inputs cannot nest", ErrWrongKind)
	}
	return nil
}

func (d *Document) insideInput(id NodeID) bool {
	_, ok := d.ClosestInput(id)
	return ok
}

func (d *Document) appendChild(parent, child NodeID) {
	d.nodes[child].parent = parent
	d.nodes[parent].children = append(d.nodes[parent].children, child)
}

func (d *Document) insertChild(parent NodeID, index int, child NodeID) {
	ch := d.nodes[parent].children
	if index < 0 {
		index = 0
	}
	if index > len(ch) {
		index = len(ch)
	}
	ch = append(ch, NoNode)
	copy(ch[index+1:], ch[index:])
	ch[index] = child
	d.nodes[parent].children = ch
	d.nodes[child].parent = parent
}

func (d *Document) detach(id NodeID) {
	p := d.nodes[id].parent
	if p == NoNode {
		return
	}
	ch := d.nodes[p].children
	for i, c := range ch {
		if c == id {
			d.nodes[p].children = append(ch[:i:i], ch[i+1:]...)
			break
		}
	}
	d.nodes[id].parent = NoNode
}
