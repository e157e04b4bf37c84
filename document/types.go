package document

// NodeID is a stable arena index. Detached nodes keep their id.
type NodeID int

// NoNode is the null node reference.
const NoNode NodeID = -1

// NodeKind discriminates arena nodes.
type NodeKind uint8

const (
	KindRoot NodeKind = iota
	KindBlock
	KindElement
	KindInput
	KindText
	// KindMarker is a zero-width node holding a caret position across
	// mutations. It never contributes text.
	KindMarker
)

func (k NodeKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindBlock:
		return "block"
	case KindElement:
		return "element"
	case KindInput:
		return "input"
	case KindText:
		return "text"
	case KindMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// InputKind discriminates editable regions.
type InputKind uint8

const (
	// InputRichText holds a tree of text and inline element nodes.
	InputRichText InputKind = iota
	// InputNative is a leaf holding a flat value addressed by grapheme offset.
	InputNative
)

func (k InputKind) String() string {
	if k == InputNative {
		return "native"
	}
	return "richText"
}

// BlockID identifies a block uniquely within a document.
type BlockID string

// Capabilities are the per-block flags consulted by selection and merge logic.
type Capabilities struct {
	// Selectable blocks may be a selection endpoint.
	Selectable bool
	// SupportsLineBreaks must match between two blocks for them to merge.
	SupportsLineBreaks bool
	// Mergeable blocks may be the target or source of a merge.
	Mergeable bool
	// ReadOnly blocks reject merges into them.
	ReadOnly bool
}

// TextCapabilities returns the flags of an ordinary paragraph-like block.
func TextCapabilities() Capabilities {
	return Capabilities{Selectable: true, Mergeable: true}
}

// Block is a read-only view of a block node.
type Block struct {
	ID   BlockID
	Node NodeID
	Tool string
	Capabilities
}

// Anchor is a DOM-style boundary point.
type Anchor struct {
	Node   NodeID
	Offset int
}

// NoAnchor is the unresolved anchor.
var NoAnchor = Anchor{Node: NoNode}

// Valid reports whether a references a node.
func (a Anchor) Valid() bool { return a.Node != NoNode }

// Range is an ordered pair of anchors. Start <= End once normalized.
type Range struct {
	Start Anchor
	End   Anchor
}

// Collapse returns a collapsed range at a.
func Collapse(a Anchor) Range { return Range{Start: a, End: a} }

// Collapsed reports whether the range is a caret.
func (r Range) Collapsed() bool { return r.Start == r.End }

// Valid reports whether both anchors reference nodes.
func (r Range) Valid() bool { return r.Start.Valid() && r.End.Valid() }
