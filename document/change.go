package document

// ChangeKind identifies the mutation a Change records.
type ChangeKind uint8

const (
	ChangeExtract ChangeKind = iota
	ChangeRemoveNode
	ChangeInsertText
	ChangeInsertBlock
	ChangeRemoveBlock
	ChangeMoveChildren
	ChangeMarker
	ChangeCapabilities
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeExtract:
		return "extract"
	case ChangeRemoveNode:
		return "remove-node"
	case ChangeInsertText:
		return "insert-text"
	case ChangeInsertBlock:
		return "insert-block"
	case ChangeRemoveBlock:
		return "remove-block"
	case ChangeMoveChildren:
		return "move-children"
	case ChangeMarker:
		return "marker"
	case ChangeCapabilities:
		return "capabilities"
	default:
		return "unknown"
	}
}

// Change is one effective, versioned mutation.
type Change struct {
	Kind          ChangeKind
	VersionBefore uint64
	VersionAfter  uint64

	// Block is the owning block at the time of the change, when known.
	Block BlockID
	// Node is the primary node touched by the change.
	Node NodeID
	// Text is the removed or inserted text, when the change carries text.
	Text string
}

const defaultChangeLimit = 256

type changeLog struct {
	limit   int
	entries []Change
}

func (l *changeLog) add(c Change) {
	l.entries = append(l.entries, c)
	if l.limit > 0 && len(l.entries) > l.limit {
		l.entries = l.entries[len(l.entries)-l.limit:]
	}
}

// commit bumps the version and records c.
func (d *Document) commit(c Change) {
	c.VersionBefore = d.version
	d.version++
	c.VersionAfter = d.version
	if c.Block == "" && d.valid(c.Node) {
		if b, ok := d.ClosestBlock(c.Node); ok {
			c.Block = b.ID
		}
	}
	d.changes.add(c)
}

// LastChange returns the most recent effective change.
func (d *Document) LastChange() (Change, bool) {
	if len(d.changes.entries) == 0 {
		return Change{}, false
	}
	return d.changes.entries[len(d.changes.entries)-1], true
}

// ChangesSince returns the retained changes whose VersionBefore >= version,
// oldest first.
func (d *Document) ChangesSince(version uint64) []Change {
	var out []Change
	for _, c := range d.changes.entries {
		if c.VersionBefore >= version {
			out = append(out, c)
		}
	}
	return out
}

// SetChangeLimit bounds the number of retained changes. Zero keeps all.
func (d *Document) SetChangeLimit(limit int) {
	d.changes.limit = limit
	if limit > 0 && len(d.changes.entries) > limit {
		d.changes.entries = d.changes.entries[len(d.changes.entries)-limit:]
	}
}
