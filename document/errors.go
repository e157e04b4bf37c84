package document

import "errors"

var (
	// ErrNodeNotFound indicates a NodeID outside the arena or a detached node.
	ErrNodeNotFound = errors.New("node not found")

	// ErrBlockNotFound indicates a BlockID that no longer resolves.
	ErrBlockNotFound = errors.New("block not found")

	// ErrInvalidAnchor indicates an anchor whose offset is out of bounds or
	// whose node is detached.
	ErrInvalidAnchor = errors.New("invalid anchor")

	// ErrWrongKind indicates an operation applied to a node of the wrong kind.
	ErrWrongKind = errors.New("wrong node kind")

	// ErrReadOnly indicates a mutation of a read-only block.
	ErrReadOnly = errors.New("block is read-only")

	// ErrNotMergeable indicates a merge between incompatible blocks.
	ErrNotMergeable = errors.New("blocks are not mergeable")

	// ErrDuplicateBlock indicates a BlockID already present in the document.
	ErrDuplicateBlock = errors.New("duplicate block id")
)
