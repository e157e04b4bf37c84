package redactor

import (
	"errors"

	"github.com/iw2rmb/blockedit/document"
	"github.com/iw2rmb/blockedit/geometry"
)

var (
	// ErrNoEnclosingBlock reports a selection endpoint outside every block.
	// Operations treat it as nothing to do.
	ErrNoEnclosingBlock = geometry.ErrNoEnclosingBlock

	// ErrBlockNotFound reports a block that vanished between geometry and
	// mutation. The operation is aborted.
	ErrBlockNotFound = document.ErrBlockNotFound

	// ErrMergeRejected marks a pair of blocks the merge policy refuses. The
	// planner navigates instead.
	ErrMergeRejected = errors.New("merge rejected")

	// ErrMergeFailed wraps a repository-level merge failure.
	ErrMergeFailed = errors.New("merge failed")

	// ErrMergeCancelled is reported by a merge handle superseded by a newer
	// merge before its caret was restored.
	ErrMergeCancelled = errors.New("merge cancelled")
)
