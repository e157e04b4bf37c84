package redactor

import (
	"context"

	"github.com/iw2rmb/blockedit/caret"
	"github.com/iw2rmb/blockedit/document"
)

// BlockRepository inserts, deletes and merges blocks.
type BlockRepository interface {
	GetByID(id document.BlockID) (document.Block, error)
	GetByIndex(i int) (document.Block, error)
	IndexOf(id document.BlockID) (int, error)
	InsertAfter(id document.BlockID, tool string, caps document.Capabilities) (document.Block, error)
	Delete(id document.BlockID) error

	// MergeInto appends source's content to target and removes source. The
	// result is delivered once on the returned channel; a non-nil error
	// means nothing was merged.
	MergeInto(ctx context.Context, target, source document.BlockID) <-chan error
}

// CaretController places and restores the caret.
type CaretController interface {
	SetCaret(id document.BlockID, pos caret.Position) error
	SetSelection(r document.Range)
	CreateShadowAnchor(input document.NodeID) (caret.ShadowAnchor, error)
	RestoreCaret(s caret.ShadowAnchor) error
	DiscardShadow(s caret.ShadowAnchor)
}

var (
	_ BlockRepository = (*document.Repository)(nil)
	_ CaretController = (*caret.Controller)(nil)
)
