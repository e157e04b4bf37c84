package redactor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/blockedit/caret"
	"github.com/iw2rmb/blockedit/document"
)

type harness struct {
	doc   *document.Document
	repo  *document.Repository
	caret *caret.Controller
	h     *Handler
}

func newHarness(t *testing.T, d *document.Document) *harness {
	t.Helper()
	repo := document.NewRepository(d)
	ctl := caret.NewController(d)
	return &harness{doc: d, repo: repo, caret: ctl, h: New(d, repo, ctl, DefaultConfig())}
}

// newDeferredHarness wires the handler to a repository that holds merges
// until flush, so the state between the edge cleanup and the merge is visible.
func newDeferredHarness(t *testing.T, d *document.Document) (*harness, *deferredRepo) {
	t.Helper()
	repo := &deferredRepo{Repository: document.NewRepository(d)}
	ctl := caret.NewController(d)
	return &harness{doc: d, repo: repo.Repository, caret: ctl, h: New(d, repo, ctl, DefaultConfig())}, repo
}

func (hs *harness) input(t *testing.T, id document.BlockID, i int) document.NodeID {
	t.Helper()
	b, ok := hs.doc.BlockByID(id)
	require.True(t, ok, "block %s", id)
	inputs := hs.doc.Inputs(b.Node)
	require.Greater(t, len(inputs), i, "block %s inputs", id)
	return inputs[i]
}

func (hs *harness) at(t *testing.T, id document.BlockID, k int) document.Anchor {
	t.Helper()
	return hs.doc.AnchorAt(hs.input(t, id, 0), k)
}

func (hs *harness) text(t *testing.T, id document.BlockID) string {
	t.Helper()
	b, ok := hs.doc.BlockByID(id)
	require.True(t, ok, "block %s", id)
	return hs.doc.TextContent(b.Node)
}

func (hs *harness) ids() []document.BlockID {
	var out []document.BlockID
	for _, b := range hs.doc.Blocks() {
		out = append(out, b.ID)
	}
	return out
}

// focusOffset returns the caret's grapheme offset within the first input of
// block id.
func (hs *harness) focusOffset(t *testing.T, id document.BlockID) int {
	t.Helper()
	sel, ok := hs.caret.Selection()
	require.True(t, ok, "no selection")
	require.True(t, sel.Collapsed(), "selection not collapsed")
	off, ok := hs.doc.OffsetOf(hs.input(t, id, 0), sel.End)
	require.True(t, ok, "caret outside block %s", id)
	return off
}

func (hs *harness) key(k Key, sel document.Range) (*KeyEvent, *MergeHandle) {
	ev := NewKeyEvent(k)
	return ev, hs.h.HandleKeydown(ev, sel)
}

// resolve waits for the repository and runs the merge continuation.
func resolve(t *testing.T, handle *MergeHandle) error {
	t.Helper()
	require.NotNil(t, handle, "expected a merge")
	return handle.Await(context.Background())
}

// deferredRepo delays merges until flush, like a store that reconciles
// asynchronously.
type deferredRepo struct {
	*document.Repository
	pending []func()
	fail    error
}

func (r *deferredRepo) MergeInto(ctx context.Context, target, source document.BlockID) <-chan error {
	ch := make(chan error, 1)
	r.pending = append(r.pending, func() {
		if r.fail != nil {
			ch <- r.fail
		} else {
			ch <- <-r.Repository.MergeInto(ctx, target, source)
		}
		close(ch)
	})
	return ch
}

func (r *deferredRepo) flush() {
	for _, f := range r.pending {
		f()
	}
	r.pending = nil
}

// staleRepo reports one block as missing on lookup by id.
type staleRepo struct {
	*document.Repository
	stale document.BlockID
}

func (r *staleRepo) GetByID(id document.BlockID) (document.Block, error) {
	if id == r.stale {
		return document.Block{}, document.ErrBlockNotFound
	}
	return r.Repository.GetByID(id)
}
