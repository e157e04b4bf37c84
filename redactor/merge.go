package redactor

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iw2rmb/blockedit/caret"
	"github.com/iw2rmb/blockedit/document"
	"github.com/iw2rmb/blockedit/internal/log"
	"github.com/iw2rmb/blockedit/internal/tracing"
)

// MergeCoordinator merges two blocks and restores the caret at the seam once
// the repository reports completion. Only the most recent merge owns the
// caret: starting a merge cancels the continuation of the previous one.
type MergeCoordinator struct {
	doc    *document.Document
	repo   BlockRepository
	caret  CaretController
	tracer trace.Tracer

	current *MergeHandle
}

// NewMergeCoordinator returns a coordinator over the given collaborators.
func NewMergeCoordinator(doc *document.Document, repo BlockRepository, cc CaretController, tracer trace.Tracer) *MergeCoordinator {
	return &MergeCoordinator{doc: doc, repo: repo, caret: cc, tracer: tracer}
}

// Pending returns the merge whose continuation has not run yet, if any.
func (c *MergeCoordinator) Pending() *MergeHandle {
	if c.current == nil || c.current.resolved {
		return nil
	}
	return c.current
}

// Merge captures a shadow caret at the end of target's last input and asks
// the repository to merge source into target. The returned handle must be
// resolved on the host goroutine once Done delivers.
func (c *MergeCoordinator) Merge(ctx context.Context, target, source document.Block) *MergeHandle {
	if prev := c.Pending(); prev != nil {
		prev.Cancel()
	}

	ctx, span := c.tracer.Start(ctx, tracing.SpanMerge, trace.WithAttributes(
		attribute.String(tracing.AttrTargetBlock, string(target.ID)),
		attribute.String(tracing.AttrSourceBlock, string(source.ID)),
	))
	h := &MergeHandle{
		Target: target.ID,
		Source: source.ID,
		coord:  c,
		span:   span,
		shadow: caret.ShadowAnchor{Input: document.NoNode, Marker: document.NoNode},
	}

	inputs := c.doc.Inputs(target.Node)
	if len(inputs) == 0 {
		h.fail(fmt.Errorf("%w: %s has no input", document.ErrNotMergeable, target.ID))
		return h
	}
	shadow, err := c.caret.CreateShadowAnchor(inputs[len(inputs)-1])
	if err != nil {
		h.fail(fmt.Errorf("create shadow anchor: %w", err))
		return h
	}
	h.shadow = shadow
	h.done = c.repo.MergeInto(ctx, target.ID, source.ID)
	c.current = h
	log.Debug(log.CatMerge, "merge started", "target", target.ID, "source", source.ID)
	return h
}

// MergeHandle tracks one merge until its caret continuation runs. It is not
// safe for concurrent use; resolve it on the goroutine that owns the
// document.
type MergeHandle struct {
	Target document.BlockID
	Source document.BlockID

	coord  *MergeCoordinator
	span   trace.Span
	shadow caret.ShadowAnchor
	done   <-chan error

	cancelled bool
	resolved  bool
	err       error
}

// Done delivers the repository result. It is nil for a merge that failed
// before reaching the repository; such a handle is already resolved.
func (h *MergeHandle) Done() <-chan error { return h.done }

// Resolved reports whether the continuation has run.
func (h *MergeHandle) Resolved() bool { return h.resolved }

// Cancelled reports whether a newer merge superseded this one.
func (h *MergeHandle) Cancelled() bool { return h.cancelled }

// Err returns the outcome of a resolved handle.
func (h *MergeHandle) Err() error { return h.err }

// Cancel drops the caret continuation. The repository merge itself is not
// interrupted.
func (h *MergeHandle) Cancel() {
	if h.resolved || h.cancelled {
		return
	}
	h.cancelled = true
	h.coord.caret.DiscardShadow(h.shadow)
	h.span.AddEvent(tracing.EventMergeCancelled)
	log.Debug(log.CatMerge, "merge continuation cancelled", "target", h.Target, "source", h.Source)
}

// Resolve runs the continuation with the repository result: the caret is
// restored at the seam unless the merge failed or was cancelled. Later
// calls return the first outcome.
func (h *MergeHandle) Resolve(result error) error {
	if h.resolved {
		return h.err
	}

	switch {
	case result != nil:
		h.coord.caret.DiscardShadow(h.shadow)
		h.fail(result)
		return h.err
	case h.cancelled:
		h.finish(fmt.Errorf("%w: %s <- %s", ErrMergeCancelled, h.Target, h.Source))
		return h.err
	}

	if err := h.coord.caret.RestoreCaret(h.shadow); err != nil {
		h.finish(fmt.Errorf("restore caret after merge: %w", err))
		log.ErrorErr(log.CatMerge, "restore caret", err, "target", h.Target)
		return h.err
	}
	h.span.AddEvent(tracing.EventCaretRestored)
	h.finish(nil)
	log.Debug(log.CatMerge, "merge resolved", "target", h.Target, "source", h.Source)
	return nil
}

// Await blocks until the repository delivers or ctx ends, then resolves.
func (h *MergeHandle) Await(ctx context.Context) error {
	if h.resolved || h.done == nil {
		return h.err
	}
	select {
	case err, ok := <-h.done:
		if !ok {
			err = fmt.Errorf("repository closed without a result")
		}
		return h.Resolve(err)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *MergeHandle) fail(err error) {
	log.ErrorErr(log.CatMerge, "merge failed", err, "target", h.Target, "source", h.Source)
	h.finish(fmt.Errorf("%w: %s <- %s: %w", ErrMergeFailed, h.Target, h.Source, err))
}

func (h *MergeHandle) finish(err error) {
	h.resolved = true
	h.err = err
	if err != nil {
		h.span.RecordError(err)
		h.span.SetStatus(codes.Error, err.Error())
	} else {
		h.span.SetStatus(codes.Ok, "")
	}
	h.span.End()
	if h.coord.current == h {
		h.coord.current = nil
	}
}
