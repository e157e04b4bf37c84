package redactor

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/iw2rmb/blockedit/caret"
	"github.com/iw2rmb/blockedit/document"
	"github.com/iw2rmb/blockedit/geometry"
	"github.com/iw2rmb/blockedit/internal/log"
	"github.com/iw2rmb/blockedit/internal/tracing"
)

// branch names the path a delete took, for logs and spans.
type branch string

const (
	branchNoop       branch = "noop"
	branchDefault    branch = "default"
	branchWholeInput branch = "whole-input"
	branchBoundary   branch = "boundary"
	branchCrossBlock branch = "cross-block"
	branchAborted    branch = "aborted"
)

func (h *Handler) handleDelete(ctx context.Context, span trace.Span, ev *KeyEvent, sel document.Range) *MergeHandle {
	x, err := geometry.Compute(h.doc, sel)
	if err != nil {
		log.Debug(log.CatKeydown, "nothing to delete", "err", err)
		span.SetAttributes(attribute.String(tracing.AttrBranch, string(branchNoop)))
		return nil
	}
	span.SetAttributes(
		attribute.Int(tracing.AttrBlocks, len(x.Blocks)),
		attribute.Int(tracing.AttrInputs, len(x.Inputs)),
	)

	b, handle := h.plan(ctx, span, ev, x)
	span.SetAttributes(attribute.String(tracing.AttrBranch, string(b)))
	log.Debug(log.CatKeydown, "delete", "key", ev.Key, "branch", b,
		"blocks", len(x.Blocks), "inputs", len(x.Inputs), "prevented", ev.DefaultPrevented())
	return handle
}

func (h *Handler) plan(ctx context.Context, span trace.Span, ev *KeyEvent, x geometry.Intersection) (branch, *MergeHandle) {
	if x.Empty() || h.inNativeInput(x.Range) {
		return branchDefault, nil
	}

	if len(x.Inputs) == 1 {
		hit := x.Inputs[0]
		if geometry.WholeInputSelected(h.doc, x.Range, hit.Input) {
			ev.PreventDefault()
			if !h.deleteWholeInput(span, ev, x, hit) {
				return branchAborted, nil
			}
			return branchWholeInput, nil
		}
		if h.cfg.BoundaryMerge && x.Range.Collapsed() {
			if handle, ok := h.boundary(ctx, span, ev, hit, x.Range.End); ok {
				return branchBoundary, handle
			}
		}
	}

	if !x.CrossBlock() {
		return branchDefault, nil
	}
	ev.PreventDefault()
	handle, ok := h.deleteCrossBlock(ctx, span, x)
	if !ok {
		return branchAborted, nil
	}
	return branchCrossBlock, handle
}

// inNativeInput reports whether either endpoint of r lies inside a native
// input. Editing there is left to the host.
func (h *Handler) inNativeInput(r document.Range) bool {
	return h.doc.IsNative(r.Start.Node) || h.doc.IsNative(r.End.Node)
}

// deleteWholeInput removes the block of a fully selected single input, along
// with any intersected blocks that own no input, and moves the caret to the
// neighbouring block in the direction of the key.
func (h *Handler) deleteWholeInput(span trace.Span, ev *KeyEvent, x geometry.Intersection, hit geometry.InputHit) bool {
	victims := []document.BlockID{hit.Block.ID}
	for _, b := range x.Blocks {
		if b.ID != hit.Block.ID && len(h.doc.Inputs(b.Node)) == 0 {
			victims = append(victims, b.ID)
		}
	}

	for _, id := range victims {
		b, err := h.repo.GetByID(id)
		if err != nil {
			h.blockNotFound(span, err)
			return false
		}
		if b.ReadOnly {
			log.Warn(log.CatKeydown, "selection covers a read-only block", "block", id)
			return false
		}
	}

	lo, hi := -1, -1
	for _, id := range victims {
		i, err := h.repo.IndexOf(id)
		if err != nil {
			h.blockNotFound(span, err)
			return false
		}
		if lo < 0 || i < lo {
			lo = i
		}
		if i > hi {
			hi = i
		}
	}

	type target struct {
		id  document.BlockID
		pos caret.Position
	}
	var targets []target
	prev, prevErr := h.repo.GetByIndex(lo - 1)
	next, nextErr := h.repo.GetByIndex(hi + 1)
	if ev.Key == KeyBackspace {
		if prevErr == nil {
			targets = append(targets, target{prev.ID, caret.PositionEnd})
		}
		if nextErr == nil {
			targets = append(targets, target{next.ID, caret.PositionStart})
		}
	} else {
		if nextErr == nil {
			targets = append(targets, target{next.ID, caret.PositionStart})
		}
		if prevErr == nil {
			targets = append(targets, target{prev.ID, caret.PositionEnd})
		}
	}

	for _, id := range victims {
		if err := h.repo.Delete(id); err != nil {
			log.ErrorErr(log.CatKeydown, "delete block", err, "block", id)
			span.RecordError(err)
			return false
		}
		span.AddEvent(tracing.EventBlockDeleted, trace.WithAttributes(attribute.String("block.id", string(id))))
	}

	if len(targets) == 0 {
		first, err := h.repo.GetByIndex(0)
		if err != nil {
			h.blockNotFound(span, err)
			return true
		}
		targets = append(targets, target{first.ID, caret.PositionStart})
	}
	if err := h.caret.SetCaret(targets[0].id, targets[0].pos); err != nil {
		log.ErrorErr(log.CatKeydown, "place caret after delete", err, "block", targets[0].id)
	}
	return true
}

// boundary handles a collapsed caret at the start of a block's first input
// (Backspace) or the end of its last input (Delete) by merging with or
// navigating to the neighbouring block. It reports false when the caret is
// not at such a boundary and the host should delete as usual.
func (h *Handler) boundary(ctx context.Context, span trace.Span, ev *KeyEvent, hit geometry.InputHit, focus document.Anchor) (*MergeHandle, bool) {
	inputs := h.doc.Inputs(hit.Block.Node)
	if len(inputs) == 0 {
		return nil, false
	}

	switch ev.Key {
	case KeyBackspace:
		if hit.Input != inputs[0] || !caret.IsAtStartOfInput(h.doc, hit.Input, focus) {
			return nil, false
		}
	case KeyDelete:
		if hit.Input != inputs[len(inputs)-1] || !caret.IsAtEndOfInput(h.doc, hit.Input, focus) {
			return nil, false
		}
	default:
		return nil, false
	}

	idx, err := h.repo.IndexOf(hit.Block.ID)
	if err != nil {
		ev.PreventDefault()
		h.blockNotFound(span, err)
		return nil, true
	}

	if ev.Key == KeyBackspace {
		prev, err := h.repo.GetByIndex(idx - 1)
		if err != nil {
			return nil, false
		}
		ev.PreventDefault()
		return h.mergeOrNavigate(ctx, span, prev, hit.Block, prev.ID, caret.PositionEnd), true
	}
	next, err := h.repo.GetByIndex(idx + 1)
	if err != nil {
		return nil, false
	}
	ev.PreventDefault()
	return h.mergeOrNavigate(ctx, span, hit.Block, next, next.ID, caret.PositionStart), true
}

// deleteCrossBlock extracts the selected edges of the first and last
// intersected inputs, removes the inputs between them, deletes blocks left
// without inputs and finally merges the surviving endpoint blocks or moves
// the caret. Everything is resolved and validated before the first mutation.
func (h *Handler) deleteCrossBlock(ctx context.Context, span trace.Span, x geometry.Intersection) (*MergeHandle, bool) {
	for _, b := range x.Blocks {
		if _, err := h.repo.GetByID(b.ID); err != nil {
			h.blockNotFound(span, err)
			return nil, false
		}
		if b.ReadOnly {
			log.Warn(log.CatKeydown, "selection covers a read-only block", "block", b.ID)
			return nil, false
		}
	}

	first, last := x.Inputs[0], x.Inputs[len(x.Inputs)-1]
	owned := make(map[document.BlockID][]document.NodeID, len(x.Blocks))
	for _, b := range x.Blocks {
		owned[b.ID] = h.doc.Inputs(b.Node)
	}
	edges := h.edgeRanges(x)
	for _, r := range edges {
		if !h.doc.ValidAnchor(r.Start) || !h.doc.ValidAnchor(r.End) {
			log.Error(log.CatKeydown, "unresolvable edge range", "start", r.Start, "end", r.End)
			return nil, false
		}
	}

	for _, r := range edges {
		if _, err := h.doc.ExtractContents(r); err != nil {
			log.ErrorErr(log.CatKeydown, "extract edge", err)
			span.RecordError(err)
			return nil, false
		}
	}

	removed := make(map[document.NodeID]bool)
	if first.Input != last.Input {
		for _, hit := range x.Inputs[1 : len(x.Inputs)-1] {
			if err := h.doc.RemoveNode(hit.Input); err != nil {
				log.ErrorErr(log.CatKeydown, "remove input", err, "block", hit.Block.ID)
				span.RecordError(err)
				return nil, false
			}
			removed[hit.Input] = true
			span.AddEvent(tracing.EventInputRemoved, trace.WithAttributes(attribute.String("block.id", string(hit.Block.ID))))
		}
	}

	for _, b := range x.Blocks {
		if !allRemoved(owned[b.ID], removed) {
			continue
		}
		if err := h.repo.Delete(b.ID); err != nil {
			log.ErrorErr(log.CatKeydown, "delete block", err, "block", b.ID)
			span.RecordError(err)
			return nil, false
		}
		span.AddEvent(tracing.EventBlockDeleted, trace.WithAttributes(attribute.String("block.id", string(b.ID))))
	}

	start, err := h.repo.GetByID(first.Block.ID)
	if err != nil {
		h.blockNotFound(span, err)
		return nil, false
	}
	end, err := h.repo.GetByID(last.Block.ID)
	if err != nil {
		h.blockNotFound(span, err)
		return nil, false
	}

	h.caret.SetSelection(document.Collapse(edges[0].Start))
	if start.ID == end.ID {
		return nil, true
	}
	return h.mergeOrNavigate(ctx, span, start, end, start.ID, caret.PositionStart), true
}

// edgeRanges returns the parts of the selection to extract: the first and
// last intersected inputs clipped to the selection, or the selection clipped
// to the single input when both are the same.
func (h *Handler) edgeRanges(x geometry.Intersection) []document.Range {
	clip := func(in document.NodeID) document.Range {
		r := document.Range{Start: h.doc.Start(in), End: h.doc.End(in)}
		if h.doc.Before(r.Start, x.Range.Start) {
			r.Start = x.Range.Start
		}
		if h.doc.Before(x.Range.End, r.End) {
			r.End = x.Range.End
		}
		return r
	}
	first, last := x.Inputs[0].Input, x.Inputs[len(x.Inputs)-1].Input
	if first == last {
		return []document.Range{clip(first)}
	}
	return []document.Range{clip(first), clip(last)}
}

func (h *Handler) mergeOrNavigate(ctx context.Context, span trace.Span, target, source document.Block, to document.BlockID, pos caret.Position) *MergeHandle {
	if !target.ReadOnly && !source.ReadOnly && h.cfg.Mergeable(target.Capabilities, source.Capabilities) {
		return h.merges.Merge(ctx, target, source)
	}
	log.Debug(log.CatKeydown, "navigate", "reason", ErrMergeRejected, "target", target.ID, "source", source.ID)
	if err := h.caret.SetCaret(to, pos); err != nil {
		log.ErrorErr(log.CatKeydown, "navigate", err, "block", to)
		return nil
	}
	span.AddEvent(tracing.EventCaretNavigated, trace.WithAttributes(attribute.String("block.id", string(to))))
	return nil
}

func (h *Handler) blockNotFound(span trace.Span, err error) {
	msg := "repository lookup"
	if errors.Is(err, ErrBlockNotFound) {
		msg = "block not found"
	}
	log.ErrorErr(log.CatKeydown, msg, err)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func allRemoved(inputs []document.NodeID, removed map[document.NodeID]bool) bool {
	for _, in := range inputs {
		if !removed[in] {
			return false
		}
	}
	return true
}
