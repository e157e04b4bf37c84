package redactor

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/iw2rmb/blockedit/document"
	"github.com/iw2rmb/blockedit/internal/tracing"
)

// Handler is the entry point the host calls on key presses and selection
// changes. It recomputes geometry from the passed selection on every call
// and keeps no state between calls except the pending merge.
type Handler struct {
	doc    *document.Document
	repo   BlockRepository
	caret  CaretController
	cfg    Config
	merges *MergeCoordinator
}

// New returns a handler over doc.
func New(doc *document.Document, repo BlockRepository, cc CaretController, cfg Config) *Handler {
	cfg = cfg.withDefaults()
	return &Handler{
		doc:    doc,
		repo:   repo,
		caret:  cc,
		cfg:    cfg,
		merges: NewMergeCoordinator(doc, repo, cc, cfg.Tracer),
	}
}

// Merges returns the handler's merge coordinator.
func (h *Handler) Merges() *MergeCoordinator { return h.merges }

// HandleKeydown processes Delete and Backspace over sel; other keys are
// ignored. When the handler edits the document itself it calls
// ev.PreventDefault. A non-nil handle is returned when a block merge was
// started; its continuation must be resolved by the host.
func (h *Handler) HandleKeydown(ev *KeyEvent, sel document.Range) *MergeHandle {
	if ev == nil || (ev.Key != KeyBackspace && ev.Key != KeyDelete) {
		return nil
	}
	ctx, span := h.cfg.Tracer.Start(context.Background(), tracing.SpanKeydown,
		trace.WithAttributes(attribute.String(tracing.AttrKey, ev.Key.String())))
	defer span.End()

	return h.handleDelete(ctx, span, ev, sel)
}

// HandleSelectionMaybeChanged runs the unselectable-region guard over sel.
// When the selection is clamped the caret controller receives the new range
// and it is returned with true.
func (h *Handler) HandleSelectionMaybeChanged(sel document.Range) (document.Range, bool) {
	_, span := h.cfg.Tracer.Start(context.Background(), tracing.SpanSelectionChanged)
	defer span.End()

	adjusted, ok := h.guard(sel)
	span.SetAttributes(attribute.Bool(tracing.AttrGuardAdjusted, ok))
	if ok {
		h.caret.SetSelection(adjusted)
	}
	return adjusted, ok
}
