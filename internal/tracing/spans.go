package tracing

// Span names.
const (
	SpanKeydown          = "redactor.keydown"
	SpanSelectionChanged = "redactor.selection_changed"
	SpanMerge            = "redactor.merge"
)

// Span attribute keys.
const (
	AttrKey           = "key.name"
	AttrBranch        = "delete.branch"
	AttrBlocks        = "selection.blocks"
	AttrInputs        = "selection.inputs"
	AttrTargetBlock   = "merge.target"
	AttrSourceBlock   = "merge.source"
	AttrGuardAdjusted = "guard.adjusted"
)

// Span event names.
const (
	EventBlockDeleted   = "block.deleted"
	EventInputRemoved   = "input.removed"
	EventMergeCancelled = "merge.cancelled"
	EventCaretRestored  = "caret.restored"
	EventCaretNavigated = "caret.navigated"
)
