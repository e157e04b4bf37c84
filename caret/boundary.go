package caret

import (
	"github.com/iw2rmb/blockedit/document"
	"github.com/iw2rmb/blockedit/internal/grapheme"
)

type side int

const (
	before side = iota
	after
)

// IsAtStartOfInput reports whether focus is at the logical start of input:
// nothing but collapsible whitespace precedes it. Empty inputs are at both
// start and end. A focus that cannot be resolved inside input is not at the
// start.
func IsAtStartOfInput(doc *document.Document, input document.NodeID, focus document.Anchor) bool {
	return atBoundary(doc, input, focus, before)
}

// IsAtEndOfInput mirrors IsAtStartOfInput for the end of input.
func IsAtEndOfInput(doc *document.Document, input document.NodeID, focus document.Anchor) bool {
	return atBoundary(doc, input, focus, after)
}

func atBoundary(doc *document.Document, input document.NodeID, focus document.Anchor, s side) bool {
	kind, ok := doc.InputKind(input)
	if !ok {
		return false
	}

	switch kind {
	case document.InputNative:
		n := doc.Length(input)
		if n == 0 {
			return true
		}
		if focus.Node != input || !doc.ValidAnchor(focus) {
			return false
		}
		if s == before {
			return focus.Offset == 0
		}
		return focus.Offset == n

	case document.InputRichText:
		if doc.IsEmpty(input) {
			return true
		}
		at, ok := ResolveCaret(doc, focus)
		if !ok || !doc.Contains(input, at.Node) {
			return false
		}
		return sliceIsEmpty(doc, input, at, s)
	}
	return false
}

// ResolveCaret maps focus to a concrete position. A focus on a container
// with children is redescended into the child at its offset, with offset 0
// in that child; a focus past the last child lands at the end of the last
// child.
func ResolveCaret(doc *document.Document, focus document.Anchor) (document.Anchor, bool) {
	if !focus.Valid() || !doc.ValidAnchor(focus) {
		return document.NoAnchor, false
	}
	kind, _ := doc.Kind(focus.Node)
	if kind == document.KindText || doc.IsNative(focus.Node) {
		return focus, true
	}
	n := doc.Length(focus.Node)
	if n == 0 {
		return focus, true
	}
	if focus.Offset < n {
		return doc.Start(doc.ChildAt(focus.Node, focus.Offset)), true
	}
	return doc.End(doc.ChildAt(focus.Node, n-1)), true
}

// sliceIsEmpty reports whether the content of input between its boundary on
// side s and at holds only collapsible whitespace.
func sliceIsEmpty(doc *document.Document, input document.NodeID, at document.Anchor, s side) bool {
	r := document.Range{Start: doc.Start(input), End: at}
	if s == after {
		r = document.Range{Start: at, End: doc.End(input)}
	}
	return grapheme.IsCollapsedWhitespace(doc.TextInRange(r))
}
