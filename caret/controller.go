package caret

import (
	"errors"
	"fmt"

	"github.com/iw2rmb/blockedit/document"
	"github.com/iw2rmb/blockedit/internal/log"
)

// ErrShadowLost reports a shadow anchor whose marker is no longer attached.
var ErrShadowLost = errors.New("shadow anchor lost")

// Position selects where SetCaret places the caret within a block.
type Position int

const (
	PositionStart Position = iota
	PositionEnd
)

func (p Position) String() string {
	if p == PositionEnd {
		return "end"
	}
	return "start"
}

// ShadowAnchor captures the end of an input so the caret can be restored
// there after the input's content changes. Rich-text inputs hold a marker
// node; native inputs hold the value length at capture time.
type ShadowAnchor struct {
	Input  document.NodeID
	Marker document.NodeID
	Offset int
}

// Controller owns the selection of one document.
type Controller struct {
	doc *document.Document
	sel document.Range
	has bool
}

// NewController returns a controller without a selection.
func NewController(doc *document.Document) *Controller {
	return &Controller{doc: doc}
}

// Selection returns the current selection.
func (c *Controller) Selection() (document.Range, bool) {
	if !c.has {
		return document.Range{}, false
	}
	return c.sel, true
}

// Focus returns the end of the selection where the caret is drawn.
func (c *Controller) Focus() (document.Anchor, bool) {
	if !c.has {
		return document.NoAnchor, false
	}
	return c.sel.End, true
}

// SetSelection replaces the selection. Invalid ranges clear it.
func (c *Controller) SetSelection(r document.Range) {
	if !c.doc.ValidAnchor(r.Start) || !c.doc.ValidAnchor(r.End) {
		c.Clear()
		return
	}
	c.sel, c.has = r, true
}

// Collapse places a caret at a.
func (c *Controller) Collapse(a document.Anchor) { c.SetSelection(document.Collapse(a)) }

// Clear drops the selection.
func (c *Controller) Clear() {
	c.sel, c.has = document.Range{}, false
}

// SetCaret collapses the caret at the start of the first input or the end
// of the last input of block id. Blocks without inputs take the caret on
// the block itself.
func (c *Controller) SetCaret(id document.BlockID, pos Position) error {
	b, ok := c.doc.BlockByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", document.ErrBlockNotFound, id)
	}
	inputs := c.doc.Inputs(b.Node)

	var at document.Anchor
	switch {
	case len(inputs) == 0 && pos == PositionStart:
		at = c.doc.Start(b.Node)
	case len(inputs) == 0:
		at = c.doc.End(b.Node)
	case pos == PositionStart:
		at = c.doc.StartOf(inputs[0])
	default:
		at = c.doc.EndOf(inputs[len(inputs)-1])
	}
	c.Collapse(at)
	log.Debug(log.CatCaret, "set caret", "block", id, "pos", pos)
	return nil
}

// CreateShadowAnchor captures the current end of input.
func (c *Controller) CreateShadowAnchor(input document.NodeID) (ShadowAnchor, error) {
	kind, ok := c.doc.InputKind(input)
	if !ok {
		return ShadowAnchor{}, fmt.Errorf("%w: %d is not an input", document.ErrWrongKind, input)
	}
	if kind == document.InputNative {
		return ShadowAnchor{Input: input, Marker: document.NoNode, Offset: c.doc.Length(input)}, nil
	}
	m, err := c.doc.InsertMarker(input)
	if err != nil {
		return ShadowAnchor{}, err
	}
	return ShadowAnchor{Input: input, Marker: m}, nil
}

// RestoreCaret collapses the caret at s and removes its marker.
func (c *Controller) RestoreCaret(s ShadowAnchor) error {
	if s.Marker == document.NoNode {
		if !c.doc.Attached(s.Input) {
			return fmt.Errorf("%w: input %d", ErrShadowLost, s.Input)
		}
		c.Collapse(c.doc.AnchorAt(s.Input, s.Offset))
		return nil
	}

	at, ok := c.doc.MarkerAnchor(s.Marker)
	if !ok {
		return fmt.Errorf("%w: marker %d", ErrShadowLost, s.Marker)
	}
	input, ok := c.doc.ClosestInput(at.Node)
	if !ok {
		return fmt.Errorf("%w: marker %d outside any input", ErrShadowLost, s.Marker)
	}
	k, _ := c.doc.OffsetOf(input, at)
	if err := c.doc.RemoveNode(s.Marker); err != nil {
		return err
	}
	c.Collapse(c.doc.AnchorAt(input, k))
	log.Debug(log.CatCaret, "restored caret", "input", input, "offset", k)
	return nil
}

// DiscardShadow removes the marker of s without touching the selection.
func (c *Controller) DiscardShadow(s ShadowAnchor) {
	if s.Marker == document.NoNode || !c.doc.Attached(s.Marker) {
		return
	}
	if err := c.doc.RemoveNode(s.Marker); err != nil {
		log.ErrorErr(log.CatCaret, "discard shadow", err, "marker", s.Marker)
	}
}
