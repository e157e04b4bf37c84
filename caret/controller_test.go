package caret

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/blockedit/document"
)

func TestController_SetCaret(t *testing.T) {
	d := document.NewBuilder().
		Block("q", "quote", document.TextCapabilities()).Text("text").Text("caption").
		Block("img", "image", document.Capabilities{}).
		MustBuild()
	c := NewController(d)
	b, _ := d.BlockByID("q")
	inputs := d.Inputs(b.Node)

	require.NoError(t, c.SetCaret("q", PositionStart))
	sel, ok := c.Selection()
	require.True(t, ok)
	assert.True(t, sel.Collapsed())
	assert.Equal(t, d.StartOf(inputs[0]), sel.Start)

	require.NoError(t, c.SetCaret("q", PositionEnd))
	focus, _ := c.Focus()
	assert.Equal(t, d.EndOf(inputs[1]), focus)

	img, _ := d.BlockByID("img")
	require.NoError(t, c.SetCaret("img", PositionEnd))
	focus, _ = c.Focus()
	assert.Equal(t, d.End(img.Node), focus)

	require.ErrorIs(t, c.SetCaret("missing", PositionStart), document.ErrBlockNotFound)
}

func TestController_SetSelectionRejectsInvalid(t *testing.T) {
	d := document.NewBuilder().Paragraph("a", "hi").MustBuild()
	c := NewController(d)

	c.Collapse(d.StartOf(firstInput(t, d, "a")))
	_, ok := c.Selection()
	require.True(t, ok)

	c.SetSelection(document.Range{Start: document.NoAnchor, End: document.NoAnchor})
	_, ok = c.Selection()
	assert.False(t, ok)
}

func TestController_ShadowAnchorAcrossMerge(t *testing.T) {
	d := document.NewBuilder().
		Paragraph("a", "hel").
		Paragraph("b", "rld").
		MustBuild()
	c := NewController(d)
	repo := document.NewRepository(d)
	ia := firstInput(t, d, "a")

	s, err := c.CreateShadowAnchor(ia)
	require.NoError(t, err)
	require.NoError(t, <-repo.MergeInto(context.Background(), "a", "b"))
	require.NoError(t, c.RestoreCaret(s))

	assert.Equal(t, "helrld", d.TextContent(ia))
	assert.False(t, d.Attached(s.Marker), "marker removed on restore")
	focus, _ := c.Focus()
	off, ok := d.OffsetOf(ia, focus)
	require.True(t, ok)
	assert.Equal(t, 3, off)
	assert.Equal(t, "hel", d.TextInRange(document.Range{Start: d.StartOf(ia), End: focus}))

	require.ErrorIs(t, c.RestoreCaret(s), ErrShadowLost)
}

func TestController_ShadowAnchorNative(t *testing.T) {
	caps := document.Capabilities{Selectable: true, Mergeable: true}
	d := document.NewBuilder().
		Block("x", "field", caps).Native("x", "ab").
		Block("y", "field", caps).Native("y", "cd").
		MustBuild()
	c := NewController(d)
	x := firstInput(t, d, "x")

	s, err := c.CreateShadowAnchor(x)
	require.NoError(t, err)
	assert.Equal(t, document.NoNode, s.Marker)
	require.NoError(t, <-document.NewRepository(d).MergeInto(context.Background(), "x", "y"))
	require.NoError(t, c.RestoreCaret(s))

	focus, _ := c.Focus()
	assert.Equal(t, document.Anchor{Node: x, Offset: 2}, focus)
}

func TestController_DiscardShadow(t *testing.T) {
	d := document.NewBuilder().Paragraph("a", "hello").MustBuild()
	c := NewController(d)
	ia := firstInput(t, d, "a")
	c.Collapse(d.AnchorAt(ia, 2))

	s, err := c.CreateShadowAnchor(ia)
	require.NoError(t, err)
	c.DiscardShadow(s)
	assert.False(t, d.Attached(s.Marker))
	assert.Equal(t, 1, d.Length(ia))

	focus, _ := c.Focus()
	assert.Equal(t, d.AnchorAt(ia, 2), focus, "selection untouched")

	c.DiscardShadow(s)
}

func TestController_CreateShadowAnchorRejectsNonInput(t *testing.T) {
	d := document.NewBuilder().Paragraph("a", "hello").MustBuild()
	c := NewController(d)
	b, _ := d.BlockByID("a")

	_, err := c.CreateShadowAnchor(b.Node)
	require.ErrorIs(t, err, document.ErrWrongKind)
}
