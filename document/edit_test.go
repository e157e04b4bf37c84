package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextInRange_CrossBlock(t *testing.T) {
	d := helloWorld(t)
	ta := textOf(t, d, inputOf(t, d, "a", 0))
	tb := textOf(t, d, inputOf(t, d, "b", 0))

	r := Range{Start: Anchor{ta, 3}, End: Anchor{tb, 2}}
	assert.Equal(t, "lowo", d.TextInRange(r))
	assert.Equal(t, 4, d.ClustersInRange(r))
	assert.Equal(t, "", d.TextInRange(Collapse(Anchor{ta, 3})))
}

func TestExtractContents_CrossBlockTrimsBoundaries(t *testing.T) {
	d := helloWorld(t)
	ia, ib := inputOf(t, d, "a", 0), inputOf(t, d, "b", 0)
	ta, tb := textOf(t, d, ia), textOf(t, d, ib)
	v := d.Version()

	got, err := d.ExtractContents(Range{Start: Anchor{ta, 3}, End: Anchor{tb, 2}})
	require.NoError(t, err)
	assert.Equal(t, "lowo", got)
	assert.Equal(t, "hel", d.TextContent(ia))
	assert.Equal(t, "rld", d.TextContent(ib))
	assert.Equal(t, v+1, d.Version())

	ch, ok := d.LastChange()
	require.True(t, ok)
	assert.Equal(t, ChangeExtract, ch.Kind)
	assert.Equal(t, BlockID("a"), ch.Block)
	assert.Equal(t, "lowo", ch.Text)
}

func TestExtractContents_WholeInputDetachesText(t *testing.T) {
	d := helloWorld(t)
	ia := inputOf(t, d, "a", 0)
	ta := textOf(t, d, ia)

	got, err := d.ExtractContents(Range{Start: d.Start(ia), End: d.End(ia)})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, 0, d.Length(ia))
	assert.False(t, d.Attached(ta))
	assert.True(t, d.Attached(ia), "the input itself is only partially contained")
}

func TestExtractContents_InlineElements(t *testing.T) {
	d := NewBuilder().
		Block("a", "paragraph", TextCapabilities()).Rich(T("he"), E("b", T("ll")), T("o")).
		MustBuild()
	in := inputOf(t, d, "a", 0)
	first, bold, last := d.ChildAt(in, 0), d.ChildAt(in, 1), d.ChildAt(in, 2)

	got, err := d.ExtractContents(Range{Start: Anchor{first, 1}, End: Anchor{last, 0}})
	require.NoError(t, err)
	assert.Equal(t, "ell", got)
	assert.Equal(t, "ho", d.TextContent(in))
	assert.False(t, d.Attached(bold))
}

func TestExtractContents_PartialInlineKeepsElement(t *testing.T) {
	d := NewBuilder().
		Block("a", "paragraph", TextCapabilities()).Rich(T("he"), E("b", T("ll")), T("o")).
		MustBuild()
	in := inputOf(t, d, "a", 0)
	bold := d.ChildAt(in, 1)
	boldText := d.ChildAt(bold, 0)

	got, err := d.ExtractContents(Range{Start: Anchor{boldText, 1}, End: d.End(in)})
	require.NoError(t, err)
	assert.Equal(t, "lo", got)
	assert.Equal(t, "hel", d.TextContent(in))
	assert.True(t, d.Attached(bold))
}

func TestExtractContents_NativeValue(t *testing.T) {
	d := NewBuilder().
		Block("f", "form", Capabilities{Selectable: true}).Native("name", "value").
		MustBuild()
	in := inputOf(t, d, "f", 0)

	got, err := d.ExtractContents(Range{Start: Anchor{in, 1}, End: Anchor{in, 3}})
	require.NoError(t, err)
	assert.Equal(t, "al", got)
	assert.Equal(t, "vue", d.TextContent(in))
}

func TestExtractContents_CollapsedIsNoop(t *testing.T) {
	d := helloWorld(t)
	ta := textOf(t, d, inputOf(t, d, "a", 0))
	v := d.Version()

	got, err := d.ExtractContents(Collapse(Anchor{ta, 2}))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, v, d.Version())
}

func TestExtractContents_InvalidAnchor(t *testing.T) {
	d := helloWorld(t)
	ta := textOf(t, d, inputOf(t, d, "a", 0))

	_, err := d.ExtractContents(Range{Start: Anchor{ta, 0}, End: Anchor{ta, 99}})
	require.ErrorIs(t, err, ErrInvalidAnchor)
	_, err = d.ExtractContents(Range{Start: NoAnchor, End: Anchor{ta, 1}})
	require.ErrorIs(t, err, ErrInvalidAnchor)
}

func TestInsertText(t *testing.T) {
	d := NewBuilder().
		Paragraph("a", "hello").
		Paragraph("empty", "").
		Block("embed", "image", Capabilities{}).
		MustBuild()
	ta := textOf(t, d, inputOf(t, d, "a", 0))

	next, err := d.InsertText(Anchor{ta, 5}, "!")
	require.NoError(t, err)
	assert.Equal(t, Anchor{ta, 6}, next)
	assert.Equal(t, "hello!", d.TextContent(ta))

	empty := inputOf(t, d, "empty", 0)
	next, err = d.InsertText(d.Start(empty), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", d.TextContent(empty))
	assert.Equal(t, 2, next.Offset)
	kind, _ := d.Kind(next.Node)
	assert.Equal(t, KindText, kind)

	embed, _ := d.BlockByID("embed")
	_, err = d.InsertText(d.Start(embed.Node), "x")
	require.ErrorIs(t, err, ErrWrongKind)
}

func TestInsertText_ReadOnlyBlock(t *testing.T) {
	d := NewBuilder().
		Block("ro", "paragraph", Capabilities{Selectable: true, ReadOnly: true}).Text("fixed").
		MustBuild()
	in := inputOf(t, d, "ro", 0)

	_, err := d.InsertText(d.End(in), "x")
	require.ErrorIs(t, err, ErrReadOnly)
}

func TestMarker_SurvivesMoveChildren(t *testing.T) {
	d := helloWorld(t)
	ia, ib := inputOf(t, d, "a", 0), inputOf(t, d, "b", 0)

	m, err := d.InsertMarker(ia)
	require.NoError(t, err)
	at, ok := d.MarkerAnchor(m)
	require.True(t, ok)
	assert.Equal(t, Anchor{ia, 1}, at)
	assert.Equal(t, "hello", d.TextContent(ia), "markers carry no text")

	require.NoError(t, d.MoveChildren(ia, ib))
	assert.Equal(t, "helloworld", d.TextContent(ia))
	assert.Equal(t, 0, d.Length(ib))

	at, ok = d.MarkerAnchor(m)
	require.True(t, ok)
	off, ok := d.OffsetOf(ia, at)
	require.True(t, ok)
	assert.Equal(t, 5, off)

	require.NoError(t, d.RemoveNode(m))
	_, ok = d.MarkerAnchor(m)
	assert.False(t, ok)
}

func TestInsertMarker_RejectsNative(t *testing.T) {
	d := NewBuilder().
		Block("f", "form", Capabilities{Selectable: true}).Native("name", "v").
		MustBuild()
	_, err := d.InsertMarker(inputOf(t, d, "f", 0))
	require.ErrorIs(t, err, ErrWrongKind)
}

func TestRemoveBlock_And_SetCapabilities(t *testing.T) {
	d := helloWorld(t)

	require.NoError(t, d.SetCapabilities("a", Capabilities{Selectable: true, ReadOnly: true}))
	a, _ := d.BlockByID("a")
	assert.True(t, a.ReadOnly)
	assert.False(t, a.Mergeable)

	require.NoError(t, d.RemoveBlock("a"))
	_, ok := d.BlockByID("a")
	assert.False(t, ok)
	require.ErrorIs(t, d.RemoveBlock("a"), ErrBlockNotFound)

	ch, ok := d.LastChange()
	require.True(t, ok)
	assert.Equal(t, ChangeRemoveBlock, ch.Kind)
	assert.Equal(t, "hello", ch.Text)
}

func TestChangesSince(t *testing.T) {
	d := helloWorld(t)
	ta := textOf(t, d, inputOf(t, d, "a", 0))
	v := d.Version()

	_, err := d.InsertText(Anchor{ta, 0}, ">")
	require.NoError(t, err)
	require.NoError(t, d.RemoveBlock("b"))

	changes := d.ChangesSince(v)
	require.Len(t, changes, 2)
	assert.Equal(t, ChangeInsertText, changes[0].Kind)
	assert.Equal(t, ChangeRemoveBlock, changes[1].Kind)
	assert.Equal(t, changes[0].VersionAfter, changes[1].VersionBefore)

	d.SetChangeLimit(1)
	assert.Len(t, d.ChangesSince(0), 1)
}
