package editor

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/blockedit/caret"
	"github.com/iw2rmb/blockedit/document"
)

func TestUpdate_CrossBlockBackspaceMergesAndRestoresCaret(t *testing.T) {
	m := newTestModel(t, helloWorldDoc())
	m.Caret().SetSelection(document.Range{Start: anchorAt(t, m, "a", 3), End: anchorAt(t, m, "b", 2)})

	m = send(t, m, keyMsg(tea.KeyBackspace))

	assert.Equal(t, []string{"helrld"}, blockTexts(m))
	assert.Equal(t, 3, caretOffset(t, m, "a"))
	assert.Nil(t, m.Handler().Merges().Pending(), "merge resolved by the command")
}

func TestUpdate_BoundaryKeysMergeNeighbours(t *testing.T) {
	cases := []struct {
		name     string
		key      tea.KeyType
		block    document.BlockID
		pos      caret.Position
		wantText string
		wantCol  int
	}{
		{name: "backspace-at-start", key: tea.KeyBackspace, block: "b", pos: caret.PositionStart, wantText: "helloworld", wantCol: 5},
		{name: "delete-at-end", key: tea.KeyDelete, block: "a", pos: caret.PositionEnd, wantText: "helloworld", wantCol: 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t, helloWorldDoc())
			require.NoError(t, m.Caret().SetCaret(tc.block, tc.pos))

			m = send(t, m, keyMsg(tc.key))

			assert.Equal(t, []string{tc.wantText}, blockTexts(m))
			assert.Equal(t, tc.wantCol, caretOffset(t, m, "a"))
		})
	}
}

func TestUpdate_BoundaryMergeDisabledLeavesDocument(t *testing.T) {
	m := newTestModel(t, helloWorldDoc(), func(c *Config) { c.Redactor.BoundaryMerge = false })
	require.NoError(t, m.Caret().SetCaret("b", caret.PositionStart))

	m = send(t, m, keyMsg(tea.KeyBackspace))

	assert.Equal(t, []string{"hello", "world"}, blockTexts(m))
	assert.Equal(t, 0, caretOffset(t, m, "b"))
}

func TestUpdate_DefaultDeleteRemovesOneGrapheme(t *testing.T) {
	cases := []struct {
		name    string
		key     tea.KeyType
		at      int
		want    string
		wantCol int
	}{
		{name: "backspace", key: tea.KeyBackspace, at: 5, want: "hell", wantCol: 4},
		{name: "delete", key: tea.KeyDelete, at: 1, want: "hllo", wantCol: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t, helloWorldDoc())
			m.Caret().Collapse(anchorAt(t, m, "a", tc.at))

			m = send(t, m, keyMsg(tc.key))

			assert.Equal(t, tc.want, blockTexts(m)[0])
			assert.Equal(t, tc.wantCol, caretOffset(t, m, "a"))
		})
	}
}

func TestUpdate_NativeInputUsesDefaultDelete(t *testing.T) {
	doc := document.NewBuilder().
		Block("f", "form", document.TextCapabilities()).Native("title", "value").
		MustBuild()
	m := newTestModel(t, doc)
	in := inputOf(t, m, "f", 0)
	m.Caret().Collapse(m.Document().AnchorAt(in, 5))

	m = send(t, m, keyMsg(tea.KeyBackspace))

	assert.Equal(t, "valu", m.Document().TextContent(in))
}

func TestUpdate_ReadOnlyBlockRejectsEdits(t *testing.T) {
	doc := document.NewBuilder().
		Block("r", "paragraph", document.Capabilities{Selectable: true, ReadOnly: true}).Text("fixed").
		MustBuild()
	m := newTestModel(t, doc)
	m.Caret().Collapse(anchorAt(t, m, "r", 2))

	m = send(t, m, runesMsg("x"))
	m = send(t, m, keyMsg(tea.KeyBackspace))
	m = send(t, m, keyMsg(tea.KeyEnter))

	assert.Equal(t, []string{"fixed"}, blockTexts(m))
}

func TestUpdate_ReadOnlyBlockSurvivesWholeSelectionDelete(t *testing.T) {
	doc := document.NewBuilder().
		Paragraph("a", "hello").
		Block("r", "paragraph", document.Capabilities{Selectable: true, Mergeable: true, ReadOnly: true}).Text("fixed").
		MustBuild()
	m := newTestModel(t, doc)
	m.Caret().SetSelection(document.Range{Start: anchorAt(t, m, "r", 0), End: anchorAt(t, m, "r", 5)})

	m = send(t, m, keyMsg(tea.KeyBackspace))

	assert.Equal(t, []string{"hello", "fixed"}, blockTexts(m))
}

func TestUpdate_TypingInsertsAtCaret(t *testing.T) {
	m := newTestModel(t, helloWorldDoc())
	m.Caret().Collapse(anchorAt(t, m, "a", 5))

	m = send(t, m, runesMsg("!"))
	m = send(t, m, keyMsg(tea.KeySpace))

	assert.Equal(t, "hello! ", blockTexts(m)[0])
	assert.Equal(t, 7, caretOffset(t, m, "a"))
}

func TestUpdate_TypingReplacesSelection(t *testing.T) {
	m := newTestModel(t, helloWorldDoc())
	m.Caret().SetSelection(document.Range{Start: anchorAt(t, m, "a", 1), End: anchorAt(t, m, "a", 4)})

	m = send(t, m, runesMsg("EY"))

	assert.Equal(t, "hEYo", blockTexts(m)[0])
}

func TestUpdate_EnterSplitsBlock(t *testing.T) {
	m := newTestModel(t, helloWorldDoc())
	m.Caret().Collapse(anchorAt(t, m, "a", 2))

	m = send(t, m, keyMsg(tea.KeyEnter))

	assert.Equal(t, []string{"he", "llo", "world"}, blockTexts(m))
	nb, _ := m.Document().BlockAt(1)
	assert.Equal(t, 0, caretOffset(t, m, nb.ID))
}

func TestUpdate_CaretMovement(t *testing.T) {
	m := newTestModel(t, helloWorldDoc())
	m.Caret().Collapse(anchorAt(t, m, "a", 5))

	m = send(t, m, keyMsg(tea.KeyRight))
	assert.Equal(t, 0, caretOffset(t, m, "b"), "right across blocks")
	m = send(t, m, keyMsg(tea.KeyLeft))
	assert.Equal(t, 5, caretOffset(t, m, "a"), "left across blocks")

	m.Caret().Collapse(anchorAt(t, m, "a", 3))
	m = send(t, m, keyMsg(tea.KeyDown))
	assert.Equal(t, 3, caretOffset(t, m, "b"), "down keeps column")
	m = send(t, m, keyMsg(tea.KeyHome))
	assert.Equal(t, 0, caretOffset(t, m, "b"), "home")
	m = send(t, m, keyMsg(tea.KeyEnd))
	assert.Equal(t, 5, caretOffset(t, m, "b"), "end")
	m = send(t, m, keyMsg(tea.KeyUp))
	assert.Equal(t, 5, caretOffset(t, m, "a"), "up")
}

func TestUpdate_ShiftExtendsAndArrowCollapses(t *testing.T) {
	m := newTestModel(t, helloWorldDoc())
	m.Caret().Collapse(anchorAt(t, m, "b", 5))

	m = send(t, m, keyMsg(tea.KeyShiftLeft))
	m = send(t, m, keyMsg(tea.KeyShiftLeft))

	sel, _ := m.Caret().Selection()
	assert.Equal(t, "ld", m.Document().TextInRange(m.Document().Normalize(sel)))

	m = send(t, m, keyMsg(tea.KeyLeft))
	assert.Equal(t, 3, caretOffset(t, m, "b"), "left collapses to selection start")
}

func TestUpdate_WordMovement(t *testing.T) {
	m := newTestModel(t, document.NewBuilder().Paragraph("a", "foo bar  baz").MustBuild())
	m.Caret().Collapse(anchorAt(t, m, "a", 12))

	m = send(t, m, keyMsg(tea.KeyCtrlLeft))
	assert.Equal(t, 9, caretOffset(t, m, "a"), "first word left")
	m = send(t, m, keyMsg(tea.KeyCtrlLeft))
	assert.Equal(t, 4, caretOffset(t, m, "a"), "second word left")
	m = send(t, m, keyMsg(tea.KeyCtrlRight))
	assert.Equal(t, 7, caretOffset(t, m, "a"), "word right")
}

func TestUpdate_GuardClampsSelectionAfterHostChange(t *testing.T) {
	doc := document.NewBuilder().
		Block("img", "image", document.Capabilities{}).
		Paragraph("a", "hello").
		Paragraph("b", "world").
		MustBuild()
	m := newTestModel(t, doc)
	img, _ := doc.BlockByID("img")
	a, _ := doc.BlockByID("a")

	m.Caret().SetSelection(document.Range{Start: doc.Start(img.Node), End: anchorAt(t, m, "b", 2)})
	m = send(t, m, hostEditMsg{})

	sel, _ := m.Caret().Selection()
	assert.Equal(t, doc.Start(a.Node), sel.Start)
	assert.Equal(t, anchorAt(t, m, "b", 2), sel.End, "end untouched")
}

func TestUpdate_SelectionDebounceKeepsNewestPass(t *testing.T) {
	doc := document.NewBuilder().
		Block("img", "image", document.Capabilities{}).
		Paragraph("a", "hello").
		Paragraph("b", "world").
		MustBuild()
	m := newTestModel(t, doc, func(c *Config) { c.SelectionDebounce = 30 * time.Millisecond })
	img, _ := doc.BlockByID("img")
	a, _ := doc.BlockByID("a")

	m.Caret().SetSelection(document.Range{Start: doc.Start(img.Node), End: anchorAt(t, m, "b", 2)})
	m, first := m.Update(hostEditMsg{})
	m.Caret().SetSelection(document.Range{Start: doc.Start(img.Node), End: anchorAt(t, m, "b", 3)})
	m, second := m.Update(hostEditMsg{})
	require.NotNil(t, first, "debounced guard command")
	require.NotNil(t, second, "debounced guard command")

	m, _ = m.Update(selectionSettledMsg{seq: m.selSeq - 1})
	sel, _ := m.Caret().Selection()
	assert.Equal(t, doc.Start(img.Node), sel.Start, "stale guard pass leaves the selection")

	m, _ = m.Update(selectionSettledMsg{seq: m.selSeq})
	sel, _ = m.Caret().Selection()
	assert.Equal(t, doc.Start(a.Node), sel.Start)
}

func TestUpdate_MouseClickAndDrag(t *testing.T) {
	m := newTestModel(t, helloWorldDoc())

	m = send(t, m, tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 2, caretOffset(t, m, "b"), "click")

	m = send(t, m, tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = send(t, m, tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	sel, _ := m.Caret().Selection()
	assert.Equal(t, anchorAt(t, m, "b", 2), sel.Start)
	assert.Equal(t, anchorAt(t, m, "a", 1), sel.End)
	assert.Equal(t, "ellowo", m.Document().TextInRange(m.Document().Normalize(sel)))
}

func TestUpdate_CutAndPaste(t *testing.T) {
	cb := &memClipboard{}
	m := newTestModel(t, helloWorldDoc(), func(c *Config) { c.Clipboard = cb })
	m.Caret().SetSelection(document.Range{Start: anchorAt(t, m, "a", 1), End: anchorAt(t, m, "a", 4)})

	m = send(t, m, keyMsg(tea.KeyCtrlX))
	assert.Equal(t, "ell", cb.text)
	assert.Equal(t, "ho", blockTexts(m)[0])

	m = send(t, m, keyMsg(tea.KeyCtrlV))
	assert.Equal(t, "hello", blockTexts(m)[0])
}
