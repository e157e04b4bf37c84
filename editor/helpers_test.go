package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/blockedit/document"
)

func stripANSI(s string) string { return ansi.Strip(s) }

// newTestModel returns a focused model with the guard pass running inline.
func newTestModel(t *testing.T, doc *document.Document, mutate ...func(*Config)) Model {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Document = doc
	cfg.SelectionDebounce = -1
	for _, fn := range mutate {
		fn(&cfg)
	}
	return New(cfg).SetSize(40, 10)
}

func helloWorldDoc() *document.Document {
	return document.NewBuilder().
		Paragraph("a", "hello").
		Paragraph("b", "world").
		MustBuild()
}

func inputOf(t *testing.T, m Model, id document.BlockID, i int) document.NodeID {
	t.Helper()
	b, ok := m.Document().BlockByID(id)
	require.True(t, ok, "block %s", id)
	inputs := m.Document().Inputs(b.Node)
	require.Greater(t, len(inputs), i, "block %s inputs", id)
	return inputs[i]
}

func anchorAt(t *testing.T, m Model, id document.BlockID, k int) document.Anchor {
	t.Helper()
	return m.Document().AnchorAt(inputOf(t, m, id, 0), k)
}

// caretOffset returns the collapsed caret's grapheme offset within the first
// input of block id.
func caretOffset(t *testing.T, m Model, id document.BlockID) int {
	t.Helper()
	sel, ok := m.Caret().Selection()
	require.True(t, ok, "no selection")
	require.True(t, sel.Collapsed(), "selection not collapsed: %+v", sel)
	off, ok := m.Document().OffsetOf(inputOf(t, m, id, 0), sel.End)
	require.True(t, ok, "caret %+v outside block %s", sel.End, id)
	return off
}

func blockTexts(m Model) []string {
	var out []string
	for _, b := range m.Document().Blocks() {
		out = append(out, m.Document().TextContent(b.Node))
	}
	return out
}

func viewLines(m Model) []string {
	lines := strings.Split(m.View(), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(stripANSI(lines[i]), " ")
	}
	return lines
}

// send delivers msg and runs every command it produces until none remain.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	m, cmd := m.Update(msg)
	return drain(t, m, cmd)
}

func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
		return m
	default:
		var next tea.Cmd
		m, next = m.Update(msg)
		return drain(t, m, next)
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runesMsg(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

type memClipboard struct {
	text string
}

func (c *memClipboard) ReadText() (string, error) { return c.text, nil }

func (c *memClipboard) WriteText(s string) error {
	c.text = s
	return nil
}
