package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/blockedit/caret"
	"github.com/iw2rmb/blockedit/document"
	graphemeutil "github.com/iw2rmb/blockedit/internal/grapheme"
	"github.com/iw2rmb/blockedit/internal/log"
	"github.com/iw2rmb/blockedit/redactor"
)

type moveUnit int

const (
	moveGrapheme moveUnit = iota
	moveWord
	moveEdge
	moveInput
)

func (m *Model) updateKey(msg tea.KeyMsg) tea.Cmd {
	if !m.focused {
		return nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.insertText(string(msg.Runes))
		return nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		m.moveCaret(document.StepBackward, moveGrapheme, false)
	case key.Matches(msg, km.Right):
		m.moveCaret(document.StepForward, moveGrapheme, false)
	case key.Matches(msg, km.Up):
		m.moveCaret(document.StepBackward, moveInput, false)
	case key.Matches(msg, km.Down):
		m.moveCaret(document.StepForward, moveInput, false)

	case key.Matches(msg, km.ShiftLeft):
		m.moveCaret(document.StepBackward, moveGrapheme, true)
	case key.Matches(msg, km.ShiftRight):
		m.moveCaret(document.StepForward, moveGrapheme, true)
	case key.Matches(msg, km.ShiftUp):
		m.moveCaret(document.StepBackward, moveInput, true)
	case key.Matches(msg, km.ShiftDown):
		m.moveCaret(document.StepForward, moveInput, true)

	case key.Matches(msg, km.WordLeft):
		m.moveCaret(document.StepBackward, moveWord, false)
	case key.Matches(msg, km.WordRight):
		m.moveCaret(document.StepForward, moveWord, false)

	case key.Matches(msg, km.Home):
		m.moveCaret(document.StepBackward, moveEdge, false)
	case key.Matches(msg, km.End):
		m.moveCaret(document.StepForward, moveEdge, false)

	case key.Matches(msg, km.Backspace):
		return m.deleteKey(redactor.KeyBackspace)
	case key.Matches(msg, km.Delete):
		return m.deleteKey(redactor.KeyDelete)
	case key.Matches(msg, km.Enter):
		m.splitBlock()

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		m.copySelection()
		if sel, ok := m.caret.Selection(); ok && !sel.Collapsed() {
			m.deleteRange(m.doc.Normalize(sel))
		}
	case key.Matches(msg, km.Paste):
		if s, ok := m.readClipboard(); ok {
			m.insertText(s)
		}

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			m.insertText(string(msg.Runes))
		}
		if msg.Type == tea.KeySpace {
			m.insertText(" ")
		}
	}
	return nil
}

// focusAnchor returns the selection and its focus resolved to a leaf.
func (m *Model) focusAnchor() (document.Range, document.Anchor, bool) {
	sel, ok := m.caret.Selection()
	if !ok {
		return document.Range{}, document.NoAnchor, false
	}
	focus, ok := caret.ResolveCaret(m.doc, sel.End)
	if !ok {
		return sel, sel.End, true
	}
	return sel, focus, true
}

func (m *Model) moveCaret(dir document.Step, unit moveUnit, extend bool) {
	sel, from, ok := m.focusAnchor()
	if !ok {
		if b, ok := m.doc.BlockAt(0); ok {
			_ = m.caret.SetCaret(b.ID, caret.PositionStart)
		}
		return
	}
	if !extend && !sel.Collapsed() && unit == moveGrapheme {
		r := m.doc.Normalize(sel)
		if dir == document.StepBackward {
			m.caret.Collapse(r.Start)
		} else {
			m.caret.Collapse(r.End)
		}
		return
	}

	var to document.Anchor
	switch unit {
	case moveWord:
		to = m.wordBoundary(from, dir)
	case moveEdge:
		to = m.doc.MoveToEdge(from, dir)
	case moveInput:
		to = m.doc.MoveInput(from, dir)
	default:
		to = m.doc.Move(from, dir)
	}

	if extend {
		m.caret.SetSelection(document.Range{Start: sel.Start, End: to})
		return
	}
	m.caret.Collapse(to)
}

// wordBoundary skips whitespace and then one run of non-whitespace within
// the caret's input. At an input edge it steps into the adjacent input.
func (m *Model) wordBoundary(a document.Anchor, dir document.Step) document.Anchor {
	input, ok := m.doc.ClosestInput(a.Node)
	if !ok {
		return a
	}
	k, ok := m.doc.OffsetOf(input, a)
	if !ok {
		return a
	}
	clusters := graphemeutil.Split(m.doc.TextContent(input))
	n := len(clusters)

	if dir == document.StepBackward {
		if k == 0 {
			return m.doc.Move(a, dir)
		}
		for k > 0 && graphemeutil.IsSpace(clusters[k-1]) {
			k--
		}
		for k > 0 && !graphemeutil.IsSpace(clusters[k-1]) {
			k--
		}
		return m.doc.AnchorAt(input, k)
	}

	if k >= n {
		return m.doc.Move(a, dir)
	}
	for k < n && graphemeutil.IsSpace(clusters[k]) {
		k++
	}
	for k < n && !graphemeutil.IsSpace(clusters[k]) {
		k++
	}
	return m.doc.AnchorAt(input, k)
}

// deleteKey offers the key to the redactor first and applies the default
// deletion only when the handler left it to the host.
func (m *Model) deleteKey(k redactor.Key) tea.Cmd {
	sel, ok := m.caret.Selection()
	if !ok {
		return nil
	}
	ev := redactor.NewKeyEvent(k)
	handle := m.handler.HandleKeydown(ev, sel)
	if !ev.DefaultPrevented() {
		m.defaultDelete(k)
	}
	return awaitMerge(handle)
}

func awaitMerge(h *redactor.MergeHandle) tea.Cmd {
	if h == nil || h.Done() == nil {
		return nil
	}
	done := h.Done()
	return func() tea.Msg {
		err, ok := <-done
		if !ok {
			err = errMergeChannelClosed
		}
		return mergeResolvedMsg{handle: h, err: err}
	}
}

// defaultDelete removes the selection, or one grapheme next to the caret
// within its input.
func (m *Model) defaultDelete(k redactor.Key) {
	sel, focus, ok := m.focusAnchor()
	if !ok {
		return
	}
	if !sel.Collapsed() {
		m.deleteRange(m.doc.Normalize(sel))
		return
	}
	input, ok := m.doc.ClosestInput(focus.Node)
	if !ok || m.readOnly(input) {
		return
	}
	off, ok := m.doc.OffsetOf(input, focus)
	if !ok {
		return
	}

	lo, hi := off, off+1
	if k == redactor.KeyBackspace {
		lo, hi = off-1, off
	}
	if lo < 0 || hi > m.doc.InputLength(input) {
		return
	}
	r := document.Range{Start: m.doc.AnchorAt(input, lo), End: m.doc.AnchorAt(input, hi)}
	if _, err := m.doc.ExtractContents(r); err != nil {
		log.ErrorErr(log.CatEditor, "default delete", err, "key", k)
		return
	}
	m.caret.Collapse(m.doc.AnchorAt(input, lo))
}

// deleteRange extracts r and collapses the caret where it started.
func (m *Model) deleteRange(r document.Range) {
	start, ok := caret.ResolveCaret(m.doc, r.Start)
	if !ok {
		return
	}
	input, inInput := m.doc.ClosestInput(start.Node)
	off := 0
	if inInput {
		if m.readOnly(input) {
			return
		}
		off, _ = m.doc.OffsetOf(input, start)
	}

	if _, err := m.doc.ExtractContents(r); err != nil {
		log.ErrorErr(log.CatEditor, "delete selection", err)
		return
	}
	switch {
	case inInput && m.doc.Attached(input):
		m.caret.Collapse(m.doc.AnchorAt(input, off))
	case m.doc.ValidAnchor(r.Start):
		m.caret.Collapse(r.Start)
	default:
		if b, ok := m.doc.BlockAt(0); ok {
			_ = m.caret.SetCaret(b.ID, caret.PositionStart)
		}
	}
}

func (m *Model) insertText(s string) {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	if s == "" {
		return
	}
	if sel, ok := m.caret.Selection(); ok && !sel.Collapsed() {
		m.deleteRange(m.doc.Normalize(sel))
	}
	_, focus, ok := m.focusAnchor()
	if !ok {
		return
	}
	if _, inInput := m.doc.ClosestInput(focus.Node); !inInput {
		return
	}
	at, err := m.doc.InsertText(focus, s)
	if err != nil {
		log.Warn(log.CatEditor, "insert text rejected", "err", err)
		return
	}
	m.caret.Collapse(at)
}

// splitBlock moves the text after the caret into a new block inserted below
// the caret's block.
func (m *Model) splitBlock() {
	if sel, ok := m.caret.Selection(); ok && !sel.Collapsed() {
		m.deleteRange(m.doc.Normalize(sel))
	}
	_, focus, ok := m.focusAnchor()
	if !ok {
		return
	}
	b, ok := m.doc.ClosestBlock(focus.Node)
	if !ok || b.ReadOnly {
		return
	}

	nb, err := m.repo.InsertAfter(b.ID, m.cfg.NewBlockTool, document.TextCapabilities())
	if err != nil {
		log.ErrorErr(log.CatEditor, "split block", err, "block", b.ID)
		return
	}

	if input, ok := m.doc.ClosestInput(focus.Node); ok && !m.doc.IsNative(input) {
		tail, err := m.doc.ExtractContents(document.Range{Start: focus, End: m.doc.EndOf(input)})
		if err != nil {
			log.ErrorErr(log.CatEditor, "split block", err, "block", b.ID)
		} else if tail != "" {
			if inputs := m.doc.Inputs(nb.Node); len(inputs) > 0 {
				if _, err := m.doc.InsertText(m.doc.StartOf(inputs[0]), tail); err != nil {
					log.ErrorErr(log.CatEditor, "split block", err, "block", nb.ID)
				}
			}
		}
	}
	_ = m.caret.SetCaret(nb.ID, caret.PositionStart)
}

func (m *Model) readOnly(node document.NodeID) bool {
	b, ok := m.doc.ClosestBlock(node)
	return ok && b.ReadOnly
}
