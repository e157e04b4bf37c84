package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/blockedit/internal/log"
)

// scheduleSelectionCheck supersedes any pending guard pass. A negative
// debounce runs the pass immediately.
func (m *Model) scheduleSelectionCheck() tea.Cmd {
	m.selSeq++
	if m.cfg.SelectionDebounce < 0 {
		m.checkSelection()
		return nil
	}
	seq := m.selSeq
	return tea.Tick(m.cfg.SelectionDebounce, func(time.Time) tea.Msg {
		return selectionSettledMsg{seq: seq}
	})
}

// checkSelection lets the guard clamp the live selection away from
// unselectable blocks.
func (m *Model) checkSelection() {
	sel, ok := m.caret.Selection()
	if !ok {
		return
	}
	adjusted, changed := m.handler.HandleSelectionMaybeChanged(sel)
	if !changed {
		return
	}
	log.Debug(log.CatEditor, "selection clamped", "start", adjusted.Start, "end", adjusted.End)
	m.lastSel, m.lastSelOK = m.caret.Selection()
	m.rebuildContent()
	m.followCursor()
}
