package editor

import (
	"github.com/iw2rmb/blockedit/internal/log"
)

// Clipboard provides editor-level clipboard integration.
//
// Errors must not crash the UI; failures are logged and dropped.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	sel, ok := m.caret.Selection()
	if !ok || sel.Collapsed() {
		return
	}
	s := m.doc.TextInRange(m.doc.Normalize(sel))
	if s == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(s); err != nil {
		log.ErrorErr(log.CatEditor, "clipboard write", err)
	}
}

func (m Model) readClipboard() (string, bool) {
	if m.cfg.Clipboard == nil {
		return "", false
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		log.ErrorErr(log.CatEditor, "clipboard read", err)
		return "", false
	}
	return s, s != ""
}
