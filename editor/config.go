package editor

import (
	"time"

	"github.com/iw2rmb/blockedit/document"
	"github.com/iw2rmb/blockedit/redactor"
)

// DefaultSelectionDebounce is the delay between the last selection change and
// the guard pass that may clamp it.
const DefaultSelectionDebounce = 30 * time.Millisecond

// ScrollPolicy controls how viewport scrolling is allowed to move relative to
// the caret.
type ScrollPolicy int

const (
	// ScrollAllowManual allows mouse wheel scrolling even when the caret does
	// not move.
	ScrollAllowManual ScrollPolicy = iota
	// ScrollFollowCursorOnly keeps vertical viewport movement caret-driven.
	ScrollFollowCursorOnly
)

// Config configures the editor Model.
type Config struct {
	// Document to edit. A nil document starts with one empty paragraph.
	Document *document.Document

	// Rendering options.
	ShowBlockNums bool
	Style         Style
	ScrollPolicy  ScrollPolicy

	KeyMap    KeyMap
	Clipboard Clipboard

	// NewBlockTool names the block created on Enter.
	NewBlockTool string

	// SelectionDebounce delays the guard pass after selection changes.
	// Zero uses DefaultSelectionDebounce; negative runs the guard inline.
	SelectionDebounce time.Duration

	// OnChange is called after every edit that bumps the document version.
	OnChange func(ChangeEvent)

	Redactor redactor.Config
}

// DefaultConfig returns a config with the default key map, style and
// redactor settings.
func DefaultConfig() Config {
	return Config{
		Style:             DefaultStyle(),
		KeyMap:            DefaultKeyMap(),
		NewBlockTool:      "paragraph",
		SelectionDebounce: DefaultSelectionDebounce,
		Redactor:          redactor.DefaultConfig(),
	}
}

func (c Config) withDefaults() Config {
	if c.KeyMap.isZero() {
		c.KeyMap = DefaultKeyMap()
	}
	if c.NewBlockTool == "" {
		c.NewBlockTool = "paragraph"
	}
	if c.SelectionDebounce == 0 {
		c.SelectionDebounce = DefaultSelectionDebounce
	}
	return c
}
