package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/blockedit/editor"
)

// status is shared with the editor's OnChange callback, which runs inside
// editor.Update.
type status struct {
	version  uint64
	inserted string
	deleted  string
	blocks   int
}

func (s *status) record(ev editor.ChangeEvent) {
	s.version = ev.Version
	s.inserted = ev.Inserted()
	s.deleted = ev.Deleted()
}

func (s *status) String() string {
	return fmt.Sprintf(" v%d  blocks:%d  +%q -%q  ctrl+q quit", s.version, s.blocks, s.inserted, s.deleted)
}

type app struct {
	editor editor.Model
	status *status
	bar    lipgloss.Style
}

func newApp(cfg editor.Config) app {
	st := &status{}
	onChange := cfg.OnChange
	cfg.OnChange = func(ev editor.ChangeEvent) {
		st.record(ev)
		if onChange != nil {
			onChange(ev)
		}
	}
	a := app{
		editor: editor.New(cfg),
		status: st,
		bar:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Reverse(true),
	}
	st.blocks = a.editor.Document().BlockCount()
	return a
}

func (a app) Init() tea.Cmd { return a.editor.Init() }

func (a app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.editor = a.editor.SetSize(msg.Width, msg.Height-1)
		a.bar = a.bar.Width(msg.Width).MaxHeight(1)
		return a, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+q" {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	a.status.blocks = a.editor.Document().BlockCount()
	return a, cmd
}

func (a app) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, a.editor.View(), a.bar.Render(a.status.String()))
}
