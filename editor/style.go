package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Gutter         lipgloss.Style
	BlockNum       lipgloss.Style
	BlockNumActive lipgloss.Style

	Text      lipgloss.Style
	Native    lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	// Placeholder renders blocks without inputs, such as embeds.
	Placeholder lipgloss.Style
	// Unselectable is layered over the rows of non-selectable blocks.
	Unselectable lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:         gutter,
		BlockNum:       gutter,
		BlockNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:           lipgloss.NewStyle(),
		Native:         lipgloss.NewStyle().Underline(true),
		Selection:      lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:         lipgloss.NewStyle().Reverse(true),
		Placeholder:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		Unselectable:   lipgloss.NewStyle().Faint(true),
	}
}
