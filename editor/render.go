package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/blockedit/document"
)

func (m *Model) renderContent() string {
	if m.doc == nil {
		return ""
	}

	rows := m.layoutRows()
	cp := m.caretPos()
	digits := gutterDigits(m.doc.BlockCount())
	contentWidth := m.viewport.Width - m.gutterWidth()
	if m.viewport.Width <= 0 {
		contentWidth = int(^uint(0) >> 1)
	}

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		var sb strings.Builder

		if m.cfg.ShowBlockNums {
			numStyle := m.cfg.Style.BlockNum
			if m.focused && cp.ok && cp.block == r.block.Node && r.first {
				numStyle = m.cfg.Style.BlockNumActive
			}
			num := fmt.Sprintf("%*s", digits, "")
			if r.first {
				num = fmt.Sprintf("%*d", digits, r.blockIndex+1)
			}
			sb.WriteString(numStyle.Render(num))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		if r.placeholder() {
			sb.WriteString(m.renderPlaceholder(r, cp, contentWidth))
		} else {
			sb.WriteString(m.renderInput(r, cp, contentWidth))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (m *Model) renderPlaceholder(r layoutRow, cp caretPos, width int) string {
	st := m.rowStyle(r, m.cfg.Style.Placeholder)
	switch {
	case m.focused && cp.ok && cp.input == document.NoNode && cp.block == r.block.Node:
		st = m.cfg.Style.Cursor.Inherit(st)
	case m.blockSelected(r.block):
		st = m.cfg.Style.Selection.Inherit(st)
	}
	label := "[" + r.block.Tool + "]"
	var sb strings.Builder
	used := 0
	for _, c := range layoutClusters(label, 0) {
		if used+c.Width > width {
			break
		}
		sb.WriteString(c.Text)
		used += c.Width
	}
	return st.Render(sb.String())
}

func (m *Model) renderInput(r layoutRow, cp caretPos, width int) string {
	base := m.cfg.Style.Text
	if m.doc.IsNative(r.input) {
		base = m.cfg.Style.Native
	}
	base = m.rowStyle(r, base)
	sel := m.cfg.Style.Selection.Inherit(base)
	cur := m.cfg.Style.Cursor.Inherit(base)

	caretCol := -1
	if m.focused && cp.ok && cp.input == r.input {
		caretCol = cp.col
	}
	lo, hi, selOK := m.selectionSpan(r.input)

	var sb strings.Builder
	used := 0
	cells := layoutClusters(m.doc.TextContent(r.input), 0)
	for i, c := range cells {
		if used+c.Width > width {
			break
		}
		text := c.Text
		if text == "\t" {
			text = strings.Repeat(" ", c.Width)
		}
		switch {
		case i == caretCol:
			sb.WriteString(cur.Render(text))
		case selOK && i >= lo && i < hi:
			sb.WriteString(sel.Render(text))
		default:
			sb.WriteString(base.Render(text))
		}
		used += c.Width
	}
	if caretCol == len(cells) && used < width {
		sb.WriteString(cur.Render(" "))
	}
	return sb.String()
}

func (m *Model) rowStyle(r layoutRow, st lipgloss.Style) lipgloss.Style {
	if !r.block.Selectable {
		return m.cfg.Style.Unselectable.Inherit(st)
	}
	return st
}
