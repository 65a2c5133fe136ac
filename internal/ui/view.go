package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
)

const (
	listFixedW  = 56
	minPreviewW = 24
	// filter line + status bar + help line
	chromeH = 3
)

// layout sizes the panes from the window size. Each pane has a one-cell
// border on every side.
func (m *browseModel) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	lw := listFixedW
	if m.width-lw < minPreviewW+2 {
		lw = m.width / 2
	}
	if lw < 20 {
		lw = 20
	}
	m.leftW = lw
	rw := m.width - lw
	paneH := m.height - chromeH - 2
	if paneH < 3 {
		paneH = 3
	}

	inner := lw - 2
	timeW := 14
	toolW := 10
	targetW := inner - timeW - toolW - 6 // cell padding
	if targetW < 8 {
		targetW = 8
	}
	m.table.SetColumns([]table.Column{
		{Title: "Tool", Width: toolW},
		{Title: "Target", Width: targetW},
		{Title: "Time", Width: timeW},
	})
	m.table.SetWidth(inner)
	m.table.SetHeight(paneH)

	m.vp.Width = rw - 2
	m.vp.Height = paneH - 1 // title row
	m.filter.Width = m.width - 4
}

func (m browseModel) View() string {
	if m.width == 0 {
		return "loading…"
	}
	left := PaneBorder(m.focus == focusList).Render(m.table.View())
	left = zone.Mark("browse.list", left)

	title := " " + IconFile() + " "
	if m.current != "" {
		title += m.current
	} else if len(m.all) == 0 {
		title += "no results yet"
	}
	title = AccentBold().Render(truncate(title, m.vp.Width))
	right := PaneBorder(m.focus == focusPreview).Render(lipgloss.JoinVertical(lipgloss.Left, title, m.vp.View()))
	right = zone.Mark("browse.preview", right)

	filter := zone.Mark("browse.filter", m.filter.View())
	bar := renderStatusBar(m.width, " "+m.countLabel(), m.status+" ")
	out := lipgloss.JoinVertical(lipgloss.Left,
		filter,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		bar,
		m.help.View(m.keys),
	)
	return zone.Scan(out)
}

func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return xansi.Truncate(s, w, "…")
}
