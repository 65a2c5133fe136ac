package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"pentu/internal/results"
)

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		if rf, ok := m.selected(); ok {
			return m, renderReportCmd(m.src, rf, m.vp.Width)
		}
		return m, nil

	case reportsLoadedMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.all = msg.items
		m.status = ""
		return m, m.applyFilter()

	case reportChangedMsg:
		m.upsert(msg.rf)
		m.status = "new: " + msg.rf.Name
		cmd := m.applyFilter()
		if msg.rf.Name == m.current {
			cmd = tea.Batch(cmd, renderReportCmd(m.src, msg.rf, m.vp.Width))
		}
		return m, tea.Batch(cmd, waitReportCmd(m.ctx, m.watchCh))

	case watchFailedMsg:
		m.status = "live updates off: " + msg.err.Error()
		return m, nil

	case reportRenderedMsg:
		// drop stale renders
		rf, ok := m.selected()
		if !ok || rf.Name != msg.name {
			return m, nil
		}
		m.current = msg.name
		if msg.err != nil {
			m.vp.SetContent("error: " + msg.err.Error())
		} else {
			m.vp.SetContent(msg.out)
		}
		m.vp.GotoTop()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == focusFilter {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.filter.SetValue("")
			m.setFocus(focusList)
			return m, m.applyFilter()
		case "enter", "tab":
			m.setFocus(focusList)
			return m, nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, tea.Batch(cmd, m.applyFilter())
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Filter):
		m.setFocus(focusFilter)
		return m, nil
	case key.Matches(msg, m.keys.Switch):
		if m.focus == focusList {
			m.setFocus(focusPreview)
		} else {
			m.setFocus(focusList)
		}
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.status = "reloading"
		return m, loadReportsCmd(m.src)
	}

	var cmd tea.Cmd
	if m.focus == focusPreview {
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	before := m.table.Cursor()
	m.table, cmd = m.table.Update(msg)
	if m.table.Cursor() != before {
		return m, tea.Batch(cmd, m.renderSelected())
	}
	return m, cmd
}

func (m browseModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
		switch {
		case zone.Get("browse.filter").InBounds(msg):
			m.setFocus(focusFilter)
		case zone.Get("browse.list").InBounds(msg):
			m.setFocus(focusList)
		case zone.Get("browse.preview").InBounds(msg):
			m.setFocus(focusPreview)
		}
		return m, nil
	}
	if msg.Action == tea.MouseActionPress && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown) {
		if zone.Get("browse.preview").InBounds(msg) {
			var cmd tea.Cmd
			m.vp, cmd = m.vp.Update(msg)
			return m, cmd
		}
		if zone.Get("browse.list").InBounds(msg) {
			if msg.Button == tea.MouseButtonWheelUp {
				m.table.MoveUp(1)
			} else {
				m.table.MoveDown(1)
			}
			return m, m.renderSelected()
		}
	}
	return m, nil
}

func (m *browseModel) setFocus(f focusArea) {
	m.focus = f
	if f == focusFilter {
		m.filter.Focus()
		m.table.Blur()
		return
	}
	m.filter.Blur()
	if f == focusList {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
}

// applyFilter recomputes the visible rows and keeps the cursor on the
// current report when it is still visible.
func (m *browseModel) applyFilter() tea.Cmd {
	m.shown = results.Filter(m.all, strings.TrimSpace(m.filter.Value()))
	rows := make([]table.Row, 0, len(m.shown))
	cursor := 0
	for i, rf := range m.shown {
		rows = append(rows, table.Row{rf.Tool, rf.Target, rf.Timestamp.Format("01-02 15:04:05")})
		if rf.Name == m.current {
			cursor = i
		}
	}
	m.table.SetRows(rows)
	if len(rows) > 0 {
		m.table.SetCursor(cursor)
	}
	if len(m.shown) == 0 {
		m.current = ""
		m.vp.SetContent("")
		return nil
	}
	if rf, _ := m.selected(); rf.Name != m.current {
		return m.renderSelected()
	}
	return nil
}

func (m *browseModel) upsert(rf results.ReportFile) {
	for i := range m.all {
		if m.all[i].Name == rf.Name {
			m.all[i] = rf
			return
		}
	}
	m.all = append([]results.ReportFile{rf}, m.all...)
}

func (m browseModel) selected() (results.ReportFile, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.shown) {
		return results.ReportFile{}, false
	}
	return m.shown[i], true
}

func (m browseModel) renderSelected() tea.Cmd {
	rf, ok := m.selected()
	if !ok || m.vp.Width <= 0 {
		return nil
	}
	return renderReportCmd(m.src, rf, m.vp.Width)
}

func (m browseModel) countLabel() string {
	if len(m.shown) == len(m.all) {
		return fmt.Sprintf("%d reports", len(m.all))
	}
	return fmt.Sprintf("%d/%d reports", len(m.shown), len(m.all))
}
