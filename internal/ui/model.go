package ui

import (
	"context"
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"pentu/internal/results"
)

// ReportSource is the part of *results.Store the browser needs.
type ReportSource interface {
	List() ([]results.ReportFile, error)
	Read(rf results.ReportFile) (string, error)
	Watch(ctx context.Context, fn func(results.ReportFile)) error
}

// Browse opens the full-screen results browser and blocks until the user
// quits. New reports written while it is open show up live.
func Browse(ctx context.Context, src ReportSource) error {
	zone.NewGlobal()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	_, err := tea.NewProgram(newBrowseModel(ctx, src), tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run()
	return err
}

type focusArea int

const (
	focusList focusArea = iota
	focusPreview
	focusFilter
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Switch key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Switch, k.Reload, k.Quit}
}
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Switch: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type browseModel struct {
	ctx context.Context
	src ReportSource

	width  int
	height int
	leftW  int

	all   []results.ReportFile
	shown []results.ReportFile

	table  table.Model
	vp     viewport.Model
	filter textinput.Model
	focus  focusArea

	// name of the report currently in the preview
	current string
	status  string

	watchCh chan results.ReportFile
	keys    keyMap
	help    help.Model
}

func newBrowseModel(ctx context.Context, src ReportSource) browseModel {
	ti := textinput.New()
	ti.Prompt = IconSearch() + " "
	ti.Placeholder = "filter reports"
	ti.CharLimit = 256

	t := table.New(table.WithFocused(true))
	st := table.DefaultStyles()
	st.Header = st.Header.Foreground(Vitesse.Secondary).Bold(true)
	st.Selected = st.Selected.Foreground(Vitesse.OnAccent).Background(Vitesse.Primary).Bold(false)
	t.SetStyles(st)

	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true

	return browseModel{
		ctx:     ctx,
		src:     src,
		table:   t,
		vp:      vp,
		filter:  ti,
		focus:   focusList,
		watchCh: make(chan results.ReportFile, 16),
		keys:    defaultKeys(),
		help:    help.New(),
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(loadReportsCmd(m.src), startWatchCmd(m.ctx, m.src, m.watchCh), waitReportCmd(m.ctx, m.watchCh))
}

func loadReportsCmd(src ReportSource) tea.Cmd {
	return func() tea.Msg {
		items, err := src.List()
		if err != nil {
			return reportsLoadedMsg{err: err}
		}
		// newest first
		sort.SliceStable(items, func(i, j int) bool { return items[i].Timestamp.After(items[j].Timestamp) })
		return reportsLoadedMsg{items: items}
	}
}

func renderReportCmd(src ReportSource, rf results.ReportFile, width int) tea.Cmd {
	return func() tea.Msg {
		content, err := src.Read(rf)
		if err != nil {
			return reportRenderedMsg{name: rf.Name, width: width, err: err}
		}
		return reportRenderedMsg{name: rf.Name, width: width, out: RenderReport(content, width)}
	}
}

// startWatchCmd runs the store watcher for the lifetime of ctx.
func startWatchCmd(ctx context.Context, src ReportSource, ch chan<- results.ReportFile) tea.Cmd {
	return func() tea.Msg {
		err := src.Watch(ctx, func(rf results.ReportFile) {
			select {
			case ch <- rf:
			case <-ctx.Done():
			}
		})
		if err != nil {
			return watchFailedMsg{err: err}
		}
		return nil
	}
}

func waitReportCmd(ctx context.Context, ch <-chan results.ReportFile) tea.Cmd {
	return func() tea.Msg {
		select {
		case rf := <-ch:
			return reportChangedMsg{rf: rf}
		case <-ctx.Done():
			return nil
		}
	}
}
