package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"pentu/internal/results"
	"pentu/internal/tools"
)

func TestLogo_FitsWidth(t *testing.T) {
	for _, w := range []int{0, 20, 80, 120} {
		out := Logo(w)
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		if len(lines) != logoHeight {
			t.Fatalf("width %d: expected %d lines, got %d", w, logoHeight, len(lines))
		}
		limit := w
		if limit <= 0 {
			limit = 80
		}
		for _, ln := range lines {
			if got := xansi.StringWidth(ln); got > limit {
				t.Fatalf("width %d: line too wide (%d)", w, got)
			}
		}
	}
}

func TestStatusLines(t *testing.T) {
	t.Setenv("NERDFONT", "0")
	var b bytes.Buffer
	Success(&b, "saved %s", "x.txt")
	Fail(&b, "nmap not installed")
	Running(&b, "echo hi")
	out := xansi.Strip(b.String())
	for _, want := range []string{"[+] saved x.txt", "[x] nmap not installed", ">> Executing: echo hi"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestToolTable(t *testing.T) {
	t.Setenv("NERDFONT", "0")
	out := xansi.Strip(ToolTable([]tools.ToolEntry{
		{Name: "aircrack-ng", Installed: false},
		{Name: "nmap", Installed: true, Path: "/usr/bin/nmap"},
	}))
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[0], "[x] aircrack-ng  not found") {
		t.Fatalf("unexpected first row %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[+] nmap         /usr/bin/nmap") {
		t.Fatalf("unexpected second row %q", lines[1])
	}
	if !strings.Contains(out, "1/2 tools installed") {
		t.Fatalf("missing summary in %q", out)
	}
}

func TestReportMarkdown(t *testing.T) {
	content := "PENTU CLI - NMAP Results\nTarget: 10.0.0.1\nTimestamp: 2024-01-01 12:00:00.000000\n" +
		strings.Repeat("=", 60) + "\n\nPORT   STATE\n22/tcp open ```"
	md := ReportMarkdown(content)
	if !strings.HasPrefix(md, "# NMAP Results\n") {
		t.Fatalf("missing heading: %q", md)
	}
	if !strings.Contains(md, "- **Target**: `10.0.0.1`") {
		t.Fatalf("missing target field: %q", md)
	}
	if !strings.Contains(md, "````text\nPORT   STATE\n22/tcp open ```\n````") {
		t.Fatalf("body not fenced safely: %q", md)
	}

	plain := ReportMarkdown("just text")
	if plain != "```text\njust text\n```\n" {
		t.Fatalf("unexpected plain rendering %q", plain)
	}
}

func TestRenderReport_KeepsOutput(t *testing.T) {
	out := xansi.Strip(RenderReport("PENTU CLI - NIKTO Results\nTarget: x\nTimestamp: t\n"+strings.Repeat("=", 60)+"\n\n+ Server: Apache", 80))
	if !strings.Contains(out, "+ Server: Apache") || !strings.Contains(out, "NIKTO Results") {
		t.Fatalf("rendered report lost content: %q", out)
	}
}

func TestFrame(t *testing.T) {
	out := xansi.Strip(Frame("body\n", 10))
	if out != "==========\nbody\n==========\n" {
		t.Fatalf("unexpected frame %q", out)
	}
}

type fakeSource struct {
	items   []results.ReportFile
	content map[string]string
}

func (f *fakeSource) List() ([]results.ReportFile, error) { return f.items, nil }
func (f *fakeSource) Read(rf results.ReportFile) (string, error) {
	c, ok := f.content[rf.Name]
	if !ok {
		return "", results.ErrNotFound
	}
	return c, nil
}
func (f *fakeSource) Watch(ctx context.Context, _ func(results.ReportFile)) error {
	<-ctx.Done()
	return nil
}

func drive(t *testing.T, m tea.Model, msg tea.Msg) (browseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(browseModel)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return bm, cmd
}

func TestBrowseModel_LoadFilterRender(t *testing.T) {
	zone.NewGlobal()
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	src := &fakeSource{
		items: []results.ReportFile{
			{Name: "nmap_a_20240101_120000.txt", Tool: "nmap", Target: "a", Timestamp: ts},
			{Name: "nikto_b_20240101_130000.txt", Tool: "nikto", Target: "b", Timestamp: ts.Add(time.Hour)},
		},
		content: map[string]string{
			"nmap_a_20240101_120000.txt":  "nmap body",
			"nikto_b_20240101_130000.txt": "nikto body",
		},
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := newBrowseModel(ctx, src)
	m, _ = drive(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	msg := loadReportsCmd(src)()
	loaded, ok := msg.(reportsLoadedMsg)
	if !ok || loaded.items[0].Tool != "nikto" {
		t.Fatalf("expected newest first, got %+v", msg)
	}
	m, cmd := drive(t, m, loaded)
	if len(m.shown) != 2 || cmd == nil {
		t.Fatalf("expected rows and a render command, shown=%d", len(m.shown))
	}
	m, _ = drive(t, m, cmd())
	if m.current != "nikto_b_20240101_130000.txt" {
		t.Fatalf("preview not updated: %q", m.current)
	}
	if !strings.Contains(xansi.Strip(m.vp.View()), "nikto body") {
		t.Fatalf("preview content missing: %q", m.vp.View())
	}

	// filter down to nmap
	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if m.focus != focusFilter {
		t.Fatalf("expected filter focus")
	}
	for _, r := range "nmap" {
		m, cmd = drive(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if len(m.shown) != 1 || m.shown[0].Tool != "nmap" {
		t.Fatalf("filter not applied: %+v", m.shown)
	}
	m, _ = drive(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if len(m.shown) != 2 || m.focus != focusList {
		t.Fatalf("esc should clear the filter: %d %v", len(m.shown), m.focus)
	}

	if v := m.View(); !strings.Contains(xansi.Strip(v), "2 reports") {
		t.Fatalf("status bar missing count: %q", v)
	}
}

func TestBrowseModel_LiveReport(t *testing.T) {
	zone.NewGlobal()
	src := &fakeSource{content: map[string]string{}}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := newBrowseModel(ctx, src)
	m, _ = drive(t, m, tea.WindowSizeMsg{Width: 100, Height: 24})
	m, _ = drive(t, m, reportsLoadedMsg{})
	m, _ = drive(t, m, reportChangedMsg{rf: results.ReportFile{Name: "hydra_x_20240101_120000.txt", Tool: "hydra"}})
	if len(m.all) != 1 || !strings.Contains(m.status, "hydra_x") {
		t.Fatalf("live report not added: %+v %q", m.all, m.status)
	}
	// same report again replaces instead of duplicating
	m, _ = drive(t, m, reportChangedMsg{rf: results.ReportFile{Name: "hydra_x_20240101_120000.txt", Tool: "hydra", Size: 9}})
	if len(m.all) != 1 || m.all[0].Size != 9 {
		t.Fatalf("expected update in place: %+v", m.all)
	}
}

func TestBrowseModel_LoadError(t *testing.T) {
	m := newBrowseModel(context.Background(), &fakeSource{})
	m, _ = drive(t, m, reportsLoadedMsg{err: errors.New("boom")})
	if m.status != "error: boom" {
		t.Fatalf("unexpected status %q", m.status)
	}
}
