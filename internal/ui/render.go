package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Frame draws content between two cyan rules of width columns, the way
// saved reports are shown on the console.
func Frame(content string, width int) string {
	if width <= 0 {
		width = 60
	}
	rule := Fg(Vitesse.Cyan).Render(strings.Repeat("=", width))
	return rule + "\n" + strings.TrimRight(content, "\n") + "\n" + rule + "\n"
}

// renderStatusBar draws a single-line status bar at the given width
// with left/right-aligned content.
func renderStatusBar(width int, left, right string) string {
	if width <= 0 {
		width = 100
	}
	lw := xansi.StringWidth(left)
	rw := xansi.StringWidth(right)
	if lw+rw+1 > width {
		maxL := width - rw - 1
		if maxL < 0 {
			maxL = 0
		}
		left = xansi.Truncate(left, maxL, "…")
		lw = xansi.StringWidth(left)
	}
	pad := width - lw - rw
	if pad < 0 {
		pad = 0
	}
	return StatusBarBase().Render(left + strings.Repeat(" ", pad) + right)
}

// ReportMarkdown turns a saved report into markdown: the header becomes a
// heading with a field list and the tool output is kept verbatim in a
// fenced block. Content without the standard header is fenced whole.
func ReportMarkdown(content string) string {
	lines := strings.Split(content, "\n")
	var b strings.Builder
	body := content
	if len(lines) >= 4 && strings.HasPrefix(lines[0], "PENTU CLI - ") && strings.HasPrefix(lines[3], "====") {
		b.WriteString("# " + strings.TrimPrefix(lines[0], "PENTU CLI - ") + "\n\n")
		for _, l := range lines[1:3] {
			if k, v, ok := strings.Cut(l, ": "); ok {
				b.WriteString("- **" + k + "**: `" + v + "`\n")
			}
		}
		b.WriteString("\n")
		body = strings.TrimPrefix(strings.Join(lines[4:], "\n"), "\n")
	}
	fence := "```"
	for strings.Contains(body, fence) {
		fence += "`"
	}
	b.WriteString(fence + "text\n" + strings.TrimRight(body, "\n") + "\n" + fence + "\n")
	return b.String()
}

// RenderReport renders a saved report for a terminal of the given width.
// On renderer failure the raw content is returned.
func RenderReport(content string, width int) string {
	// glamour gutter
	wrap := width - 2
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(vitesseGlamour()),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(ReportMarkdown(content))
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}

// vitesseGlamour maps the Vitesse palette onto a glamour style.
func vitesseGlamour() gansi.StyleConfig {
	hex := func(c lipgloss.Color) string {
		s := string(c)
		if strings.HasPrefix(s, "#") && len(s) == 9 { // #RRGGBBAA
			return s[:7]
		}
		return s
	}
	sp := func(s string) *string { return &s }
	bp := func(b bool) *bool { return &b }

	text := hex(Vitesse.Text)
	secondary := hex(Vitesse.Secondary)
	blue := hex(Vitesse.Blue)
	yellow := hex(Vitesse.Yellow)
	red := hex(Vitesse.Red)
	bgSoft := hex(Vitesse.BgSoft)

	heading := gansi.StyleBlock{StylePrimitive: gansi.StylePrimitive{Color: sp(red), Bold: bp(true)}}
	return gansi.StyleConfig{
		Document: gansi.StyleBlock{
			StylePrimitive: gansi.StylePrimitive{Color: sp(text)},
			Margin:         uintPtr(1),
		},
		Paragraph: gansi.StyleBlock{StylePrimitive: gansi.StylePrimitive{Color: sp(text)}},
		Heading:   heading,
		H1:        heading,
		H2:        gansi.StyleBlock{StylePrimitive: gansi.StylePrimitive{Color: sp(blue), Bold: bp(true)}},
		List:      gansi.StyleList{LevelIndent: 2},
		Item:      gansi.StylePrimitive{BlockPrefix: "• "},
		Text:      gansi.StylePrimitive{Color: sp(text)},
		Strong:    gansi.StylePrimitive{Color: sp(secondary), Bold: bp(true)},
		Code: gansi.StyleBlock{
			StylePrimitive: gansi.StylePrimitive{Color: sp(yellow), BackgroundColor: sp(bgSoft)},
		},
		CodeBlock: gansi.StyleCodeBlock{
			StyleBlock: gansi.StyleBlock{
				StylePrimitive: gansi.StylePrimitive{Color: sp(text)},
			},
		},
		HorizontalRule: gansi.StylePrimitive{Color: sp(secondary)},
	}
}

func uintPtr(u uint) *uint { return &u }
