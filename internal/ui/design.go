package ui

import "github.com/charmbracelet/lipgloss"

// Palette is based on Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
type designTheme struct {
	Primary lipgloss.Color
	Blue    lipgloss.Color
	Yellow  lipgloss.Color
	Magenta lipgloss.Color
	Cyan    lipgloss.Color
	Red     lipgloss.Color

	Text      lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color

	Bg     lipgloss.Color
	BgSoft lipgloss.Color
	Border lipgloss.Color

	OnAccent lipgloss.Color

	BarFG lipgloss.AdaptiveColor
	BarBG lipgloss.AdaptiveColor
}

var Vitesse = designTheme{
	Primary: lipgloss.Color("#4d9375"),
	Blue:    lipgloss.Color("#6394bf"),
	Yellow:  lipgloss.Color("#e6cc77"),
	Magenta: lipgloss.Color("#d9739f"),
	Cyan:    lipgloss.Color("#5eaab5"),
	Red:     lipgloss.Color("#cb7676"),

	Text:      lipgloss.Color("#dbd7caee"),
	Secondary: lipgloss.Color("#bfbaaa"),
	Muted:     lipgloss.Color("#dedcd590"),

	Bg:     lipgloss.Color("#181818"),
	BgSoft: lipgloss.Color("#292929"),
	Border: lipgloss.Color("#3a3a3a"),

	OnAccent: lipgloss.Color("#222"),

	BarFG: lipgloss.AdaptiveColor{Light: "#343433", Dark: "#bfbaaa"},
	BarBG: lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#222"},
}

// AccentBold returns a bold style using the primary accent color.
func AccentBold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary)
}

// Fg returns a plain foreground style.
func Fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// SectionTitle styles menu group headings.
func SectionTitle(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

// ChipStyle returns a style for colored nuggets in the status bar.
func ChipStyle(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.OnAccent).Background(bg).Padding(0, 1)
}

// StatusBarBase returns the base style for the status bar background/foreground.
func StatusBarBase() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.BarFG).Background(Vitesse.BarBG)
}

// PaneBorder frames a browser pane; focused panes use the accent color.
func PaneBorder(focused bool) lipgloss.Style {
	c := Vitesse.Border
	if focused {
		c = Vitesse.Primary
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c)
}
