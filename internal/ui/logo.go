package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const logoHeight = 6

// logoBlocks returns one 6-row glyph per letter of PENTU.
func logoBlocks() [][]string {
	P := []string{
		" ######  ",
		" ### ### ",
		" ### ### ",
		" ######  ",
		" ###     ",
		" ###     ",
	}
	E := []string{
		" ####### ",
		" ###     ",
		" #####   ",
		" ###     ",
		" ###     ",
		" ####### ",
	}
	N := []string{
		" ##   ## ",
		" ###  ## ",
		" #### ## ",
		" ## #### ",
		" ##  ### ",
		" ##   ## ",
	}
	T := []string{
		" ####### ",
		"   ###   ",
		"   ###   ",
		"   ###   ",
		"   ###   ",
		"   ###   ",
	}
	U := []string{
		" ##   ## ",
		" ##   ## ",
		" ##   ## ",
		" ##   ## ",
		" ####### ",
		"  #####  ",
	}
	return [][]string{P, E, N, T, U}
}

// composeLogoLines joins blocks horizontally, drawing '#' as a full block.
func composeLogoLines(blocks [][]string) []string {
	out := make([]string, logoHeight)
	for row := 0; row < logoHeight; row++ {
		parts := make([]string, 0, len(blocks))
		for _, blk := range blocks {
			parts = append(parts, strings.ReplaceAll(blk[row], "#", "█"))
		}
		out[row] = strings.Join(parts, " ")
	}
	return out
}

// Logo renders the block logo centered in width columns (80 when unknown).
// Lines wider than the terminal are truncated.
func Logo(width int) string {
	if width <= 0 {
		width = 80
	}
	lines := composeLogoLines(logoBlocks())
	// red to yellow, top to bottom
	ramp := []lipgloss.Color{Vitesse.Red, Vitesse.Red, Vitesse.Magenta, Vitesse.Magenta, Vitesse.Yellow, Vitesse.Yellow}
	var b strings.Builder
	for i, ln := range lines {
		w := xansi.StringWidth(ln)
		if w > width {
			ln = xansi.Truncate(ln, width, "")
			w = width
		}
		b.WriteString(strings.Repeat(" ", (width-w)/2))
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(ramp[i]).Render(ln))
		b.WriteString("\n")
	}
	return b.String()
}

// Banner is the logo followed by the tagline.
func Banner(width int) string {
	if width <= 0 {
		width = 80
	}
	tag := lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Yellow).Render("PENETRATION TESTING CLI ARSENAL")
	sub := Fg(Vitesse.Cyan).Render("Lightweight · Fast · Terminal-Based · Resource-Efficient")
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return "\n" + Logo(width) + "\n" + center.Render(tag) + "\n" + center.Render(sub) + "\n"
}
