package ui

import (
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"pentu/internal/tools"
)

// ToolTable renders one aligned row per tool: status icon, name, and the
// resolved path or "not found".
func ToolTable(entries []tools.ToolEntry) string {
	nameW := 4
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Name); w > nameW {
			nameW = w
		}
	}
	ok := Fg(Vitesse.Primary)
	bad := Fg(Vitesse.Red)
	dim := Fg(Vitesse.Muted)

	var b strings.Builder
	found := 0
	for _, e := range entries {
		name := runewidth.FillRight(e.Name, nameW)
		if e.Installed {
			found++
			fmt.Fprintf(&b, "%s %s  %s\n", ok.Render(IconOK()), name, dim.Render(e.Path))
		} else {
			fmt.Fprintf(&b, "%s %s  %s\n", bad.Render(IconFail()), name, bad.Render("not found"))
		}
	}
	fmt.Fprintf(&b, "\n%d/%d tools installed\n", found, len(entries))
	return b.String()
}
