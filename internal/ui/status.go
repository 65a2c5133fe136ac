package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

func status(w io.Writer, icon string, c lipgloss.Color, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintln(w, lipgloss.NewStyle().Foreground(c).Render(icon+" "+msg))
}

// Info prints a neutral progress line.
func Info(w io.Writer, format string, a ...any) { status(w, IconInfo(), Vitesse.Cyan, format, a...) }

// Success prints a completed-action line.
func Success(w io.Writer, format string, a ...any) { status(w, IconOK(), Vitesse.Primary, format, a...) }

func Warn(w io.Writer, format string, a ...any) { status(w, IconWarn(), Vitesse.Yellow, format, a...) }

func Fail(w io.Writer, format string, a ...any) { status(w, IconFail(), Vitesse.Red, format, a...) }

// Running announces the command line about to be executed.
func Running(w io.Writer, command string) {
	status(w, IconRun(), Vitesse.Yellow, "Executing: %s", command)
}
