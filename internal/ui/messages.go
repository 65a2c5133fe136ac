package ui

import "pentu/internal/results"

// Bubble Tea messages of the results browser

type reportsLoadedMsg struct {
	items []results.ReportFile
	err   error
}

type reportRenderedMsg struct {
	name  string
	width int
	out   string
	err   error
}

// a report was created or rewritten while the browser is open
type reportChangedMsg struct{ rf results.ReportFile }

type watchFailedMsg struct{ err error }
