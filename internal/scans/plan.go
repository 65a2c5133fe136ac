// Package scans turns a scan request into the shell command lines that run
// the underlying tool.
package scans

import (
	"errors"
	"time"

	"pentu/internal/tools"
)

type Mode string

const (
	ModeNmap     Mode = "nmap"
	ModeWeb      Mode = "web"
	ModeSQLi     Mode = "sqli"
	ModeBrute    Mode = "brute"
	ModeWireless Mode = "wireless"
	ModeOSINT    Mode = "osint"
	ModeVuln     Mode = "vuln"
	ModeCustom   Mode = "custom"
)

var (
	ErrInvalidTarget   = errors.New("invalid target")
	ErrWordlistMissing = errors.New("wordlist not found")
	ErrUnknownTool     = errors.New("unknown tool")
)

// Step is one command of a plan.
type Step struct {
	Label   string        `json:"label"`
	Command string        `json:"command"`
	Timeout time.Duration `json:"timeout"`
	// Save stores stdout of a successful run under SaveTool/SaveTarget.
	Save       bool   `json:"save"`
	SaveTool   string `json:"saveTool,omitempty"`
	SaveTarget string `json:"saveTarget,omitempty"`
}

// Plan is the ordered command list for one scan. Steps run sequentially and
// a failing step does not stop the ones after it.
type Plan struct {
	Mode   Mode         `json:"mode"`
	Tool   tools.ToolID `json:"tool"`
	Target string       `json:"target"`
	Steps  []Step       `json:"steps"`
}
