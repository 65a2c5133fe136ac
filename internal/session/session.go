// Package session runs scan plans: it checks the tool, runs each step,
// reports failures and saves the output of successful steps.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"pentu/internal/results"
	"pentu/internal/runner"
	"pentu/internal/scans"
	"pentu/internal/system"
	"pentu/internal/tools"
	"pentu/internal/ui"
)

var ErrToolMissing = errors.New("tool not installed")

// CommandRunner is satisfied by *runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, command string, timeout time.Duration) runner.Result
}

// ToolChecker is satisfied by *tools.Registry.
type ToolChecker interface {
	Check(id tools.ToolID) tools.ToolEntry
}

// ReportSaver is satisfied by *results.Store.
type ReportSaver interface {
	Save(tool, target, content string) (results.ReportFile, error)
}

type Session struct {
	Tools  ToolChecker
	Runner CommandRunner
	Store  ReportSaver
	Out    io.Writer
}

type StepOutcome struct {
	Step    scans.Step
	Result  runner.Result
	Report  *results.ReportFile
	SaveErr error
}

type Outcome struct {
	Plan  scans.Plan
	Steps []StepOutcome
	// Err is set when the plan could not start at all.
	Err error
}

// OK reports whether the plan ran and every step succeeded.
func (o Outcome) OK() bool {
	if o.Err != nil || len(o.Steps) == 0 {
		return false
	}
	for _, s := range o.Steps {
		if !s.Result.Success || s.SaveErr != nil {
			return false
		}
	}
	return true
}

func (s *Session) out() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}

// Execute runs every step of p in order. A failing step is reported and the
// next step still runs.
func (s *Session) Execute(ctx context.Context, p scans.Plan) Outcome {
	o := Outcome{Plan: p}
	w := s.out()

	if p.Tool != "" && s.Tools != nil {
		if e := s.Tools.Check(p.Tool); !e.Installed {
			o.Err = fmt.Errorf("%w: %s", ErrToolMissing, p.Tool)
			ui.Fail(w, "%s not installed", p.Tool)
			system.Audit.Warn("skip", "mode", p.Mode, "tool", p.Tool, "target", p.Target, "reason", "tool not installed")
			return o
		}
	}

	for _, st := range p.Steps {
		ui.Info(w, "%s", st.Label)
		so := StepOutcome{Step: st}
		if ctx.Err() != nil {
			so.Result = runner.Result{Command: st.Command, ExitCode: runner.NoExitCode, Failure: runner.FailureCanceled, Err: "not started"}
			ui.Warn(w, "skipped: %s", st.Command)
			o.Steps = append(o.Steps, so)
			continue
		}
		so.Result = s.run(ctx, p, st.Command, st.Timeout)
		if !so.Result.Success {
			reportFailure(w, p, st, so.Result)
		} else if st.Save {
			rf, err := s.save(st.SaveTool, st.SaveTarget, so.Result.Stdout)
			so.Report, so.SaveErr = rf, err
		}
		o.Steps = append(o.Steps, so)
	}
	return o
}

// Custom runs a free-form command line. When stdout is non-empty and confirm
// returns true, the output is saved as tool "custom", target "command".
func (s *Session) Custom(ctx context.Context, command string, timeout time.Duration, confirm func(runner.Result) bool) StepOutcome {
	w := s.out()
	p := scans.Plan{Mode: scans.ModeCustom, Target: "command"}
	st := scans.Step{Label: "custom command", Command: command, Timeout: timeout, SaveTool: "custom", SaveTarget: "command"}
	so := StepOutcome{Step: st, Result: s.run(ctx, p, command, timeout)}
	if !so.Result.Success {
		reportFailure(w, p, st, so.Result)
	}
	if strings.TrimSpace(so.Result.Stdout) != "" && confirm != nil && confirm(so.Result) {
		so.Step.Save = true
		so.Report, so.SaveErr = s.save(st.SaveTool, st.SaveTarget, so.Result.Stdout)
	}
	return so
}

func (s *Session) run(ctx context.Context, p scans.Plan, command string, timeout time.Duration) runner.Result {
	ui.Running(s.out(), command)
	res := s.Runner.Run(ctx, command, timeout)
	system.Audit.Info("run",
		"mode", p.Mode,
		"tool", p.Tool,
		"target", p.Target,
		"command", command,
		"success", res.Success,
		"exit", res.ExitCode,
		"failure", res.Failure,
		"duration", res.Duration.String(),
	)
	system.Logger.Debug("command finished", "command", command, "summary", res.Summary())
	return res
}

func (s *Session) save(tool, target, stdout string) (*results.ReportFile, error) {
	w := s.out()
	if s.Store == nil {
		return nil, nil
	}
	rf, err := s.Store.Save(tool, target, ansi.Strip(stdout))
	if err != nil {
		ui.Fail(w, "could not save results: %v", err)
		return nil, err
	}
	ui.Success(w, "Results saved to: %s", rf.Path)
	return &rf, nil
}

func reportFailure(w io.Writer, p scans.Plan, st scans.Step, res runner.Result) {
	who := string(p.Tool)
	if who == "" {
		who = string(p.Mode)
	}
	switch res.Failure {
	case runner.FailureTimeout:
		ui.Fail(w, "%s on %s timed out after %s", who, p.Target, st.Timeout)
	case runner.FailureSpawn:
		ui.Fail(w, "%s could not start: %s", who, firstLine(res.Err))
	case runner.FailureCanceled:
		ui.Warn(w, "%s on %s canceled", who, p.Target)
	default:
		msg := fmt.Sprintf("%s on %s exited with code %d", who, p.Target, res.ExitCode)
		if l := firstLine(res.Stderr); l != "" {
			msg += ": " + l
		}
		ui.Fail(w, "%s", msg)
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
