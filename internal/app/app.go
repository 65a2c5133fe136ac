// Package app wires configuration into the runner, store, registry and
// session used by every entry point.
package app

import (
	"context"
	"fmt"
	"io"

	"pentu/internal/config"
	"pentu/internal/results"
	"pentu/internal/runner"
	"pentu/internal/scans"
	"pentu/internal/session"
	"pentu/internal/tools"
	"pentu/internal/ui"
)

type App struct {
	Config  config.Config
	Tools   *tools.Registry
	Runner  *runner.Runner
	Store   *results.Store
	Catalog *scans.Catalog
	Session *session.Session
	Out     io.Writer
}

// New builds an App whose runner mirrors stdout lines to out.
func New(c config.Config, out io.Writer) *App {
	if out == nil {
		out = io.Discard
	}
	a := &App{
		Config: c,
		Tools:  tools.NewRegistry(),
		Runner: &runner.Runner{
			Shell: c.Shell,
			Sink:  func(line string) { fmt.Fprintln(out, line) },
		},
		Store:   results.NewStore(c.ResultsDir),
		Catalog: scans.NewCatalog(c),
		Out:     out,
	}
	a.Session = &session.Session{Tools: a.Tools, Runner: a.Runner, Store: a.Store, Out: out}
	return a
}

// RunPlan executes p and turns an incomplete outcome into an error.
// Failures have already been reported on Out.
func (a *App) RunPlan(ctx context.Context, p scans.Plan) error {
	o := a.Session.Execute(ctx, p)
	if o.Err != nil {
		return o.Err
	}
	failed := 0
	for _, s := range o.Steps {
		if !s.Result.Success || s.SaveErr != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%s: %d of %d steps failed", p.Mode, failed, len(o.Steps))
	}
	return nil
}

// Browse opens the interactive results browser over the store.
func (a *App) Browse(ctx context.Context) error {
	return ui.Browse(ctx, a.Store)
}
