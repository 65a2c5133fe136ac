package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pentu/internal/config"
	"pentu/internal/scans"
	"pentu/internal/session"
	"pentu/internal/testutil"
	"pentu/internal/tools"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		ResultsDir: filepath.Join(t.TempDir(), "pentu-results"),
		Shell:      "/bin/sh",
		Timeouts:   config.Timeouts{Default: 5, SQLi: 5, Brute: 5},
	}
}

func TestNew_Wiring(t *testing.T) {
	c := testConfig(t)
	a := New(c, nil)
	if a.Store.Dir != c.ResultsDir || a.Runner.Shell != "/bin/sh" || a.Catalog.DefaultTimeout != 5*time.Second {
		t.Fatalf("unexpected wiring: %+v", a)
	}
	if a.Session.Store == nil || a.Session.Runner == nil || a.Session.Tools == nil {
		t.Fatalf("session not wired: %+v", a.Session)
	}
}

func TestRunPlan_StreamsAndSaves(t *testing.T) {
	var out bytes.Buffer
	a := New(testConfig(t), &out)
	p := scans.Plan{Mode: scans.ModeCustom, Target: "local", Steps: []scans.Step{
		{Label: "echo", Command: "echo hello", Timeout: 5 * time.Second, Save: true, SaveTool: "echo", SaveTarget: "local"},
	}}
	if err := a.RunPlan(context.Background(), p); err != nil {
		t.Fatalf("RunPlan: %v", err)
	}
	if !strings.Contains(out.String(), "hello") {
		t.Fatalf("stdout not mirrored: %q", out.String())
	}
	list, err := a.Store.List()
	if err != nil || len(list) != 1 || list[0].Tool != "echo" {
		t.Fatalf("expected one saved report, got %+v %v", list, err)
	}
}

func TestRunPlan_Errors(t *testing.T) {
	a := New(testConfig(t), nil)
	a.Tools.LookPath = testutil.FakeLookPath(nil)

	p := scans.Plan{Mode: scans.ModeNmap, Tool: tools.ToolNmap, Target: "h", Steps: []scans.Step{{Command: "nmap h"}}}
	if err := a.RunPlan(context.Background(), p); !errors.Is(err, session.ErrToolMissing) {
		t.Fatalf("expected ErrToolMissing, got %v", err)
	}

	p = scans.Plan{Mode: scans.ModeCustom, Steps: []scans.Step{{Command: "exit 3", Timeout: 5 * time.Second}, {Command: "true", Timeout: 5 * time.Second}}}
	err := a.RunPlan(context.Background(), p)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 steps failed") {
		t.Fatalf("unexpected error %v", err)
	}
}
