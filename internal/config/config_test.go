package config

import (
    "os"
    "path/filepath"
    "testing"
    "time"

    "pentu/internal/testutil"
)

// isolate runs the test from an empty directory with its own config home.
func isolate(t *testing.T) string {
    t.Helper()
    dir := t.TempDir()
    t.Chdir(dir)
    t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
    t.Setenv("HOME", dir)
    return dir
}

func TestLoad_Defaults(t *testing.T) {
    isolate(t)
    c, err := Load(New(), "")
    if err != nil {
        t.Fatalf("Load error: %v", err)
    }
    if c.ResultsDir != "./pentu-results" || c.Shell != "/bin/sh" {
        t.Fatalf("unexpected defaults: %+v", c)
    }
    if c.DefaultTimeout() != 300*time.Second || c.SQLiTimeout() != 600*time.Second || c.BruteTimeout() != 1800*time.Second {
        t.Fatalf("unexpected timeouts: %+v", c.Timeouts)
    }
    if c.Wordlists.Users != DefaultUserList || c.Serve.Addr != "127.0.0.1:8787" {
        t.Fatalf("unexpected defaults: %+v", c)
    }
    if c.File != "" {
        t.Fatalf("no config file expected, got %q", c.File)
    }
}

func TestLoad_EnvOverrides(t *testing.T) {
    isolate(t)
    t.Setenv("PENTU_RESULTS_DIR", "/tmp/out")
    t.Setenv("PENTU_TIMEOUTS_SQLI", "42")
    t.Setenv("PENTU_LOG_LEVEL", "debug")
    c, err := Load(New(), "")
    if err != nil {
        t.Fatalf("Load error: %v", err)
    }
    if c.ResultsDir != "/tmp/out" || c.Timeouts.SQLi != 42 || c.Log.Level != "debug" {
        t.Fatalf("env not applied: %+v", c)
    }
}

func TestLoad_LocalFile(t *testing.T) {
    dir := isolate(t)
    testutil.WriteFile(t, dir, "pentu.yaml", "results_dir: reports\ntimeouts:\n  default: 60\nwordlists:\n  web: /tmp/web.txt\n")
    c, err := Load(New(), "")
    if err != nil {
        t.Fatalf("Load error: %v", err)
    }
    if c.ResultsDir != "reports" || c.Timeouts.Default != 60 || c.Wordlists.Web != "/tmp/web.txt" {
        t.Fatalf("file not applied: %+v", c)
    }
    if c.Timeouts.Brute != 1800 {
        t.Fatalf("unset keys should keep defaults: %+v", c.Timeouts)
    }
    if filepath.Base(c.File) != "pentu.yaml" {
        t.Fatalf("unexpected config file %q", c.File)
    }
}

func TestLoad_UserConfigDir(t *testing.T) {
    dir := isolate(t)
    cfgDir := filepath.Join(dir, "xdg", "pentu")
    if err := os.MkdirAll(cfgDir, 0o755); err != nil {
        t.Fatal(err)
    }
    testutil.WriteFile(t, cfgDir, "config.yaml", "shell: /bin/bash\n")
    c, err := Load(New(), "")
    if err != nil {
        t.Fatalf("Load error: %v", err)
    }
    if c.Shell != "/bin/bash" {
        t.Fatalf("user config not applied: %+v", c)
    }
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
    dir := isolate(t)
    if _, err := Load(New(), filepath.Join(dir, "nope.yaml")); err == nil {
        t.Fatalf("expected error for missing explicit config")
    }
}

func TestLoad_RejectsBadTimeout(t *testing.T) {
    isolate(t)
    t.Setenv("PENTU_TIMEOUTS_BRUTE", "0")
    if _, err := Load(New(), ""); err == nil {
        t.Fatalf("expected validation error")
    }
}

func TestLoadDotEnv(t *testing.T) {
    dir := isolate(t)
    p := testutil.WriteFile(t, dir, ".env", "PENTU_SHELL=/bin/zsh\nPENTU_SERVE_ADDR=127.0.0.1:9999\n")
    t.Setenv("PENTU_SERVE_ADDR", "127.0.0.1:1111")
    defer testutil.WithEnv(t, "PENTU_SHELL", "")()

    if err := LoadDotEnv(p, filepath.Join(dir, "missing.env")); err != nil {
        t.Fatalf("LoadDotEnv error: %v", err)
    }
    c, err := Load(New(), "")
    if err != nil {
        t.Fatalf("Load error: %v", err)
    }
    if c.Shell != "/bin/zsh" {
        t.Fatalf(".env value not applied: %q", c.Shell)
    }
    if c.Serve.Addr != "127.0.0.1:1111" {
        t.Fatalf("existing env must win over .env: %q", c.Serve.Addr)
    }
}

func TestDir(t *testing.T) {
    dir := t.TempDir()
    t.Setenv("XDG_CONFIG_HOME", dir)
    got, err := Dir()
    if err != nil {
        t.Fatalf("Dir error: %v", err)
    }
    if got != filepath.Join(dir, "pentu") {
        t.Fatalf("unexpected dir %q", got)
    }
}
