package system

import (
    "fmt"
    "io"
    "os"
    "path/filepath"
    "strings"
    "time"

    clog "github.com/charmbracelet/log"
    "gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the shared application logger for CLI output.
// It prints to stderr with timestamps enabled for better UX.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
    ReportTimestamp: true,
    TimeFormat:      time.Kitchen,
})

// SetLevel applies a textual level (debug, info, warn, error) to Logger.
func SetLevel(level string) error {
    if strings.TrimSpace(level) == "" {
        return nil
    }
    lvl, err := clog.ParseLevel(strings.ToLower(level))
    if err != nil {
        return fmt.Errorf("invalid log level %q: %w", level, err)
    }
    Logger.SetLevel(lvl)
    return nil
}

// Audit records one JSON line per executed command. It discards everything
// until OpenAudit is called.
var Audit = clog.NewWithOptions(io.Discard, clog.Options{
    ReportTimestamp: true,
    TimeFormat:      time.RFC3339,
    Formatter:       clog.JSONFormatter,
    Prefix:          "audit",
})

// OpenAudit points Audit at a size-rotated file. The returned closer
// flushes and closes the file.
func OpenAudit(path string) (io.Closer, error) {
    if strings.TrimSpace(path) == "" {
        return nopCloser{}, nil
    }
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
        return nil, fmt.Errorf("create audit log dir: %w", err)
    }
    lj := &lumberjack.Logger{
        Filename:   path,
        MaxSize:    10, // MB
        MaxBackups: 5,
        MaxAge:     30,
        Compress:   true,
    }
    Audit.SetOutput(lj)
    return lj, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
