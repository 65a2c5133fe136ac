package config

import (
    "errors"
    "os"
    "path/filepath"
    "strings"
)

// Dir returns the pentu config directory under the user config base.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
    base, err := os.UserConfigDir()
    if err != nil || strings.TrimSpace(base) == "" {
        if home, herr := os.UserHomeDir(); herr == nil {
            base = home
        } else {
            return "", errors.New("cannot determine config directory")
        }
    }
    return filepath.Join(base, "pentu"), nil
}

// candidateFiles lists the config files probed when --config is not given,
// in priority order.
func candidateFiles() []string {
    out := []string{"pentu.yaml"}
    if d, err := Dir(); err == nil {
        out = append(out, filepath.Join(d, "config.yaml"))
    }
    return out
}
