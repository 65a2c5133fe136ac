// Package results persists captured tool output as timestamped report files
// and reads them back.
package results

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultDir is relative to the process working directory.
const DefaultDir = "pentu-results"

const (
	fileTimeLayout   = "20060102_150405"
	headerTimeLayout = "2006-01-02 15:04:05.000000"
	reportExt        = ".txt"

	// maxTargetLen caps the target part of a file name in bytes. The header
	// keeps the full target.
	maxTargetLen = 100
)

var headerRule = strings.Repeat("=", 60)

var (
	ErrNotFound = errors.New("report not found")
	ErrIO       = errors.New("results i/o error")
)

// ReportFile describes one saved report.
type ReportFile struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Tool      string    `json:"tool"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
	Size      int64     `json:"size"`
}

// Store reads and writes reports under Dir.
type Store struct {
	Dir string
	Now func() time.Time
}

// NewStore returns a store rooted at dir, or DefaultDir when dir is empty.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) dir() string {
	if strings.TrimSpace(s.Dir) == "" {
		return DefaultDir
	}
	return s.Dir
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SanitizeTarget replaces characters that cannot appear in a file name.
func SanitizeTarget(target string) string {
	return strings.NewReplacer("/", "_", ":", "_").Replace(target)
}

// FileName builds {tool}_{target}_{YYYYMMDD_HHMMSS}.txt. Long targets are
// cut to maxTargetLen bytes on a rune boundary.
func FileName(tool, target string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s%s", SanitizeTarget(tool), truncateBytes(SanitizeTarget(target), maxTargetLen), t.Format(fileTimeLayout), reportExt)
}

func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Save writes content under a fixed header and returns the new report.
// Two saves for the same tool and target within one second share a name;
// the later one wins.
func (s *Store) Save(tool, target, content string) (ReportFile, error) {
	tool = strings.TrimSpace(tool)
	if tool == "" {
		return ReportFile{}, errors.New("results: tool name is required")
	}
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ReportFile{}, fmt.Errorf("%w: create %s: %w", ErrIO, dir, err)
	}

	now := s.now()
	name := FileName(tool, target, now)
	path := filepath.Join(dir, name)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PENTU CLI - %s Results\n", strings.ToUpper(tool))
	fmt.Fprintf(&b, "Target: %s\n", target)
	fmt.Fprintf(&b, "Timestamp: %s\n", now.Format(headerTimeLayout))
	b.WriteString(headerRule)
	b.WriteString("\n\n")
	b.WriteString(content)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return ReportFile{}, fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	return ReportFile{
		Name:      name,
		Path:      path,
		Tool:      tool,
		Target:    target,
		Timestamp: now,
		Size:      int64(b.Len()),
	}, nil
}

// List returns every *.txt report in the directory, in directory order.
// A missing directory yields an empty list.
func (s *Store) List() ([]ReportFile, error) {
	dir := s.dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []ReportFile{}, nil
		}
		return nil, fmt.Errorf("%w: list %s: %w", ErrIO, dir, err)
	}
	out := make([]ReportFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), reportExt) {
			continue
		}
		rf, err := s.describe(e.Name())
		if err != nil {
			// removed between ReadDir and Stat
			continue
		}
		out = append(out, rf)
	}
	return out, nil
}

// Read returns the full content of rf.
func (s *Store) Read(rf ReportFile) (string, error) {
	path := rf.Path
	if path == "" {
		path = filepath.Join(s.dir(), rf.Name)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("%w: read %s: %w", ErrIO, path, err)
	}
	return string(b), nil
}

// ReadName reads a report by its bare file name.
func (s *Store) ReadName(name string) (string, error) {
	if !validName(name) {
		return "", fmt.Errorf("%w: invalid report name %q", ErrNotFound, name)
	}
	return s.Read(ReportFile{Name: name, Path: filepath.Join(s.dir(), name)})
}

// Describe returns metadata for a report by its bare file name.
func (s *Store) Describe(name string) (ReportFile, error) {
	if !validName(name) {
		return ReportFile{}, fmt.Errorf("%w: invalid report name %q", ErrNotFound, name)
	}
	rf, err := s.describe(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ReportFile{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return ReportFile{}, fmt.Errorf("%w: stat %s: %w", ErrIO, name, err)
	}
	return rf, nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

func (s *Store) describe(name string) (ReportFile, error) {
	path := filepath.Join(s.dir(), name)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	st, err := os.Stat(path)
	if err != nil {
		return ReportFile{}, err
	}
	rf := ReportFile{Name: name, Path: path, Size: st.Size(), Timestamp: st.ModTime()}
	if tool, target, ts, ok := parseName(name); ok {
		rf.Tool, rf.Target, rf.Timestamp = tool, target, ts
	}
	if target, ts, ok := readHeader(path); ok {
		rf.Target = target
		if !ts.IsZero() {
			rf.Timestamp = ts
		}
	}
	return rf, nil
}

// parseName splits {tool}_{target}_{YYYYMMDD}_{HHMMSS}.txt. Tool names never
// contain underscores; targets may.
func parseName(name string) (tool, target string, ts time.Time, ok bool) {
	base := strings.TrimSuffix(name, reportExt)
	parts := strings.Split(base, "_")
	n := len(parts)
	if n < 4 {
		return "", "", time.Time{}, false
	}
	ts, err := time.ParseInLocation(fileTimeLayout, parts[n-2]+"_"+parts[n-1], time.Local)
	if err != nil {
		return "", "", time.Time{}, false
	}
	return parts[0], strings.Join(parts[1:n-2], "_"), ts, true
}

// readHeader extracts the original target and timestamp from the first
// lines of a report written by Save.
func readHeader(path string) (target string, ts time.Time, ok bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", time.Time{}, false
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for i := 0; i < 4 && sc.Scan(); i++ {
		line := sc.Text()
		switch {
		case i == 0 && !strings.HasPrefix(line, "PENTU CLI - "):
			return "", time.Time{}, false
		case strings.HasPrefix(line, "Target: "):
			target = strings.TrimPrefix(line, "Target: ")
			ok = true
		case strings.HasPrefix(line, "Timestamp: "):
			ts, _ = time.ParseInLocation(headerTimeLayout, strings.TrimPrefix(line, "Timestamp: "), time.Local)
		}
	}
	return target, ts, ok
}
