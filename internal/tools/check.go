package tools

import (
	"os/exec"
	"sort"
)

// LookPathFunc resolves a binary name to an executable path.
type LookPathFunc func(file string) (string, error)

// Registry probes the host for the tools it knows about.
type Registry struct {
	Tools    []ToolInfo
	LookPath LookPathFunc // defaults to exec.LookPath
}

// NewRegistry returns a registry over the built-in catalog.
func NewRegistry() *Registry {
	return &Registry{Tools: Tools, LookPath: exec.LookPath}
}

// Snapshot is the state of every known tool at one point in time.
// Each CheckAll call builds a new one; callers never share or mutate it.
type Snapshot map[ToolID]ToolEntry

// Installed reports whether id was found in the snapshot.
func (s Snapshot) Installed(id ToolID) bool {
	return s[id].Installed
}

// Sorted returns the entries ordered by name.
func (s Snapshot) Sorted() []ToolEntry {
	out := make([]ToolEntry, 0, len(s))
	for _, e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CheckAll probes every known tool. It never fails: a probe error for one
// tool marks that tool as not installed and the pass carries on.
func (r *Registry) CheckAll() Snapshot {
	snap := make(Snapshot, len(r.Tools))
	for _, t := range r.Tools {
		snap[t.ID] = r.probe(t)
	}
	return snap
}

// Check probes a single tool. Unknown IDs are reported as not installed.
func (r *Registry) Check(id ToolID) ToolEntry {
	for _, t := range r.Tools {
		if t.ID == id {
			return r.probe(t)
		}
	}
	return ToolEntry{Name: string(id)}
}

func (r *Registry) probe(t ToolInfo) ToolEntry {
	entry := ToolEntry{Name: string(t.ID)}
	look := r.LookPath
	if look == nil {
		look = exec.LookPath
	}
	for _, bin := range t.Binaries {
		if path, err := look(bin); err == nil && path != "" {
			entry.Installed = true
			entry.Path = path
			return entry
		}
	}
	return entry
}
