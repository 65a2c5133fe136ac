package runner

import (
	"fmt"
	"time"
)

// FailureReason classifies why a run did not succeed.
type FailureReason string

const (
	FailureNone     FailureReason = ""
	FailureTimeout  FailureReason = "timeout"
	FailureSpawn    FailureReason = "spawn_error"
	FailureCanceled FailureReason = "canceled"
)

// NoExitCode marks a result whose process never reported an exit status.
const NoExitCode = -1

// Result is the outcome of one Run. It is never mutated after Run returns.
type Result struct {
	Command  string        `json:"command"`
	Success  bool          `json:"success"`
	ExitCode int           `json:"exitCode" jsonschema:"description=-1 when the process did not report an exit status"`
	Stdout   string        `json:"stdout"`
	Stderr   string        `json:"stderr"`
	Failure  FailureReason `json:"failure,omitempty" jsonschema:"enum=,enum=timeout,enum=spawn_error,enum=canceled"`
	Err      string        `json:"error,omitempty"`
	Duration time.Duration `json:"durationNs"`
}

// HasExitCode reports whether the process exited on its own.
func (r Result) HasExitCode() bool { return r.ExitCode != NoExitCode }

// Summary is a short label for status lines and logs.
func (r Result) Summary() string {
	switch r.Failure {
	case FailureTimeout:
		return r.Err
	case FailureSpawn:
		if r.Err != "" {
			return "could not start: " + r.Err
		}
		return "could not start"
	case FailureCanceled:
		return "canceled"
	}
	if r.HasExitCode() {
		return fmt.Sprintf("exit %d in %s", r.ExitCode, r.Duration.Round(time.Millisecond))
	}
	if r.Err != "" {
		return r.Err
	}
	return "terminated"
}
