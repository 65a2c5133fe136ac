// Package runner executes shell command lines, mirrors their stdout line by
// line while buffering it, and enforces a deadline on the whole process group.
package runner

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultTimeout   = 300 * time.Second
	DefaultShell     = "/bin/sh"
	DefaultWaitDelay = 500 * time.Millisecond
)

// Runner launches commands through a shell. The zero value is usable.
type Runner struct {
	Shell string   // interpreter invoked as `Shell -c command`
	Dir   string   // working directory; empty means the current one
	Env   []string // extra KEY=VALUE pairs on top of os.Environ()

	// Sink receives every stdout line as soon as it is read.
	Sink func(line string)

	// WaitDelay bounds how long pipes may stay open after the shell
	// exited or the process group was killed.
	WaitDelay time.Duration
}

// Run executes command and blocks until it exits, the timeout fires or ctx
// is canceled. A timeout <= 0 means DefaultTimeout. Run never returns an
// error: every failure mode is described by the Result.
func (r *Runner) Run(ctx context.Context, command string, timeout time.Duration) Result {
	start := time.Now()
	res := Result{Command: command, ExitCode: NoExitCode}
	if strings.TrimSpace(command) == "" {
		return res.spawnFailed(errors.New("empty command"), start)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.shell(), "-c", command)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}
	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd.Process) }
	// A background job may keep the pipes open after the shell is gone.
	cmd.WaitDelay = r.waitDelay()

	pr, pw := io.Pipe()
	var errBuf bytes.Buffer
	cmd.Stdout = pw
	cmd.Stderr = &errBuf
	if err := cmd.Start(); err != nil {
		_ = pw.Close()
		return res.spawnFailed(err, start)
	}

	var (
		lines   []string
		waitErr error
		g       errgroup.Group
	)
	g.Go(func() error {
		return drainLines(pr, func(line string) {
			lines = append(lines, line)
			if r.Sink != nil {
				r.Sink(line)
			}
		})
	})
	g.Go(func() error {
		waitErr = cmd.Wait()
		return pw.Close()
	})
	drainErr := g.Wait()

	res.Stdout = strings.Join(lines, "\n")
	res.Stderr = strings.TrimRight(errBuf.String(), "\r\n")
	res.Duration = time.Since(start)

	// Only a process we killed counts as timed out or canceled; one that
	// exited on its own right at the deadline keeps its status.
	killed := cmd.ProcessState != nil && cmd.ProcessState.ExitCode() == NoExitCode
	switch {
	case killed && ctx.Err() != nil:
		res.Failure = FailureCanceled
		res.Err = context.Cause(ctx).Error()
		return res
	case killed && runCtx.Err() != nil:
		res.Failure = FailureTimeout
		res.Err = fmt.Sprintf("timed out after %s", timeout)
		return res
	}

	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	switch res.ExitCode {
	case 0:
		res.Success = true
	case 126, 127:
		// The shell started but could not find or execute the program.
		res.Failure = FailureSpawn
		res.Err = firstLine(res.Stderr)
		if res.Err == "" {
			res.Err = fmt.Sprintf("shell exited with status %d", res.ExitCode)
		}
	default:
		if waitErr != nil {
			res.Err = waitErr.Error()
		}
	}
	if res.Success && errors.Is(waitErr, exec.ErrWaitDelay) {
		res.Err = "output left open by a background process"
	}
	if drainErr != nil && res.Err == "" {
		res.Err = "read output: " + drainErr.Error()
	}
	return res
}

func (r *Runner) shell() string {
	if r.Shell != "" {
		return r.Shell
	}
	return DefaultShell
}

func (r *Runner) waitDelay() time.Duration {
	if r.WaitDelay > 0 {
		return r.WaitDelay
	}
	return DefaultWaitDelay
}

func (res Result) spawnFailed(err error, start time.Time) Result {
	res.Failure = FailureSpawn
	res.Err = err.Error()
	res.Duration = time.Since(start)
	return res
}

// drainLines reads newline-delimited lines until EOF. A trailing line with
// no newline is delivered when the stream closes.
func drainLines(r io.Reader, emit func(string)) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			emit(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
