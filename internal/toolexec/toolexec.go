// Package toolexec wraps invocations of platform inspection tools.
// Every call carries a timeout so a hung external binary cannot stall
// a collection pass, and stderr is folded into the returned error for
// diagnosis. All invoked commands are read-only queries.
package toolexec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes external tools. Collectors depend on this interface
// so tests can substitute canned output.
type Runner interface {
	// Run executes name with args and returns its stdout. A non-zero
	// exit, missing binary, or timeout yields an error.
	Run(ctx context.Context, name string, args ...string) (string, error)
	// LookPath reports whether name is on PATH.
	LookPath(name string) (string, bool)
}

// ExecRunner runs tools via os/exec with a per-invocation timeout.
type ExecRunner struct {
	Timeout time.Duration
}

// New returns an ExecRunner with the given per-invocation timeout.
// A zero timeout means 15 seconds.
func New(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ExecRunner{Timeout: timeout}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%s timed out after %s", name, r.Timeout)
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("running %s: %w", name, err)
		}
		return "", fmt.Errorf("running %s: %w: %s", name, err, msg)
	}
	return stdout.String(), nil
}

func (r *ExecRunner) LookPath(name string) (string, bool) {
	path, err := exec.LookPath(name)
	return path, err == nil
}
