// Package invoke runs the announcer program under a bounded wait and
// captures its output for verification.
package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// DefaultTimeout bounds the announcer's total runtime.
const DefaultTimeout = 10 * time.Second

// Spec describes one invocation of the announcer program.
type Spec struct {
	Command []string      // argv, e.g. ["go", "run", "voluspa.go"]
	Dir     string        // working directory; empty means caller's cwd
	Timeout time.Duration // zero means DefaultTimeout
}

// Result holds the outcome of one invocation.
// Stdout is the verification input; Stderr is diagnostic only.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
	TimedOut bool
	Error    string // non-empty on a launch fault or timeout
}

// OK reports whether the program ran to completion and exited zero.
func (r *Result) OK() bool {
	return r.Error == "" && !r.TimedOut && r.ExitCode == 0
}

// Run executes the spec's command and waits for it to exit, be killed by
// the timeout, or fail to launch. The child runs in its own process group
// so the whole tree dies on cancellation (go run spawns a grandchild).
func Run(ctx context.Context, spec Spec) *Result {
	if len(spec.Command) == 0 {
		return &Result{Error: "empty command"}
	}
	timeout := spec.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	slog.Debug("spawning announcer", "command", spec.Command, "dir", spec.Dir, "timeout", timeout)

	cmd := exec.CommandContext(ctx, spec.Command[0], spec.Command[1:]...)
	setupProcessGroup(cmd)
	cmd.Dir = spec.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.Error = fmt.Sprintf("timed out after %s", timeout)
		return result
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result
		}
		// launch fault: command not found, bad working dir, etc.
		result.Error = fmt.Sprintf("start %s: %v", spec.Command[0], err)
		return result
	}

	return result
}
