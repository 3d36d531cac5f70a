// Package check runs one announcer invocation and verifies its output,
// collapsing every fault to a single binary outcome.
package check

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/ppiankov/rollcall/internal/history"
	"github.com/ppiankov/rollcall/internal/invoke"
	"github.com/ppiankov/rollcall/internal/verify"
)

// Params configures one check.
type Params struct {
	Command []string
	Workdir string
	Timeout time.Duration
	Roster  []string // empty means verify.DefaultRoster
}

// Outcome is the result of one check. Passed is the only contractual
// field; the rest feeds diagnostics and the history store.
type Outcome struct {
	Passed     bool
	Fault      string // history.Fault* class
	Detail     string
	StartedAt  time.Time
	Duration   time.Duration
	Invocation *invoke.Result
	Report     *verify.Report // nil when invocation short-circuited
}

// Run executes the announcer and verifies its stdout. Faults short-circuit
// in priority order: launch failure and timeout, then non-zero exit, then
// malformed lines, then count and multiset mismatches.
func Run(ctx context.Context, p Params) *Outcome {
	roster := p.Roster
	if len(roster) == 0 {
		roster = verify.DefaultRoster
	}

	out := &Outcome{StartedAt: time.Now()}

	res := invoke.Run(ctx, invoke.Spec{
		Command: p.Command,
		Dir:     p.Workdir,
		Timeout: p.Timeout,
	})
	out.Invocation = res
	out.Duration = res.Duration

	if !res.OK() {
		out.Fault = history.FaultInvocation
		out.Detail = res.Error
		if out.Detail == "" {
			out.Detail = exitDetail(res.ExitCode)
		}
		slog.Debug("invocation fault", "detail", out.Detail)
		return out
	}

	report := verify.Inspect(res.Stdout, roster)
	out.Report = report

	if !report.Passed {
		out.Fault = history.FaultContent
		if len(report.Malformed) > 0 {
			out.Fault = history.FaultFormat
		}
		out.Detail = report.Summary()
		slog.Debug("verification fault", "fault", out.Fault, "detail", out.Detail)
		return out
	}

	out.Passed = true
	out.Fault = history.FaultNone
	out.Detail = "ok"
	return out
}

// Answer renders the outcome as the program's single output line.
func (o *Outcome) Answer() string {
	if o.Passed {
		return "Yes"
	}
	return "No"
}

// HistoryEntry converts the outcome into a history store row.
func (o *Outcome) HistoryEntry() history.Entry {
	return history.Entry{
		StartedAt: o.StartedAt,
		Duration:  o.Duration,
		Passed:    o.Passed,
		Fault:     o.Fault,
		Detail:    o.Detail,
	}
}

func exitDetail(code int) string {
	return "exit status " + strconv.Itoa(code)
}
