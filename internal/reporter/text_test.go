package reporter

import (
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/rollcall/internal/check"
	"github.com/ppiankov/rollcall/internal/history"
	"github.com/ppiankov/rollcall/internal/invoke"
	"github.com/ppiankov/rollcall/internal/verify"
)

func TestPrintOutcome_Passed(t *testing.T) {
	var b strings.Builder
	r := NewTextReporter(&b, false)

	r.PrintOutcome(&check.Outcome{
		Passed:   true,
		Duration: 650 * time.Millisecond,
	})

	if !strings.Contains(b.String(), "all announcements present") {
		t.Errorf("output: %q", b.String())
	}
}

func TestPrintOutcome_ContentFault(t *testing.T) {
	var b strings.Builder
	r := NewTextReporter(&b, false)

	r.PrintOutcome(&check.Outcome{
		Detail:     "missing: Óri",
		Invocation: &invoke.Result{},
		Report: &verify.Report{
			Lines:    13,
			Expected: 14,
			Missing:  []string{"Óri"},
		},
	})

	out := b.String()
	if !strings.Contains(out, "13/14") {
		t.Errorf("expected announcement count, got: %q", out)
	}
	if !strings.Contains(out, "missing: Óri") {
		t.Errorf("expected missing name, got: %q", out)
	}
}

func TestPrintOutcome_InvocationFault(t *testing.T) {
	var b strings.Builder
	r := NewTextReporter(&b, false)

	r.PrintOutcome(&check.Outcome{
		Detail: "timed out after 10s",
		Invocation: &invoke.Result{
			TimedOut: true,
			Error:    "timed out after 10s",
			Stderr:   "compile error: voluspa.go:3\n",
		},
	})

	out := b.String()
	if !strings.Contains(out, "timed out after 10s") {
		t.Errorf("expected timeout detail, got: %q", out)
	}
	if !strings.Contains(out, "compile error") {
		t.Errorf("expected announcer stderr, got: %q", out)
	}
}

func TestPrintHistory(t *testing.T) {
	var b strings.Builder
	r := NewTextReporter(&b, false)

	entries := []history.Entry{
		{StartedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC), Passed: true, Fault: history.FaultNone, Detail: "ok"},
		{StartedAt: time.Date(2026, 8, 25, 11, 0, 0, 0, time.UTC), Passed: false, Fault: history.FaultContent, Detail: "missing: Óri"},
	}
	r.PrintHistory(entries, 1, 1)

	out := b.String()
	if !strings.Contains(out, "Total: 1 pass, 1 fail") {
		t.Errorf("expected summary line, got: %q", out)
	}
	if !strings.Contains(out, "content") || !strings.Contains(out, "missing: Óri") {
		t.Errorf("expected fault columns, got: %q", out)
	}
}

func TestPrintHistory_Empty(t *testing.T) {
	var b strings.Builder
	NewTextReporter(&b, false).PrintHistory(nil, 0, 0)
	if !strings.Contains(b.String(), "no checks recorded") {
		t.Errorf("output: %q", b.String())
	}
}

func TestPrintRoster(t *testing.T) {
	var b strings.Builder
	NewTextReporter(&b, false).PrintRoster(verify.DefaultRoster)

	out := b.String()
	if !strings.Contains(out, "14 expected announcements") {
		t.Errorf("expected header, got: %q", out)
	}
	if !strings.Contains(out, "Gandalfr") {
		t.Errorf("expected roster names, got: %q", out)
	}
}

func TestPrintWatchEvent(t *testing.T) {
	var b strings.Builder
	r := NewTextReporter(&b, false)

	r.PrintWatchEvent(&check.Outcome{
		Passed:    true,
		Detail:    "ok",
		StartedAt: time.Date(2026, 8, 25, 15, 4, 5, 0, time.UTC),
		Duration:  time.Second,
	})

	out := b.String()
	if !strings.Contains(out, "15:04:05") || !strings.Contains(out, "Yes") {
		t.Errorf("output: %q", out)
	}
}
