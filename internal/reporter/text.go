package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/rollcall/internal/check"
	"github.com/ppiankov/rollcall/internal/history"
)

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorDim   = "\033[2m"
)

// TextReporter writes human-readable diagnostics to a writer.
// The Yes/No contract on stdout is not its business.
type TextReporter struct {
	w     io.Writer
	color bool
}

// NewTextReporter creates a text reporter.
// If w is nil, defaults to os.Stderr. color enables ANSI codes.
func NewTextReporter(w io.Writer, color bool) *TextReporter {
	if w == nil {
		w = os.Stderr
	}
	return &TextReporter{w: w, color: color}
}

func (r *TextReporter) c(code string) string {
	if r.color {
		return code
	}
	return ""
}

// PrintOutcome writes the diagnostic breakdown of one check.
func (r *TextReporter) PrintOutcome(out *check.Outcome) {
	if out.Passed {
		fmt.Fprintf(r.w, "%s✓ all announcements present%s (%s)\n",
			r.c(colorGreen), r.c(colorReset), out.Duration.Truncate(time.Millisecond))
		return
	}

	fmt.Fprintf(r.w, "%s✗ check failed%s — %s (%s)\n",
		r.c(colorRed), r.c(colorReset), out.Detail, out.Duration.Truncate(time.Millisecond))

	if out.Invocation != nil && !out.Invocation.OK() {
		if stderr := strings.TrimSpace(out.Invocation.Stderr); stderr != "" {
			fmt.Fprintf(r.w, "%s  announcer stderr: %s%s\n", r.c(colorDim), lastLine(stderr), r.c(colorReset))
		}
		return
	}

	rep := out.Report
	if rep == nil {
		return
	}
	fmt.Fprintf(r.w, "  announcements: %d/%d\n", rep.Lines, rep.Expected)
	for _, ln := range rep.Malformed {
		fmt.Fprintf(r.w, "  malformed: %q\n", ln)
	}
	if len(rep.Missing) > 0 {
		fmt.Fprintf(r.w, "  missing: %s\n", strings.Join(rep.Missing, ", "))
	}
	if len(rep.Duplicate) > 0 {
		fmt.Fprintf(r.w, "  duplicated: %s\n", strings.Join(rep.Duplicate, ", "))
	}
	if len(rep.Extra) > 0 {
		fmt.Fprintf(r.w, "  unexpected: %s\n", strings.Join(rep.Extra, ", "))
	}
}

// PrintHistory writes recent check outcomes as a table with a summary line.
func (r *TextReporter) PrintHistory(entries []history.Entry, passed, failed int) {
	if len(entries) == 0 {
		fmt.Fprintln(r.w, "no checks recorded")
		return
	}

	fmt.Fprintf(r.w, "%-20s %-8s %-10s %-12s %s\n", "WHEN", "RESULT", "DURATION", "FAULT", "DETAIL")
	fmt.Fprintln(r.w, strings.Repeat("─", 80))
	for _, e := range entries {
		icon, color := "✗", colorRed
		result := "No"
		if e.Passed {
			icon, color = "✓", colorGreen
			result = "Yes"
		}
		fmt.Fprintf(r.w, "%s%s %-18s %-8s %-10s %-12s %s%s\n",
			r.c(color), icon,
			e.StartedAt.Format("2006-01-02 15:04:05"),
			result,
			e.Duration.Truncate(time.Millisecond),
			e.Fault,
			e.Detail,
			r.c(colorReset))
	}
	fmt.Fprintf(r.w, "\nTotal: %d pass, %d fail\n", passed, failed)
}

// PrintWatchEvent writes one minimal-mode watch line.
func (r *TextReporter) PrintWatchEvent(out *check.Outcome) {
	icon, color := "✗", colorRed
	if out.Passed {
		icon, color = "✓", colorGreen
	}
	fmt.Fprintf(r.w, "%s %s%s %s%s — %s (%s)\n",
		out.StartedAt.Format("15:04:05"),
		r.c(color), icon, out.Answer(), r.c(colorReset),
		out.Detail,
		out.Duration.Truncate(time.Millisecond))
}

// PrintRoster writes the expected names, one per line.
func (r *TextReporter) PrintRoster(roster []string) {
	fmt.Fprintf(r.w, "%srollcall — %d expected announcements%s\n\n", r.c(colorCyan), len(roster), r.c(colorReset))
	for i, name := range roster {
		fmt.Fprintf(r.w, "  %2d. %s\n", i+1, name)
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if ln := strings.TrimSpace(lines[i]); ln != "" {
			if len(ln) > 80 {
				return ln[:80] + "..."
			}
			return ln
		}
	}
	return "(no output)"
}
