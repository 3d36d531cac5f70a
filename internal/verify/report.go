package verify

import (
	"fmt"
	"sort"
	"strings"
)

// Report holds the diagnostic breakdown of one verification.
// It exists for operators; the binary contract is Verify alone.
type Report struct {
	Passed    bool
	Lines     int      // non-blank lines seen
	Expected  int      // roster size
	Malformed []string // lines missing the prefix, as captured
	Missing   []string // roster names never announced
	Extra     []string // announced names not on the roster
	Duplicate []string // names announced more than once
}

// Inspect verifies output like Verify but collects every deviation instead
// of stopping at the first. Verify(output, roster) == Inspect(...).Passed.
func Inspect(output string, roster []string) *Report {
	lines := splitLines(output)
	r := &Report{
		Lines:    len(lines),
		Expected: len(roster),
	}

	announced := make(map[string]int, len(lines))
	for _, ln := range lines {
		if !strings.HasPrefix(ln, Prefix) {
			r.Malformed = append(r.Malformed, ln)
			continue
		}
		announced[ln[len(Prefix):]]++
	}

	want := counts(roster)
	for name, n := range want {
		if announced[name] < n {
			r.Missing = append(r.Missing, name)
		}
	}
	for name, n := range announced {
		if want[name] == 0 {
			r.Extra = append(r.Extra, name)
		}
		if n > want[name] && want[name] > 0 {
			r.Duplicate = append(r.Duplicate, name)
		}
	}
	sort.Strings(r.Missing)
	sort.Strings(r.Extra)
	sort.Strings(r.Duplicate)

	r.Passed = r.Lines == r.Expected &&
		len(r.Malformed) == 0 &&
		countsEqual(announced, want)
	return r
}

// Summary returns a one-line description of the first deviation, or "ok".
func (r *Report) Summary() string {
	switch {
	case r.Passed:
		return "ok"
	case r.Lines != r.Expected:
		return fmt.Sprintf("expected %d announcements, got %d", r.Expected, r.Lines)
	case len(r.Malformed) > 0:
		return fmt.Sprintf("%d malformed lines", len(r.Malformed))
	case len(r.Missing) > 0:
		return "missing: " + strings.Join(r.Missing, ", ")
	case len(r.Duplicate) > 0:
		return "duplicated: " + strings.Join(r.Duplicate, ", ")
	case len(r.Extra) > 0:
		return "unexpected: " + strings.Join(r.Extra, ", ")
	default:
		return "announcement mismatch"
	}
}
