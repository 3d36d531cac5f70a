// Package verify implements the announcement output contract: one line per
// roster name, exact prefix, no missing, extra, or duplicated names.
package verify

import "strings"

// Prefix is the exact text every announcement line must start with.
const Prefix = "Hi! My name is "

// DefaultRoster lists the expected names, one announcement each.
// Order is irrelevant to verification; comparison is a multiset match.
var DefaultRoster = []string{
	"Þorinn", "Balin", "Bífurr", "Báfurr", "Bömburr", "Dóri", "Dvalinn",
	"Fíli", "Glóinn", "Kíli", "Nóri", "Þrainn", "Óri", "Gandalfr",
}

// Verify reports whether output satisfies the roster contract:
// exactly len(roster) non-blank lines, each starting with Prefix, and the
// multiset of extracted names equal to the roster multiset.
// Names are compared literally; no case folding or Unicode normalization.
func Verify(output string, roster []string) bool {
	lines := splitLines(output)

	// missing or extra announcements
	if len(lines) != len(roster) {
		return false
	}

	// malformed lines
	names := make([]string, 0, len(lines))
	for _, ln := range lines {
		if !strings.HasPrefix(ln, Prefix) {
			return false
		}
		names = append(names, ln[len(Prefix):])
	}

	// exact multiset equality: same names, same per-name counts
	return countsEqual(counts(names), counts(roster))
}

// splitLines splits output into lines, trims surrounding whitespace from
// each, and drops lines that are empty after trimming. Whitespace-only
// lines are invisible to the check.
func splitLines(output string) []string {
	var lines []string
	for _, ln := range strings.Split(output, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

// counts builds an occurrence map for a name list.
func counts(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for _, n := range names {
		m[n]++
	}
	return m
}

func countsEqual(got, want map[string]int) bool {
	if len(got) != len(want) {
		return false
	}
	for name, n := range want {
		if got[name] != n {
			return false
		}
	}
	return true
}
