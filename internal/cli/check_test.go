package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/rollcall/internal/config"
	"github.com/ppiankov/rollcall/internal/verify"
)

// captureStdout runs fn with os.Stdout redirected to a pipe.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()
	_ = w.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func writeAnnouncer(t *testing.T, names []string, trailer string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	for _, n := range names {
		b.WriteString("printf '" + verify.Prefix + n + "\\n'\n")
	}
	b.WriteString(trailer)
	path := filepath.Join(t.TempDir(), "announcer.sh")
	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCheck_PrintsYes(t *testing.T) {
	script := writeAnnouncer(t, verify.DefaultRoster, "")
	cfg := &config.Settings{
		Command: []string{"sh", script},
		History: "off",
	}

	out := captureStdout(t, func() {
		if err := runCheck(cfg, ".", 0, false, true); err != nil {
			t.Errorf("runCheck: %v", err)
		}
	})

	if out != "Yes\n" {
		t.Errorf("stdout: got %q, want \"Yes\\n\"", out)
	}
}

func TestRunCheck_PrintsNo(t *testing.T) {
	script := writeAnnouncer(t, verify.DefaultRoster[:13], "")
	cfg := &config.Settings{
		Command: []string{"sh", script},
		History: "off",
	}

	out := captureStdout(t, func() {
		if err := runCheck(cfg, ".", 0, false, true); err != nil {
			t.Errorf("runCheck: %v", err)
		}
	})

	if out != "No\n" {
		t.Errorf("stdout: got %q, want \"No\\n\"", out)
	}
}

func TestRunCheck_TimeoutPrintsNo(t *testing.T) {
	script := writeAnnouncer(t, verify.DefaultRoster, "sleep 10\n")
	cfg := &config.Settings{
		Command: []string{"sh", script},
		History: "off",
	}

	out := captureStdout(t, func() {
		if err := runCheck(cfg, ".", 150*time.Millisecond, false, true); err != nil {
			t.Errorf("runCheck: %v", err)
		}
	})

	if out != "No\n" {
		t.Errorf("stdout: got %q, want \"No\\n\"", out)
	}
}

func TestRunCheck_RecordsHistory(t *testing.T) {
	script := writeAnnouncer(t, verify.DefaultRoster, "")
	histPath := filepath.Join(t.TempDir(), "history.db")
	cfg := &config.Settings{
		Command: []string{"sh", script},
		History: histPath,
	}

	captureStdout(t, func() {
		if err := runCheck(cfg, ".", 0, false, false); err != nil {
			t.Errorf("runCheck: %v", err)
		}
	})

	if _, err := os.Stat(histPath); err != nil {
		t.Errorf("expected history database at %s: %v", histPath, err)
	}
}

func TestAnnouncerCommand_Default(t *testing.T) {
	got := announcerCommand(&config.Settings{})
	if len(got) != 3 || got[0] != "go" || got[2] != "voluspa.go" {
		t.Errorf("default command: got %v", got)
	}
}

func TestAnnouncerCommand_Override(t *testing.T) {
	got := announcerCommand(&config.Settings{Command: []string{"./announcer"}})
	if len(got) != 1 || got[0] != "./announcer" {
		t.Errorf("override command: got %v", got)
	}
}

func TestHistoryPath(t *testing.T) {
	if got := historyPath(&config.Settings{}); got != config.DefaultHistoryPath {
		t.Errorf("default: got %q", got)
	}
	if got := historyPath(&config.Settings{History: "off"}); got != "" {
		t.Errorf("off: got %q, want empty", got)
	}
	if got := historyPath(&config.Settings{History: "/tmp/h.db"}); got != "/tmp/h.db" {
		t.Errorf("explicit: got %q", got)
	}
}
