package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadSettings_Valid(t *testing.T) {
	content := `
command: ["go", "run", "./announcer"]
workdir: ~/dev/voluspa
timeout: 30s
history: /tmp/rollcall.db
`
	path := writeTemp(t, content)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(s.Command) != 3 || s.Command[0] != "go" || s.Command[2] != "./announcer" {
		t.Errorf("command: got %v", s.Command)
	}
	if s.Workdir != "~/dev/voluspa" {
		t.Errorf("workdir: got %q", s.Workdir)
	}
	if s.Timeout != 30*time.Second {
		t.Errorf("timeout: got %v, want 30s", s.Timeout)
	}
	if s.History != "/tmp/rollcall.db" {
		t.Errorf("history: got %q", s.History)
	}
}

func TestLoadSettings_RosterOverride(t *testing.T) {
	content := `
roster:
  - Huginn
  - Muninn
`
	path := writeTemp(t, content)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Roster) != 2 || s.Roster[0] != "Huginn" {
		t.Errorf("roster: got %v", s.Roster)
	}
}

func TestLoadSettings_Watch(t *testing.T) {
	content := `
watch:
  paths: ["voluspa.go"]
  debounce: 500ms
  display: minimal
`
	path := writeTemp(t, content)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Watch == nil {
		t.Fatal("watch: got nil")
	}
	if len(s.Watch.Paths) != 1 || s.Watch.Paths[0] != "voluspa.go" {
		t.Errorf("watch paths: got %v", s.Watch.Paths)
	}
	if s.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("debounce: got %v, want 500ms", s.Watch.Debounce)
	}
	if s.Watch.Display != "minimal" {
		t.Errorf("display: got %q, want minimal", s.Watch.Display)
	}
}

func TestLoadSettings_Partial(t *testing.T) {
	path := writeTemp(t, `workdir: /srv/announcer`)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Workdir != "/srv/announcer" {
		t.Errorf("workdir: got %q", s.Workdir)
	}
	if len(s.Command) != 0 {
		t.Errorf("command: got %v, want empty", s.Command)
	}
	if s.Timeout != 0 {
		t.Errorf("timeout: got %v, want 0", s.Timeout)
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(s.Command) != 0 {
		t.Errorf("expected zero-value settings, got command=%v", s.Command)
	}
}

func TestLoadSettings_InvalidYAML(t *testing.T) {
	path := writeTemp(t, "command: [invalid\n")
	_, err := LoadSettings(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rollcall.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
