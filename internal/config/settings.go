package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultCommand is the announcer invocation checked when no override is
// configured: the program under test is expected to sit in the working
// directory as a runnable Go file.
var DefaultCommand = []string{"go", "run", "voluspa.go"}

// DefaultHistoryPath is where check outcomes are recorded.
const DefaultHistoryPath = ".rollcall/history.db"

// Settings holds persistent CLI defaults loaded from a config file.
type Settings struct {
	Command []string      `yaml:"command"` // announcer argv
	Workdir string        `yaml:"workdir"` // announcer working directory
	Timeout time.Duration `yaml:"timeout"` // announcer runtime bound
	History string        `yaml:"history"` // history database path; "off" disables

	// Roster override for checking announcer programs with a different
	// cast. Empty means the built-in roster.
	Roster []string `yaml:"roster,omitempty"`

	Watch *WatchConfig `yaml:"watch,omitempty"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Paths    []string      `yaml:"paths,omitempty"`    // files/dirs to watch; default workdir
	Debounce time.Duration `yaml:"debounce,omitempty"` // event coalescing window
	Display  string        `yaml:"display,omitempty"`  // full, minimal, off, auto
}

// LoadSettings reads a YAML config file into Settings.
// If the file does not exist, it returns zero-value Settings and nil error.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &s, nil
}
