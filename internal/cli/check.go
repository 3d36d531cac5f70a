package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rollcall/internal/check"
	"github.com/ppiankov/rollcall/internal/config"
	"github.com/ppiankov/rollcall/internal/history"
	"github.com/ppiankov/rollcall/internal/invoke"
	"github.com/ppiankov/rollcall/internal/reporter"
)

func newCheckCmd() *cobra.Command {
	var (
		workdir   string
		timeout   time.Duration
		explain   bool
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the announcer once and print Yes or No",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSettings(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("workdir") && cfg.Workdir != "" {
				workdir = cfg.Workdir
			}
			if !cmd.Flags().Changed("timeout") && cfg.Timeout > 0 {
				timeout = cfg.Timeout
			}
			return runCheck(cfg, workdir, timeout, explain, noHistory)
		},
	}

	cmd.Flags().StringVar(&workdir, "workdir", ".", "announcer working directory")
	cmd.Flags().DurationVar(&timeout, "timeout", invoke.DefaultTimeout, "announcer runtime bound")
	cmd.Flags().BoolVar(&explain, "explain", false, "write a diagnostic breakdown to stderr")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this check")

	return cmd
}

func runCheck(cfg *config.Settings, workdir string, timeout time.Duration, explain, noHistory bool) error {
	out := check.Run(context.Background(), check.Params{
		Command: announcerCommand(cfg),
		Workdir: workdir,
		Timeout: timeout,
		Roster:  cfg.Roster,
	})

	if !noHistory {
		recordOutcome(cfg, out)
	}

	if explain {
		reporter.NewTextReporter(os.Stderr, isTerminal()).PrintOutcome(out)
	}

	// the one contractual output line; a negative result is not an error
	fmt.Println(out.Answer())
	return nil
}

// announcerCommand resolves the configured announcer argv.
func announcerCommand(cfg *config.Settings) []string {
	if len(cfg.Command) > 0 {
		return cfg.Command
	}
	return config.DefaultCommand
}

// historyPath resolves the history database location; "" means disabled.
func historyPath(cfg *config.Settings) string {
	switch cfg.History {
	case "off":
		return ""
	case "":
		return config.DefaultHistoryPath
	default:
		return cfg.History
	}
}

// recordOutcome appends the check to the history store. Best-effort:
// failures are logged and never affect the printed result.
func recordOutcome(cfg *config.Settings, out *check.Outcome) {
	path := historyPath(cfg)
	if path == "" {
		return
	}
	store, err := history.Open(path)
	if err != nil {
		slog.Warn("history unavailable", "path", path, "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	if err := store.Record(out.HistoryEntry()); err != nil {
		slog.Warn("history record failed", "error", err)
	}
}
