package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rollcall/internal/config"
	"github.com/ppiankov/rollcall/internal/history"
	"github.com/ppiankov/rollcall/internal/reporter"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent check outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSettings(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			path := historyPath(cfg)
			if path == "" {
				return fmt.Errorf("history is disabled in %s", configFile)
			}

			store, err := history.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			passed, failed, err := store.Stats()
			if err != nil {
				return err
			}

			reporter.NewTextReporter(os.Stdout, isTerminal()).PrintHistory(entries, passed, failed)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "max entries to show")

	return cmd
}
