package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rollcall/internal/config"
	"github.com/ppiankov/rollcall/internal/reporter"
	"github.com/ppiankov/rollcall/internal/verify"
)

func newRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Print the names the announcer must call",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSettings(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			roster := cfg.Roster
			if len(roster) == 0 {
				roster = verify.DefaultRoster
			}
			reporter.NewTextReporter(os.Stdout, isTerminal()).PrintRoster(roster)
			return nil
		},
	}
}
