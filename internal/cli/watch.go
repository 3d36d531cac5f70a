package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ppiankov/rollcall/internal/check"
	"github.com/ppiankov/rollcall/internal/config"
	"github.com/ppiankov/rollcall/internal/reporter"
)

// debounceDefault is the coalescing window for file events.
const debounceDefault = 200 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var (
		workdir  string
		timeout  time.Duration
		paths    []string
		debounce time.Duration
		display  string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the check whenever the announcer's source changes",
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
			if wc := cfg.Watch; wc != nil {
				if !cmd.Flags().Changed("path") && len(wc.Paths) > 0 {
					paths = wc.Paths
				}
				if !cmd.Flags().Changed("debounce") && wc.Debounce > 0 {
					debounce = wc.Debounce
				}
				if !cmd.Flags().Changed("display") && wc.Display != "" {
					display = wc.Display
				}
			}
			return runWatch(cfg, workdir, timeout, paths, debounce, display)
		},
	}

	cmd.Flags().StringVar(&workdir, "workdir", ".", "announcer working directory")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "announcer runtime bound (default from config or 10s)")
	cmd.Flags().StringSliceVar(&paths, "path", nil, "files/dirs to watch (default: workdir)")
	cmd.Flags().DurationVar(&debounce, "debounce", debounceDefault, "file event coalescing window")
	cmd.Flags().StringVar(&display, "display", "auto", "display mode: full (TUI), minimal (lines), off (Yes/No only), auto (detect TTY)")

	return cmd
}

func runWatch(cfg *config.Settings, workdir string, timeout time.Duration, paths []string, debounce time.Duration, display string) error {
	if display == "auto" {
		if isTerminal() {
			display = "full"
		} else {
			display = "minimal"
		}
	}
	if len(paths) == 0 {
		paths = []string{workdir}
	}
	if debounce == 0 {
		debounce = debounceDefault
	}

	params := check.Params{
		Command: announcerCommand(cfg),
		Workdir: workdir,
		Timeout: timeout,
		Roster:  cfg.Roster,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	trigger := make(chan struct{}, 1)
	fire := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}
	fire() // initial check before any file event

	if err := watchPaths(ctx, paths, debounce, fire); err != nil {
		return err
	}

	if display == "full" {
		return runWatchTUI(ctx, cancel, cfg, params, trigger, fire)
	}
	return runWatchPlain(ctx, cfg, params, trigger, display)
}

// watchPaths starts an fsnotify watcher and calls fire after each debounced
// burst of file events on the given paths.
func watchPaths(ctx context.Context, paths []string, debounce time.Duration, fire func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	for _, p := range paths {
		if err := watcher.Add(p); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("watch %s: %w", p, err)
		}
	}

	go func() {
		defer func() { _ = watcher.Close() }()
		timer := time.NewTimer(debounce)
		if !timer.Stop() {
			<-timer.C
		}
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				slog.Debug("file event", "path", ev.Name, "op", ev.Op)
				timer.Reset(debounce)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("watcher error", "error", err)
			case <-timer.C:
				fire()
			}
		}
	}()

	return nil
}

// runWatchPlain prints one line per check: styled in minimal mode, bare
// Yes/No in off mode.
func runWatchPlain(ctx context.Context, cfg *config.Settings, params check.Params, trigger <-chan struct{}, display string) error {
	rep := reporter.NewTextReporter(os.Stdout, isTerminal())

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			out := check.Run(ctx, params)
			recordOutcome(cfg, out)
			if display == "off" {
				fmt.Println(out.Answer())
			} else {
				rep.PrintWatchEvent(out)
			}
		}
	}
}

// runWatchTUI drives the Bubbletea display; checks run in a background
// loop and feed the model through program messages.
func runWatchTUI(ctx context.Context, cancel context.CancelFunc, cfg *config.Settings, params check.Params, trigger <-chan struct{}, fire func()) error {
	model := reporter.NewTUIModel(params.Command, fire, cancel)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		for {
			select {
			case <-ctx.Done():
				p.Quit()
				return
			case <-trigger:
				p.Send(reporter.CheckStartedMsg{})
				out := check.Run(ctx, params)
				recordOutcome(cfg, out)
				p.Send(reporter.CheckDoneMsg{Outcome: out})
			}
		}
	}()

	_, err := p.Run()
	cancel()
	return err
}
