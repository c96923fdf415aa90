package commands

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/core/logging"
	"github.com/colonyops/trek/internal/profiler"
	"github.com/colonyops/trek/internal/store/jsonfile"
	"github.com/colonyops/trek/internal/trek"
	"github.com/colonyops/trek/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *trek.App
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *trek.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("TREK_PROFILER_PORT"),
			Destination: &cmd.flags.ProfilerPort,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	clog := logging.Component("cmd-tui")

	if cmd.flags.ProfilerPort > 0 {
		profServer := profiler.New(cmd.flags.ProfilerPort, log.Logger)
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				clog.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
		clog.Info().
			Str("url", fmt.Sprintf("http://%s/debug/pprof/", profServer.Addr())).
			Msg("profiler endpoint available")
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()

	deps := tui.Deps{
		Store:      cmd.app.Store,
		Defaults:   cmd.app.NewTaskDefaults(),
		DateFormat: cmd.app.Config.DateFormat,
		Log:        log.Logger,
	}

	if path := cmd.app.WatchPath(); path != "" && cmd.app.Config.WatchEnabled() {
		watcher, err := jsonfile.NewFileWatcher(path, log.Logger)
		if err != nil {
			clog.Warn().Err(err).Str("path", path).Msg("cannot watch checklist file")
		} else {
			defer func() { _ = watcher.Close() }()
			deps.Watch = watcher.Watch(watchCtx)
		}
	}

	m := tui.New(ctx, deps)
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
