package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/commands"
	"github.com/colonyops/trek/internal/core/config"
	"github.com/colonyops/trek/internal/core/logging"
	"github.com/colonyops/trek/internal/core/styles"
	"github.com/colonyops/trek/internal/printer"
	"github.com/colonyops/trek/internal/trek"
	"github.com/colonyops/trek/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// When installed via `go install module@version`, ldflags aren't set
	// so version remains "dev". Fall back to runtime/debug.BuildInfo which
	// Go populates automatically with the module version and VCS metadata.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

// commandsWithoutApp run without opening the checklist.
var commandsWithoutApp = map[string]bool{
	"config":     true,
	"categories": true,
}

func main() {
	ctx := context.Background()

	var (
		logCloser func()
		trekApp   = &trek.App{}
		opened    bool
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "trek",
		Usage:     "Plan what to pack, book and see for a trip",
		UsageText: "trek [global options] command [command options]",
		Description: `Trek keeps a checklist of travel tasks. Each task belongs to a destination
and a category such as accommodation, transport or clothing, and can carry a
priority and a due date.

Run 'trek' with no arguments to open the interactive checklist.
Run 'trek add' to add a task from the command line.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("TREK_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/trek.log)",
				Sources:     cli.EnvVars("TREK_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("TREK_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("TREK_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			// Always log to a file; use explicit path or default to <datadir>/trek.log
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "trek.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile, logging.ContextHook{})
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			name := c.Args().First()
			ctx = logging.WithCommand(ctx, name)
			ctx = printer.NewContext(ctx, printer.New(c.Root().Writer))

			cfg, err := config.Parse(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			if commandsWithoutApp[name] {
				return ctx, nil
			}

			if err := cfg.Validate(); err != nil {
				return ctx, fmt.Errorf("invalid config (run 'trek config validate'): %w", err)
			}

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.TUI.Theme)
			styles.SetTheme(palette)

			a, err := trek.Open(ctx, cfg, log.Logger)
			if err != nil {
				return ctx, fmt.Errorf("open checklist: %w", err)
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*trekApp = *a
			opened = true

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if opened {
				if err := trekApp.Close(); err != nil {
					log.Error().Err(err).Msg("failed to close checklist")
					return err
				}
			}

			// Close log file
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags, trekApp)

	app = commands.NewAddCmd(flags, trekApp).Register(app)
	app = commands.NewLsCmd(flags, trekApp).Register(app)
	app = commands.NewToggleCmd(flags, trekApp).Register(app)
	app = commands.NewEditCmd(flags, trekApp).Register(app)
	app = commands.NewRmCmd(flags, trekApp).Register(app)
	app = commands.NewFilterCmd(flags, trekApp).Register(app)
	app = commands.NewClearCmd(flags, trekApp).Register(app)
	app = commands.NewExportCmd(flags, trekApp).Register(app)
	app = commands.NewImportCmd(flags, trekApp).Register(app)
	app = commands.NewCategoriesCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'trek --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
