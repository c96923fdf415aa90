package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/core/trip"
	"github.com/colonyops/trek/internal/printer"
	"github.com/colonyops/trek/internal/trek"
)

type FilterCmd struct {
	flags *Flags
	app   *trek.App
}

// NewFilterCmd creates a new filter command
func NewFilterCmd(flags *Flags, app *trek.App) *FilterCmd {
	return &FilterCmd{flags: flags, app: app}
}

// Register adds the filter command to the application
func (cmd *FilterCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "filter",
		Usage:     "Show or set the saved list filter",
		UsageText: "trek filter [all|active|completed]",
		Description: `Without an argument prints the saved filter. With one, saves it; "trek ls"
and the TUI start from the saved filter.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *FilterCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)
	store := cmd.app.Store

	if c.NArg() == 0 {
		p.Printf("%s", store.Filter())
		return nil
	}

	f, err := trip.ParseFilter(c.Args().First())
	if err != nil {
		return err
	}
	if err := store.SetFilter(ctx, f); err != nil {
		return err
	}

	p.Successf("filter set to %s (%d shown)", f, len(store.VisibleTasks()))
	return persistWarning(cmd.app)
}
