package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/printer"
	"github.com/colonyops/trek/internal/trek"
)

type ClearCmd struct {
	flags *Flags
	app   *trek.App
}

// NewClearCmd creates a new clear command
func NewClearCmd(flags *Flags, app *trek.App) *ClearCmd {
	return &ClearCmd{flags: flags, app: app}
}

// Register adds the clear command to the application
func (cmd *ClearCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "clear",
		Usage:     "Remove all completed tasks",
		UsageText: "trek clear",
		Action:    cmd.run,
	})

	return app
}

func (cmd *ClearCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	n := cmd.app.Store.ClearCompleted(ctx)
	switch n {
	case 0:
		p.Infof("no completed tasks to clear")
		return nil
	case 1:
		p.Successf("cleared 1 completed task")
	default:
		p.Successf("cleared %d completed tasks", n)
	}
	return persistWarning(cmd.app)
}
