package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/printer"
	"github.com/colonyops/trek/internal/trek"
)

type RmCmd struct {
	flags *Flags
	app   *trek.App
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *trek.App) *RmCmd {
	return &RmCmd{flags: flags, app: app}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "rm",
		Aliases:       []string{"remove"},
		Usage:         "Remove a task",
		UsageText:     "trek rm <id>",
		ShellComplete: TaskIDCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	t, err := resolveArg(cmd.app, c, "trek rm <id>")
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	if cmd.app.Store.Remove(ctx, t.ID) {
		p.Successf("removed %q", t.Text)
	}
	return persistWarning(cmd.app)
}
