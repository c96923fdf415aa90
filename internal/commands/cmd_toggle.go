package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/printer"
	"github.com/colonyops/trek/internal/trek"
)

type ToggleCmd struct {
	flags *Flags
	app   *trek.App
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags, app *trek.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"done"},
		Usage:     "Mark a task done or not done",
		UsageText: "trek toggle <id>",
		Description: `Flips the completed state of a task. The id may be any unique prefix
shown by "trek ls".`,
		ShellComplete: TaskIDCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	t, err := resolveArg(cmd.app, c, "trek toggle <id>")
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	if !cmd.app.Store.Toggle(ctx, t.ID) {
		p.Warnf("task %s no longer exists", shortID(t.ID))
		return nil
	}

	if t.Completed {
		p.Successf("reopened %q", t.Text)
	} else {
		p.Successf("completed %q", t.Text)
	}
	return persistWarning(cmd.app)
}
