package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/trip"
	"github.com/colonyops/trek/internal/printer"
	"github.com/colonyops/trek/internal/trek"
)

type EditCmd struct {
	flags *Flags
	app   *trek.App

	input    taskInput
	clearDue bool
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *trek.App) *EditCmd {
	return &EditCmd{flags: flags, app: app}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	flags := append(taskFlags(&cmd.input), &cli.BoolFlag{
		Name:        "clear-due",
		Usage:       "remove the due date",
		Destination: &cmd.clearDue,
	})

	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Change fields of a task",
		UsageText: "trek edit <id> [--text <text>] [--destination <place>] [--category <category>] [options]",
		Description: `Updates only the fields that are passed. Changing --category without
--sub-category selects the new category's first option.

Examples:
  trek edit 3f2a --priority low
  trek edit 3f2a --category transport --sub-category ferry
  trek edit 3f2a --clear-due`,
		Flags:         flags,
		ShellComplete: TaskIDCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	t, err := resolveArg(cmd.app, c, "trek edit <id> [options]")
	if err != nil {
		return err
	}

	u, err := cmd.update(c)
	if err != nil {
		return err
	}
	if u.IsEmpty() {
		return fmt.Errorf("nothing to change; pass at least one field flag")
	}

	found, err := cmd.app.Store.Edit(ctx, t.ID, u)
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	if !found {
		p.Warnf("task %s no longer exists", shortID(t.ID))
		return nil
	}

	p.Successf("updated %s", shortID(t.ID))
	return persistWarning(cmd.app)
}

func (cmd *EditCmd) update(c *cli.Command) (trip.Update, error) {
	in := cmd.input
	var u trip.Update

	if c.IsSet("text") {
		u.Text = trip.Ptr(in.text)
	}
	if c.IsSet("destination") {
		u.Destination = trip.Ptr(in.destination)
	}
	if c.IsSet("category") {
		category, err := catalog.ParseCategory(in.category)
		if err != nil {
			return trip.Update{}, fmt.Errorf("%w: %w", trip.ErrInvalidInput, err)
		}
		u.Category = &category
	}
	if c.IsSet("sub-category") {
		u.SubCategory = trip.Ptr(catalog.SubCategory(in.subCategory))
	}
	if c.IsSet("priority") {
		priority, err := trip.ParsePriority(in.priority)
		if err != nil {
			return trip.Update{}, err
		}
		u.Priority = &priority
	}
	if c.IsSet("due") {
		due, err := trip.ParseDue(in.due, cmd.app.Config.DateFormat)
		if err != nil {
			return trip.Update{}, err
		}
		if due == nil {
			u.ClearDueDate = true
		} else {
			u.DueDate = due
		}
	}
	if cmd.clearDue {
		u.ClearDueDate = true
	}

	return u, nil
}
