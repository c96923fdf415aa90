package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/core/trip"
	"github.com/colonyops/trek/internal/printer"
	"github.com/colonyops/trek/internal/trek"
	"github.com/colonyops/trek/pkg/iojson"
)

type ImportCmd struct {
	flags  *Flags
	app    *trek.App
	reader iojson.FileReader[[]importItem]
}

// importItem is one task in the JSON accepted by trek import.
type importItem struct {
	Text        string `json:"text"`
	Destination string `json:"destination"`
	Category    string `json:"category"`
	SubCategory string `json:"subCategory"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *trek.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Add tasks from a JSON array",
		UsageText: "trek import [-f tasks.json]",
		Description: `Adds each object of a JSON array as a new task, in order. Every item is
validated first; nothing is added when any item is invalid.

Example input:
  [{"text": "Pack boots", "destination": "Oslo", "category": "clothing",
    "subCategory": "outerwear", "priority": "high", "dueDate": "2026-11-01"}]`,
		Flags:  []cli.Flag{cmd.reader.Flag()},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, _ *cli.Command) error {
	items, err := cmd.reader.Read()
	if err != nil {
		return err
	}

	defaults := cmd.app.NewTaskDefaults()
	tasks := make([]trip.NewTask, 0, len(items))
	var errs []error
	for i, item := range items {
		in := taskInput{
			text:        item.Text,
			destination: item.Destination,
			category:    item.Category,
			subCategory: item.SubCategory,
			priority:    item.Priority,
			due:         item.DueDate,
		}
		if in.category == "" {
			in.category = string(defaults.Category)
		}
		nt, err := in.newTask(cmd.app.Config.DateFormat)
		if err == nil {
			_, err = nt.Build("", time.Time{})
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		tasks = append(tasks, nt)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	for _, nt := range tasks {
		if _, err := cmd.app.Store.Add(ctx, nt); err != nil {
			return err
		}
	}

	printer.Ctx(ctx).Successf("imported %d tasks", len(tasks))
	return persistWarning(cmd.app)
}
