package commands

import (
	"context"
	"fmt"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/styles"
	"github.com/colonyops/trek/internal/core/trip"
	"github.com/colonyops/trek/internal/printer"
	"github.com/colonyops/trek/internal/trek"
	"github.com/colonyops/trek/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *trek.App

	// flags
	filter      string
	destination string
	jsonOutput  bool
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *trek.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List checklist tasks",
		UsageText: "trek ls [--filter all|active|completed] [--destination <glob>] [--json]",
		Description: `Displays the visible tasks, newest first.

Without --filter the saved filter (see "trek filter") is used. --destination
takes a case-insensitive glob such as "os*" or "{oslo,bergen}".

Use --json for one JSON object per line in the storage layout.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "filter to apply (all, active, completed)",
				Destination: &cmd.filter,
			},
			&cli.StringFlag{
				Name:        "destination",
				Aliases:     []string{"d"},
				Usage:       "only tasks whose destination matches the glob",
				Destination: &cmd.destination,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	store := cmd.app.Store

	f := store.Filter()
	if cmd.filter != "" {
		parsed, err := trip.ParseFilter(cmd.filter)
		if err != nil {
			return err
		}
		f = parsed
	}

	tasks, err := matchDestination(store.VisibleTasksFor(f), cmd.destination)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, t := range tasks {
			if err := iojson.WriteLine(out, t); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	p := printer.Ctx(ctx)
	if len(tasks) == 0 {
		p.Infof("No travel tasks to display")
	} else {
		_, _ = lipgloss.Fprintln(out, taskTable(tasks, cmd.app.Config.DateFormat))
	}
	p.Printf("%s", trip.RemainingLabel(store.ActiveCount()))
	return nil
}

// matchDestination keeps tasks whose destination matches pattern,
// ignoring case. An empty pattern keeps everything.
func matchDestination(tasks []trip.Task, pattern string) ([]trip.Task, error) {
	if pattern == "" {
		return tasks, nil
	}

	pattern = strings.ToLower(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: bad destination pattern %q", trip.ErrInvalidInput, pattern)
	}

	out := tasks[:0:0]
	for _, t := range tasks {
		ok, err := doublestar.Match(pattern, strings.ToLower(t.Destination))
		if err != nil {
			return nil, fmt.Errorf("match destination: %w", err)
		}
		if ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func taskTable(tasks []trip.Task, dateFormat string) *table.Table {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "✓"
		}
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format(dateFormat)
		}
		rows = append(rows, []string{
			shortID(t.ID),
			done,
			t.Text,
			t.Destination,
			catalog.Icon(t.Category()) + " " + catalog.SubCategoryLabel(t.Category(), t.SubCategory()),
			string(t.Priority),
			due,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.DividerStyle).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		Headers("ID", "DONE", "TASK", "DESTINATION", "CATEGORY", "PRIORITY", "DUE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().PaddingRight(2)
			switch {
			case row == table.HeaderRow:
				return base.Inherit(styles.CommandHeaderStyle)
			case col == 2 && tasks[row].Completed:
				return base.Inherit(styles.TaskDoneStyle)
			case col == 5:
				return base.Inherit(styles.PriorityStyle(string(tasks[row].Priority)))
			}
			return base
		})
}
