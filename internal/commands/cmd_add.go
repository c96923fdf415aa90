package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/styles"
	"github.com/colonyops/trek/internal/core/trip"
	"github.com/colonyops/trek/internal/printer"
	"github.com/colonyops/trek/internal/trek"
)

type AddCmd struct {
	flags *Flags
	app   *trek.App

	input taskInput
}

// taskInput holds the raw add/edit values as typed by the user.
type taskInput struct {
	text        string
	destination string
	category    string
	subCategory string
	priority    string
	due         string
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *trek.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task to the checklist",
		UsageText: "trek add [--text <text>] [--destination <place>] [--category <category>] [options]",
		Description: `Adds a new, not yet completed task to the top of the checklist.

When --text or --destination is missing and stdin is a terminal, an
interactive form asks for the remaining fields. The sub-category defaults to
the first option of the chosen category.

Examples:
  trek add --text "Pack boots" --destination Oslo --category clothing --sub-category outerwear --priority high
  trek add --text "Renew passport" --destination Lisbon --due 2026-11-01
  trek add`,
		Flags:  taskFlags(&cmd.input),
		Action: cmd.run,
	})

	return app
}

func taskFlags(in *taskInput) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: "task description", Destination: &in.text},
		&cli.StringFlag{Name: "destination", Aliases: []string{"d"}, Usage: "trip destination", Destination: &in.destination},
		&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "category (" + categoryList() + ")", Destination: &in.category},
		&cli.StringFlag{Name: "sub-category", Aliases: []string{"s"}, Usage: "sub-category option of the category", Destination: &in.subCategory},
		&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "priority (low, medium, high)", Destination: &in.priority},
		&cli.StringFlag{Name: "due", Usage: "due date in the configured date_format or YYYY-MM-DD", Destination: &in.due},
	}
}

func categoryList() string {
	names := make([]string, 0, len(catalog.Categories()))
	for _, c := range catalog.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func (cmd *AddCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)
	in := cmd.input

	defaults := cmd.app.NewTaskDefaults()
	if in.category == "" {
		in.category = string(defaults.Category)
	}
	if in.priority == "" {
		in.priority = string(defaults.Priority)
	}

	if in.text == "" || in.destination == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("%w: --text and --destination are required when stdin is not a terminal", trip.ErrInvalidInput)
		}
		if err := runTaskForm(ctx, &in, "Add travel task", cmd.app.Config.DateFormat); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				p.Infof("cancelled")
				return nil
			}
			return err
		}
	}

	nt, err := in.newTask(cmd.app.Config.DateFormat)
	if err != nil {
		return err
	}

	task, err := cmd.app.Store.Add(ctx, nt)
	if err != nil {
		return err
	}

	p.Successf("added %s %q for %s", shortID(task.ID), task.Text, task.Destination)
	return persistWarning(cmd.app)
}

// newTask converts raw input into a trip.NewTask. Validation of text,
// destination and the category pairing happens in the store.
func (in taskInput) newTask(dateFormat string) (trip.NewTask, error) {
	category, err := catalog.ParseCategory(in.category)
	if err != nil {
		return trip.NewTask{}, fmt.Errorf("%w: %w", trip.ErrInvalidInput, err)
	}
	priority, err := trip.ParsePriority(in.priority)
	if err != nil {
		return trip.NewTask{}, err
	}
	due, err := trip.ParseDue(in.due, dateFormat)
	if err != nil {
		return trip.NewTask{}, err
	}

	return trip.NewTask{
		Text:        in.text,
		Destination: in.destination,
		Category:    category,
		SubCategory: catalog.SubCategory(in.subCategory),
		Priority:    priority,
		DueDate:     due,
	}, nil
}

// runTaskForm fills the missing fields of in with an interactive huh form.
// The sub-category options follow the selected category. Due dates are
// checked against dateFormat, the same layout the flags use.
func runTaskForm(ctx context.Context, in *taskInput, title, dateFormat string) error {
	initialCategory, prefill := catalog.Category(in.category), catalog.SubCategory(in.subCategory)

	categoryOpts := make([]huh.Option[string], 0, len(catalog.Categories()))
	for _, c := range catalog.Categories() {
		categoryOpts = append(categoryOpts, huh.NewOption(catalog.Icon(c)+" "+string(c), string(c)))
	}

	priorityOpts := make([]huh.Option[string], 0, len(trip.Priorities()))
	for _, pr := range trip.Priorities() {
		priorityOpts = append(priorityOpts, huh.NewOption(pr.Label(), string(pr)))
	}

	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("What needs doing?").
				Placeholder("Pack hiking boots").
				Value(&in.text).
				Validate(required("text")),
			huh.NewInput().
				Title("Destination").
				Placeholder("Oslo").
				Value(&in.destination).
				Validate(required("destination")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOpts...).
				Value(&in.category),
			huh.NewSelect[string]().
				TitleFunc(func() string {
					return catalog.Label(catalog.Category(in.category))
				}, &in.category).
				OptionsFunc(func() []huh.Option[string] {
					c := catalog.Category(in.category)
					if c == initialCategory {
						return subCategoryOptions(c, prefill)
					}
					return subCategoryOptions(c, "")
				}, &in.category).
				Value(&in.subCategory),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorityOpts...).
				Value(&in.priority),
			huh.NewInput().
				Title("Due date").
				Description("Optional, "+trip.DueHint(dateFormat)).
				Value(&in.due).
				Validate(dueValidator(dateFormat)),
		),
	).WithTheme(styles.FormTheme())

	return form.RunWithContext(ctx)
}

// dueValidator accepts an empty value or a date in layout or ISO form.
func dueValidator(layout string) func(string) error {
	return func(s string) error {
		_, err := trip.ParseDue(s, layout)
		return err
	}
}

// subCategoryChoice is keep when c offers it, otherwise c's first option.
func subCategoryChoice(c catalog.Category, keep catalog.SubCategory) catalog.SubCategory {
	if catalog.Valid(c, keep) {
		return keep
	}
	return catalog.Default(c)
}

// subCategoryOptions lists c's options with subCategoryChoice selected.
func subCategoryOptions(c catalog.Category, keep catalog.SubCategory) []huh.Option[string] {
	opts := catalog.Options(c)
	selected := subCategoryChoice(c, keep)

	out := make([]huh.Option[string], 0, len(opts))
	for _, o := range opts {
		out = append(out, huh.NewOption(o.Label, string(o.Value)).Selected(o.Value == selected))
	}
	return out
}
