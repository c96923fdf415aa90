package commands

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/printer"
	"github.com/colonyops/trek/pkg/iojson"
)

type CategoriesCmd struct {
	flags      *Flags
	jsonOutput bool
}

// NewCategoriesCmd creates a new categories command
func NewCategoriesCmd(flags *Flags) *CategoriesCmd {
	return &CategoriesCmd{flags: flags}
}

// Register adds the categories command to the application
func (cmd *CategoriesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "categories",
		Usage:     "List categories and their sub-category options",
		UsageText: "trek categories [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// categoryInfo is the JSON output format for trek categories --json.
type categoryInfo struct {
	Category string           `json:"category"`
	Label    string           `json:"label"`
	Icon     string           `json:"icon"`
	Default  string           `json:"default"`
	Options  []catalog.Option `json:"options"`
}

func (cmd *CategoriesCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.jsonOutput {
		infos := make([]categoryInfo, 0, len(catalog.Categories()))
		for _, cat := range catalog.Categories() {
			infos = append(infos, categoryInfo{
				Category: string(cat),
				Label:    catalog.Label(cat),
				Icon:     catalog.Icon(cat),
				Default:  string(catalog.Default(cat)),
				Options:  catalog.Options(cat),
			})
		}
		return iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, infos)
	}

	p := printer.Ctx(ctx)
	for i, cat := range catalog.Categories() {
		if i > 0 {
			p.Printf("")
		}
		p.Header(catalog.Icon(cat) + " " + string(cat))
		values := make([]string, 0, len(catalog.Options(cat)))
		for _, o := range catalog.Options(cat) {
			values = append(values, string(o.Value))
		}
		p.Printf("%s", strings.Join(values, ", "))
	}
	return nil
}
