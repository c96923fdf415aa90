package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/trek/internal/core/export"
	"github.com/colonyops/trek/internal/trek"
	"github.com/colonyops/trek/pkg/iojson"
)

const defaultRenderWidth = 80

type ExportCmd struct {
	flags *Flags
	app   *trek.App

	format string
	raw    bool
}

// NewExportCmd creates a new export command
func NewExportCmd(flags *Flags, app *trek.App) *ExportCmd {
	return &ExportCmd{flags: flags, app: app}
}

// Register adds the export command to the application
func (cmd *ExportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "export",
		Usage:     "Export the checklist as a packing list",
		UsageText: "trek export [--format markdown|json] [--raw]",
		Description: `Writes every task, grouped by destination and category.

Markdown is rendered for the terminal when stdout is a TTY; pass --raw or
redirect the output to get plain markdown. JSON uses the storage layout.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (markdown, json)",
				Value:       "markdown",
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "never render markdown",
				Destination: &cmd.raw,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *ExportCmd) run(_ context.Context, c *cli.Command) error {
	out := c.Root().Writer

	switch cmd.format {
	case "json":
		return iojson.WriteWith(out, c.Root().ErrWriter, cmd.app.Store.Snapshot().Tasks)
	case "markdown", "md":
	default:
		return fmt.Errorf("unknown format %q (want markdown or json)", cmd.format)
	}

	md := export.Markdown(cmd.app.Store.Tasks(), cmd.app.Config.DateFormat)

	width, tty := terminalWidth(out)
	if cmd.raw || !tty {
		_, err := io.WriteString(out, md)
		return err
	}

	rendered, err := export.Render(md, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// terminalWidth reports whether w is a terminal and, if so, its width.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = defaultRenderWidth
	}
	return min(width, 120), true
}
