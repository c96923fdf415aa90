package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/trek"
)

// TaskIDCompleter returns a ShellCompleteFunc that suggests open task ids as
// positional completions, each followed by its text for shells that show
// descriptions. Completed tasks are offered after open ones.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TaskIDCompleter(app *trek.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args != nil && args.Present() {
			last := args.Slice()[args.Len()-1]
			if strings.HasPrefix(last, "-") {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if app == nil || app.Store == nil {
			return
		}

		w := cmd.Root().Writer
		tasks := app.Store.Tasks()
		for _, done := range []bool{false, true} {
			for _, t := range tasks {
				if t.Completed != done {
					continue
				}
				text := strings.ReplaceAll(t.Text, ":", " ")
				_, _ = fmt.Fprintf(w, "%s:%s\n", shortID(t.ID), text)
			}
		}
	}
}
