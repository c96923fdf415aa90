package commands

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/trek/internal/core/trip"
	"github.com/colonyops/trek/internal/trek"
)

// resolveArg returns the task named by the first positional argument.
func resolveArg(app *trek.App, c *cli.Command, usage string) (trip.Task, error) {
	if c.NArg() < 1 {
		return trip.Task{}, fmt.Errorf("usage: %s", usage)
	}

	id := c.Args().First()
	t, err := app.Store.Resolve(id)
	switch {
	case errors.Is(err, trip.ErrNotFound):
		return trip.Task{}, fmt.Errorf("no task matches %q", id)
	case err != nil:
		return trip.Task{}, err
	}
	return t, nil
}

// shortID returns the leading part of a task id used in listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// persistWarning returns an error when the last save failed so the command
// exits non-zero even though the in-memory change was applied.
func persistWarning(app *trek.App) error {
	if err := app.Store.LastPersistError(); err != nil {
		return fmt.Errorf("change applied but not saved: %w", err)
	}
	return nil
}
