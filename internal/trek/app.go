package trek

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/config"
	"github.com/colonyops/trek/internal/core/logging"
	"github.com/colonyops/trek/internal/core/trip"
	"github.com/colonyops/trek/internal/data/db"
	"github.com/colonyops/trek/internal/data/stores"
	"github.com/colonyops/trek/internal/store/jsonfile"
)

// App is the central entry point for checklist operations.
// Commands and TUI consume App instead of cherry-picking raw dependencies.
type App struct {
	Store  *TaskStore
	Config *config.Config

	// DB is set for the sqlite backend only.
	DB *db.DB
	// File is set for the json backend only.
	File *jsonfile.ChecklistStore

	log zerolog.Logger
}

// Open builds the persister selected by cfg and loads the checklist.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	app := &App{Config: cfg, log: logging.With(log, "app")}

	var persister trip.Persister
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		database, err := app.openDB()
		if err != nil {
			return nil, err
		}
		app.DB = database
		persister = stores.NewChecklistStore(stores.NewKVStore(database), log)
	default:
		app.File = jsonfile.NewChecklistStore(cfg.ChecklistFile(), log)
		persister = app.File
	}

	app.Store = NewTaskStore(ctx, persister, log)
	return app, nil
}

// openDB opens the sqlite database, moving a corrupt file aside once and
// starting fresh.
func (a *App) openDB() (*db.DB, error) {
	opts := db.DefaultOpenOptions()
	opts.BusyTimeout = a.Config.BusyTimeout()
	opts.Logger = a.log

	database, err := db.Open(a.Config.DataDir, opts)
	if err == nil {
		return database, nil
	}
	if !stores.IsCorruptionError(err) {
		return nil, fmt.Errorf("open database: %w", err)
	}

	backup, rerr := stores.RecoverFromCorruption(a.Config.DataDir)
	if rerr != nil {
		return nil, errors.Join(fmt.Errorf("open database: %w", err), rerr)
	}
	a.log.Warn().Err(err).Str("backup", backup).Msg("database was corrupt, starting with an empty checklist")

	database, err = db.Open(a.Config.DataDir, opts)
	if err != nil {
		return nil, fmt.Errorf("open database after recovery: %w", err)
	}
	return database, nil
}

// WatchPath returns the file that changes when another process edits the
// checklist, or "" when the backend cannot be watched.
func (a *App) WatchPath() string {
	if a.File == nil {
		return ""
	}
	return a.File.Path()
}

// NewTaskDefaults returns the configured preselection for new tasks.
func (a *App) NewTaskDefaults() trip.NewTask {
	c, err := catalog.ParseCategory(a.Config.Defaults.Category)
	if err != nil {
		c = catalog.CategoryEssentials
	}
	p, err := trip.ParsePriority(a.Config.Defaults.Priority)
	if err != nil {
		p = trip.PriorityMedium
	}
	return trip.NewTask{
		Category:    c,
		SubCategory: catalog.Default(c),
		Priority:    p,
	}
}

// Close releases the database, if any.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}
