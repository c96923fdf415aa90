package trek

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/config"
	"github.com/colonyops/trek/internal/core/trip"
	"github.com/colonyops/trek/internal/data/db"
	"github.com/colonyops/trek/internal/data/stores"
)

func testConfig(t *testing.T, backend config.Backend) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Storage.Backend = backend
	return &cfg
}

func TestOpen_Backends(t *testing.T) {
	for _, backend := range []config.Backend{config.BackendJSON, config.BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, backend)

			app, err := Open(ctx, cfg, zerolog.Nop())
			require.NoError(t, err)

			_, err = app.Store.Add(ctx, trip.NewTask{
				Text:        "Pack boots",
				Destination: "Oslo",
				Category:    catalog.CategoryClothing,
				SubCategory: "outerwear",
				Priority:    trip.PriorityHigh,
			})
			require.NoError(t, err)
			require.NoError(t, app.Store.LastPersistError())
			require.NoError(t, app.Close())

			reopened, err := Open(ctx, cfg, zerolog.Nop())
			require.NoError(t, err)
			t.Cleanup(func() { _ = reopened.Close() })

			tasks := reopened.Store.Tasks()
			require.Len(t, tasks, 1)
			assert.Equal(t, "Pack boots", tasks[0].Text)
			assert.Equal(t, catalog.SubCategory("outerwear"), tasks[0].SubCategory())
		})
	}
}

func TestOpen_WatchPath(t *testing.T) {
	ctx := context.Background()

	jsonApp, err := Open(ctx, testConfig(t, config.BackendJSON), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, jsonApp.Config.ChecklistFile(), jsonApp.WatchPath())
	assert.Nil(t, jsonApp.DB)

	sqlApp, err := Open(ctx, testConfig(t, config.BackendSQLite), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlApp.Close() })
	assert.Empty(t, sqlApp.WatchPath())
	assert.NotNil(t, sqlApp.DB)
}

func TestOpen_RecoversCorruptDatabase(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))

	garbage := make([]byte, 4096)
	for i := range garbage {
		garbage[i] = 0xAB
	}
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, db.FileName), garbage, 0o644))

	app, err := Open(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Empty(t, app.Store.Tasks())

	matches, err := filepath.Glob(filepath.Join(cfg.DataDir, db.FileName+".corrupt.*"))
	require.NoError(t, err)
	assert.NotEmpty(t, matches)
}

func TestOpen_UnreadableRecordIsNotOverwritten(t *testing.T) {
	const record = `{"state":{"todos":[` +
		`{"id":"1","text":"Passport","completed":false,"createdAt":"2026-10-01T10:00:00Z","destination":"Oslo","category":"essentials","subCategory":"documents","priority":"high"},` +
		`{"id":"2","text":"Boots","completed":false,"createdAt":"2026-10-01T10:05:00Z","destination":"Oslo","category":"clothing","subCategory":"outerwear","priority":"low"}` +
		`],"filter":"all"},"version":1}`

	addOne := func(t *testing.T, app *App) {
		t.Helper()
		_, err := app.Store.Add(context.Background(), trip.NewTask{
			Text:        "Sunscreen",
			Destination: "Oslo",
			Category:    catalog.CategoryEssentials,
		})
		require.NoError(t, err)
		require.ErrorIs(t, app.Store.LastPersistError(), trip.ErrPersistence)
	}

	t.Run("sqlite", func(t *testing.T) {
		ctx := context.Background()
		cfg := testConfig(t, config.BackendSQLite)
		require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))

		seed, err := db.Open(cfg.DataDir, db.DefaultOpenOptions())
		require.NoError(t, err)
		require.NoError(t, stores.NewKVStore(seed).Set(ctx, "persist:"+trip.StorageKey, json.RawMessage(record)))
		require.NoError(t, seed.Close())

		app, err := Open(ctx, cfg, zerolog.Nop())
		require.NoError(t, err)
		assert.Empty(t, app.Store.Tasks())
		addOne(t, app)

		var stored json.RawMessage
		require.NoError(t, stores.NewKVStore(app.DB).Get(ctx, "persist:"+trip.StorageKey, &stored))
		assert.JSONEq(t, record, string(stored))
		require.NoError(t, app.Close())
	})

	t.Run("json", func(t *testing.T) {
		cfg := testConfig(t, config.BackendJSON)
		require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))
		require.NoError(t, os.WriteFile(cfg.ChecklistFile(), []byte(record), 0o644))

		app, err := Open(context.Background(), cfg, zerolog.Nop())
		require.NoError(t, err)
		assert.Empty(t, app.Store.Tasks())
		addOne(t, app)

		assert.NoFileExists(t, cfg.ChecklistFile(), "no save happens after a failed load")
		matches, err := filepath.Glob(cfg.ChecklistFile() + ".corrupt.*")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		backup, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		assert.JSONEq(t, record, string(backup))
	})
}

func TestApp_NewTaskDefaults(t *testing.T) {
	cfg := testConfig(t, config.BackendJSON)
	cfg.Defaults.Category = "places"
	cfg.Defaults.Priority = "low"

	app := &App{Config: cfg}
	got := app.NewTaskDefaults()

	assert.Equal(t, catalog.CategoryPlaces, got.Category)
	assert.Equal(t, catalog.Default(catalog.CategoryPlaces), got.SubCategory)
	assert.Equal(t, trip.PriorityLow, got.Priority)
}
