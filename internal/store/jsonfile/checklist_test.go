package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/trip"
)

func sampleSnapshot(t *testing.T) trip.Snapshot {
	t.Helper()

	kind, err := catalog.NewKind(catalog.CategoryTransport, "train")
	require.NoError(t, err)

	due := time.Date(2026, 11, 5, 0, 0, 0, 0, time.UTC)
	return trip.Snapshot{
		Tasks: []trip.Task{
			{
				ID:          "b",
				Text:        "Book night train",
				CreatedAt:   time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
				Destination: "Vienna",
				Kind:        kind,
				Priority:    trip.PriorityHigh,
				DueDate:     &due,
			},
			{
				ID:          "a",
				Text:        "Passport",
				Completed:   true,
				CreatedAt:   time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
				Destination: "Vienna",
				Kind:        catalog.DefaultKind(catalog.CategoryEssentials),
				Priority:    trip.PriorityMedium,
			},
		},
		Filter: trip.FilterActive,
	}
}

func TestChecklistStore_LoadMissing(t *testing.T) {
	store := NewChecklistStore(filepath.Join(t.TempDir(), FileName), zerolog.Nop())

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Tasks)
	assert.Equal(t, trip.FilterAll, snap.Filter)
}

func TestChecklistStore_LoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	snap, err := NewChecklistStore(path, zerolog.Nop()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Tasks)
}

func TestChecklistStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", FileName)
	store := NewChecklistStore(path, zerolog.Nop())

	want := sampleSnapshot(t)
	require.NoError(t, store.Save(ctx, want))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": 0`)
	assert.Contains(t, string(data), `"subCategory": "train"`)
}

func TestChecklistStore_ReadsOriginalLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	raw := `{"state":{"todos":[{"id":"1","text":"Hostel","completed":false,"createdAt":"2026-10-01T10:00:00.000Z","destination":"Porto","category":"accommodation","subCategory":"hostel","priority":"low"}],"filter":"all"},"version":0}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	snap, err := NewChecklistStore(path, zerolog.Nop()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "Hostel", snap.Tasks[0].Text)
	assert.Equal(t, catalog.SubCategory("hostel"), snap.Tasks[0].SubCategory())
	assert.Nil(t, snap.Tasks[0].DueDate)
}

func TestChecklistStore_CorruptFileMovedAside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewChecklistStore(path, zerolog.Nop())
	_, err := store.Load(context.Background())
	require.Error(t, err)

	backups, err := filepath.Glob(filepath.Join(dir, FileName+".corrupt.*"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Tasks)
}
