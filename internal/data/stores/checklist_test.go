package stores

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/trip"
)

func TestChecklistStore_Empty(t *testing.T) {
	store := NewChecklistStore(newTestKVStore(t), zerolog.Nop())

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Tasks)
	assert.Equal(t, trip.FilterAll, snap.Filter)
}

func TestChecklistStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	kvs := newTestKVStore(t)
	store := NewChecklistStore(kvs, zerolog.Nop())

	kind, err := catalog.NewKind(catalog.CategoryActivities, "sightseeing")
	require.NoError(t, err)
	due := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	want := trip.Snapshot{
		Tasks: []trip.Task{{
			ID:          "abc",
			Text:        "Book fjord tour",
			CreatedAt:   time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC),
			Destination: "Bergen",
			Kind:        kind,
			Priority:    trip.PriorityLow,
			DueDate:     &due,
		}},
		Filter: trip.FilterCompleted,
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	var env map[string]any
	require.NoError(t, kvs.Get(ctx, "persist:"+trip.StorageKey, &env), "envelope is stored under the namespaced key")
	assert.Contains(t, env, "state")
	assert.EqualValues(t, trip.StorageVersion, env["version"])

	// Overwrite replaces the whole document.
	require.NoError(t, store.Save(ctx, trip.Snapshot{Filter: trip.FilterAll}))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Tasks)
}

func TestChecklistStore_UndecodableRecordIsCopiedAside(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "future version",
			raw:  `{"state":{"todos":[{"id":"1","text":"Passport","destination":"Oslo","category":"essentials","subCategory":"documents","priority":"high"},{"id":"2","text":"Boots","destination":"Oslo","category":"clothing","subCategory":"outerwear","priority":"low"}],"filter":"all"},"version":1}`,
		},
		{
			name: "invalid sub-category",
			raw:  `{"state":{"todos":[{"id":"1","text":"Museum","destination":"Oslo","category":"places","subCategory":"hotel","priority":"low"}],"filter":"all"},"version":0}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kvs := newTestKVStore(t)
			store := NewChecklistStore(kvs, zerolog.Nop())
			at := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
			store.now = func() time.Time { return at }

			key := "persist:" + trip.StorageKey
			require.NoError(t, kvs.Set(ctx, key, json.RawMessage(tt.raw)))

			_, err := store.Load(ctx)
			require.Error(t, err)

			backupKey := "persist:" + trip.StorageKey + ".corrupt.20261019-093000"
			assert.Contains(t, err.Error(), backupKey)

			var backup, original json.RawMessage
			require.NoError(t, kvs.Get(ctx, backupKey, &backup))
			assert.JSONEq(t, tt.raw, string(backup))

			require.NoError(t, kvs.Get(ctx, key, &original), "the record itself is left in place")
			assert.JSONEq(t, tt.raw, string(original))
		})
	}
}
