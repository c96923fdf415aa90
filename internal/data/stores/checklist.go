package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/trek/internal/core/kv"
	"github.com/colonyops/trek/internal/core/logging"
	"github.com/colonyops/trek/internal/core/trip"
)

const checklistNamespace = "persist"

// ChecklistStore implements trip.Persister on top of the KV store. The
// snapshot is kept as one envelope document under the storage key.
type ChecklistStore struct {
	kv   *KVStore
	docs *kv.TypedKV[json.RawMessage]
	log  zerolog.Logger
	now  func() time.Time
}

var _ trip.Persister = (*ChecklistStore)(nil)

// NewChecklistStore creates a sqlite-backed checklist persister.
func NewChecklistStore(store *KVStore, log zerolog.Logger) *ChecklistStore {
	return &ChecklistStore{
		kv:   store,
		docs: kv.Scoped[json.RawMessage](store, checklistNamespace),
		log:  logging.With(log, "sqlite"),
		now:  time.Now,
	}
}

// Load returns the stored snapshot, or an empty one when nothing was saved.
// A record that cannot be decoded is copied to a corrupt key and reported.
func (s *ChecklistStore) Load(ctx context.Context) (trip.Snapshot, error) {
	raw, err := s.docs.Get(ctx, trip.StorageKey)
	if err != nil {
		if IsNotFoundError(err) {
			return trip.Snapshot{Filter: trip.FilterAll}, nil
		}
		return trip.Snapshot{}, err
	}

	snap, err := trip.DecodeSnapshot(raw)
	if err != nil {
		backup, berr := s.backupCorrupt(ctx, raw)
		if berr != nil {
			return trip.Snapshot{}, fmt.Errorf("%w (backup failed: %w)", err, berr)
		}
		s.log.Warn().Err(err).Str("backup", backup).Msg("checklist record unreadable, copied aside")
		return trip.Snapshot{}, fmt.Errorf("%w (copied to %s)", err, backup)
	}

	if updated, err := s.kv.UpdatedAt(ctx, s.docs.Key(trip.StorageKey)); err == nil {
		s.log.Debug().Time("saved_at", updated).Int("tasks", len(snap.Tasks)).Msg("checklist loaded")
	}
	return snap, nil
}

// Save replaces the stored snapshot.
func (s *ChecklistStore) Save(ctx context.Context, snap trip.Snapshot) error {
	data, err := trip.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	if err := s.docs.Set(ctx, trip.StorageKey, json.RawMessage(data)); err != nil {
		if IsBusyError(err) {
			return fmt.Errorf("database is locked by another process: %w", err)
		}
		return err
	}
	return nil
}

// backupCorrupt copies raw to <key>.corrupt.<timestamp> and returns the
// full backup key. The original record is left in place.
func (s *ChecklistStore) backupCorrupt(ctx context.Context, raw json.RawMessage) (string, error) {
	name := corruptKey(s.now())
	if err := s.docs.Set(ctx, name, raw); err != nil {
		return "", fmt.Errorf("failed to backup corrupted checklist: %w", err)
	}
	return s.docs.Key(name), nil
}

// corruptKey returns the storage key name a corrupt record is copied to.
func corruptKey(at time.Time) string {
	return trip.StorageKey + ".corrupt." + at.Format("20060102-150405")
}
