// Package jsonfile implements checklist persistence and change watching on
// top of a single JSON file.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/trek/internal/core/logging"
	"github.com/colonyops/trek/internal/core/trip"
)

// FileName is the checklist file name inside the data directory.
const FileName = trip.StorageKey + ".json"

// ChecklistStore implements trip.Persister using a JSON file.
type ChecklistStore struct {
	path string
	log  zerolog.Logger
	mu   sync.Mutex
}

var _ trip.Persister = (*ChecklistStore)(nil)

// NewChecklistStore creates a store backed by the file at path.
func NewChecklistStore(path string, log zerolog.Logger) *ChecklistStore {
	return &ChecklistStore{
		path: path,
		log:  logging.With(log, "jsonfile"),
	}
}

// Path returns the backing file path.
func (s *ChecklistStore) Path() string {
	return s.path
}

// Load reads the checklist file. A missing or empty file yields an empty
// snapshot. A file that cannot be decoded is moved aside and reported.
func (s *ChecklistStore) Load(_ context.Context) (trip.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return trip.Snapshot{Filter: trip.FilterAll}, nil
		}
		return trip.Snapshot{}, err
	}

	snap, err := trip.DecodeSnapshot(data)
	if err != nil {
		backup, berr := s.backupCorrupt()
		if berr != nil {
			return trip.Snapshot{}, fmt.Errorf("%w (backup failed: %w)", err, berr)
		}
		s.log.Warn().Err(err).Str("backup", backup).Msg("checklist file unreadable, moved aside")
		return trip.Snapshot{}, fmt.Errorf("%w (moved to %s)", err, backup)
	}

	return snap, nil
}

// Save writes the checklist file atomically.
func (s *ChecklistStore) Save(_ context.Context, snap trip.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := trip.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	s.log.Debug().Int("tasks", len(snap.Tasks)).Msg("checklist saved")
	return nil
}

// backupCorrupt renames the checklist file to <path>.corrupt.<timestamp>.
func (s *ChecklistStore) backupCorrupt() (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	backup := fmt.Sprintf("%s.corrupt.%s", s.path, timestamp)

	if err := os.Rename(s.path, backup); err != nil {
		return "", fmt.Errorf("failed to backup corrupted checklist: %w", err)
	}
	return backup, nil
}
