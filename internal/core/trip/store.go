package trip

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	// StorageKey names the persisted checklist record.
	StorageKey = "trip-todo-storage"
	// StorageVersion is the envelope version written by this package.
	StorageVersion = 0
)

// Snapshot is the complete persisted checklist state. Tasks are ordered
// newest first.
type Snapshot struct {
	Tasks  []Task
	Filter Filter
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	tasks := make([]Task, len(s.Tasks))
	for i, t := range s.Tasks {
		tasks[i] = t.Clone()
	}
	return Snapshot{Tasks: tasks, Filter: s.Filter}
}

// Persister defines durable storage for the checklist.
type Persister interface {
	// Load returns the stored snapshot. When nothing has been saved yet it
	// returns an empty Snapshot and a nil error.
	Load(ctx context.Context) (Snapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, s Snapshot) error
}

type envelopeState struct {
	Todos  []Task `json:"todos"`
	Filter Filter `json:"filter"`
}

type envelope struct {
	State   envelopeState `json:"state"`
	Version int           `json:"version"`
}

// EncodeSnapshot serializes s into the versioned storage envelope.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	todos := s.Tasks
	if todos == nil {
		todos = []Task{}
	}
	filter := s.Filter
	if filter == "" {
		filter = FilterAll
	}

	data, err := json.MarshalIndent(envelope{
		State:   envelopeState{Todos: todos, Filter: filter},
		Version: StorageVersion,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a storage envelope. Empty input yields an empty
// Snapshot. A missing or unknown filter falls back to FilterAll.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	if len(data) == 0 {
		return Snapshot{Filter: FilterAll}, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if env.Version > StorageVersion {
		return Snapshot{}, fmt.Errorf("decode snapshot: unsupported version %d", env.Version)
	}

	filter := env.State.Filter
	if !filter.IsValid() {
		filter = FilterAll
	}

	return Snapshot{Tasks: env.State.Todos, Filter: filter}, nil
}
