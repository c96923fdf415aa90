package trip

import (
	"context"
	"sync"
)

// MemoryPersister keeps the snapshot in memory. It is used in tests and when
// no durable backend is configured. LoadErr and SaveErr inject failures.
type MemoryPersister struct {
	mu       sync.Mutex
	snapshot *Snapshot
	saves    int

	LoadErr error
	SaveErr error
}

var _ Persister = (*MemoryPersister)(nil)

// NewMemoryPersister creates a persister pre-loaded with s. Pass nil to start empty.
func NewMemoryPersister(s *Snapshot) *MemoryPersister {
	p := &MemoryPersister{}
	if s != nil {
		c := s.Clone()
		p.snapshot = &c
	}
	return p
}

func (p *MemoryPersister) Load(_ context.Context) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.LoadErr != nil {
		return Snapshot{}, p.LoadErr
	}
	if p.snapshot == nil {
		return Snapshot{Filter: FilterAll}, nil
	}
	return p.snapshot.Clone(), nil
}

func (p *MemoryPersister) Save(_ context.Context, s Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.SaveErr != nil {
		return p.SaveErr
	}
	c := s.Clone()
	p.snapshot = &c
	p.saves++
	return nil
}

// Saves returns the number of successful saves.
func (p *MemoryPersister) Saves() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}
