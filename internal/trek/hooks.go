package trek

import (
	"context"
	"sort"

	"github.com/colonyops/trek/internal/core/trip"
)

// Subscribe registers fn to receive every completed change. The returned
// function removes the subscription.
func (s *TaskStore) Subscribe(fn func(trip.Change)) func() {
	s.hooksMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.hooksMu.Unlock()

	return func() {
		s.hooksMu.Lock()
		delete(s.subs, id)
		s.hooksMu.Unlock()
	}
}

// OnPersistError registers a hook that fires when loading or saving fails.
func (s *TaskStore) OnPersistError(fn func(error)) {
	s.hooksMu.Lock()
	s.onPersistError = append(s.onPersistError, fn)
	s.hooksMu.Unlock()
}

// LastPersistError returns the error from the most recent failed load or
// save, or nil when the last save succeeded.
func (s *TaskStore) LastPersistError() error {
	s.hooksMu.RLock()
	defer s.hooksMu.RUnlock()
	return s.lastPersistErr
}

func (s *TaskStore) setPersistError(err error) {
	s.hooksMu.Lock()
	s.lastPersistErr = err
	s.hooksMu.Unlock()
}

// reportPersistError logs err and runs the persist error hooks. It must be
// called without s.mu held so hooks can read the store. A nil err is a no-op.
func (s *TaskStore) reportPersistError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	s.log.Warn().Ctx(ctx).Err(err).Msg("checklist persistence failed")

	s.hooksMu.RLock()
	hooks := make([]func(error), len(s.onPersistError))
	copy(hooks, s.onPersistError)
	s.hooksMu.RUnlock()

	for _, fn := range hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error().Interface("panic", r).Msg("persist error hook panicked")
				}
			}()
			fn(err)
		}()
	}
}

// notify delivers c to subscribers in registration order. It must be
// called without s.mu held so listeners can read the store.
func (s *TaskStore) notify(c trip.Change) {
	s.hooksMu.RLock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]func(trip.Change), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, s.subs[id])
	}
	s.hooksMu.RUnlock()

	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error().Interface("panic", r).Str("op", string(c.Op)).Msg("change subscriber panicked")
				}
			}()
			fn(c)
		}()
	}
}
