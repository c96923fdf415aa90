// Package trek wires the trip checklist services consumed by the CLI and TUI.
package trek

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/trek/internal/core/logging"
	"github.com/colonyops/trek/internal/core/trip"
)

// TaskStore owns the in-memory checklist and keeps it in sync with a
// trip.Persister. All methods are safe for concurrent use. Readers receive
// copies; the internal slice is never exposed.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  []trip.Task
	filter trip.Filter
	// loadErr holds the last load failure. Saves are refused while it is
	// set so an unreadable record is never overwritten.
	loadErr error

	persister trip.Persister
	log       zerolog.Logger

	now   func() time.Time
	newID func() string

	hooksMu        sync.RWMutex
	subs           map[int]func(trip.Change)
	nextSub        int
	onPersistError []func(error)
	lastPersistErr error
}

// NewTaskStore creates a store and loads the persisted checklist. A load
// failure is logged and the store starts empty, but nothing is saved until
// Reload succeeds.
func NewTaskStore(ctx context.Context, persister trip.Persister, log zerolog.Logger) *TaskStore {
	s := &TaskStore{
		filter:    trip.FilterAll,
		persister: persister,
		log:       logging.With(log, "task-store"),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
		subs:      make(map[int]func(trip.Change)),
	}

	snap, err := persister.Load(ctx)
	if err != nil {
		s.loadErr = fmt.Errorf("%w: load: %w", trip.ErrPersistence, err)
		s.setPersistError(s.loadErr)
		s.reportPersistError(ctx, s.loadErr)
		return s
	}
	s.replace(snap)
	return s
}

func (s *TaskStore) replace(snap trip.Snapshot) {
	s.tasks = snap.Clone().Tasks
	s.filter = snap.Filter
	if !s.filter.IsValid() {
		s.filter = trip.FilterAll
	}
}

// Add validates input and prepends a new task.
func (s *TaskStore) Add(ctx context.Context, input trip.NewTask) (trip.Task, error) {
	task, err := input.Build(s.newID(), s.now())
	if err != nil {
		return trip.Task{}, err
	}

	ctx = logging.WithTaskID(ctx, task.ID)

	s.mu.Lock()
	s.tasks = append([]trip.Task{task}, s.tasks...)
	perr := s.persistLocked(ctx)
	s.mu.Unlock()
	s.reportPersistError(ctx, perr)

	s.log.Debug().Ctx(ctx).Str("category", string(task.Category())).Msg("task added")
	s.notify(trip.Change{Op: trip.OpAdded, TaskID: task.ID})
	return task.Clone(), nil
}

// Toggle flips the completion flag of the task with id. It reports false
// when no such task exists.
func (s *TaskStore) Toggle(ctx context.Context, id string) bool {
	ctx = logging.WithTaskID(ctx, id)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	t := s.tasks[idx].Clone()
	t.Completed = !t.Completed
	s.tasks[idx] = t
	perr := s.persistLocked(ctx)
	s.mu.Unlock()
	s.reportPersistError(ctx, perr)

	s.notify(trip.Change{Op: trip.OpToggled, TaskID: id})
	return true
}

// Remove deletes the task with id. It reports false when no such task exists.
func (s *TaskStore) Remove(ctx context.Context, id string) bool {
	ctx = logging.WithTaskID(ctx, id)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	tasks := make([]trip.Task, 0, len(s.tasks)-1)
	tasks = append(tasks, s.tasks[:idx]...)
	tasks = append(tasks, s.tasks[idx+1:]...)
	s.tasks = tasks
	perr := s.persistLocked(ctx)
	s.mu.Unlock()
	s.reportPersistError(ctx, perr)

	s.notify(trip.Change{Op: trip.OpRemoved, TaskID: id})
	return true
}

// Edit applies u to the task with id. It returns false with a nil error when
// no such task exists. An invalid result leaves the task unchanged.
func (s *TaskStore) Edit(ctx context.Context, id string, u trip.Update) (bool, error) {
	ctx = logging.WithTaskID(ctx, id)

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}

	updated, err := u.Apply(s.tasks[idx])
	if err != nil {
		s.mu.Unlock()
		return true, err
	}
	s.tasks[idx] = updated
	perr := s.persistLocked(ctx)
	s.mu.Unlock()
	s.reportPersistError(ctx, perr)

	s.notify(trip.Change{Op: trip.OpEdited, TaskID: id})
	return true, nil
}

// SetFilter replaces the current filter.
func (s *TaskStore) SetFilter(ctx context.Context, f trip.Filter) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: unknown filter %q", trip.ErrInvalidInput, f)
	}

	s.mu.Lock()
	s.filter = f
	perr := s.persistLocked(ctx)
	s.mu.Unlock()
	s.reportPersistError(ctx, perr)

	s.notify(trip.Change{Op: trip.OpFiltered})
	return nil
}

// ClearCompleted removes every completed task and returns how many were
// removed. Remaining tasks keep their order.
func (s *TaskStore) ClearCompleted(ctx context.Context) int {
	s.mu.Lock()
	kept := make([]trip.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		s.mu.Unlock()
		return 0
	}
	s.tasks = kept
	perr := s.persistLocked(ctx)
	s.mu.Unlock()
	s.reportPersistError(ctx, perr)

	s.log.Debug().Int("removed", removed).Msg("cleared completed tasks")
	s.notify(trip.Change{Op: trip.OpCleared})
	return removed
}

// Reload replaces the in-memory state with the persisted snapshot. A
// successful reload re-enables saving after a failed load.
func (s *TaskStore) Reload(ctx context.Context) error {
	snap, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: reload: %w", trip.ErrPersistence, err)
	}

	s.mu.Lock()
	s.replace(snap)
	if s.loadErr != nil {
		s.loadErr = nil
		s.setPersistError(nil)
	}
	s.mu.Unlock()

	s.notify(trip.Change{Op: trip.OpReloaded})
	return nil
}

// Filter returns the current filter.
func (s *TaskStore) Filter() trip.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Tasks returns every task, newest first.
func (s *TaskStore) Tasks() []trip.Task {
	return s.VisibleTasksFor(trip.FilterAll)
}

// VisibleTasks returns the tasks matching the current filter, in store order.
func (s *TaskStore) VisibleTasks() []trip.Task {
	return s.VisibleTasksFor(s.Filter())
}

// VisibleTasksFor returns the tasks matching f, in store order.
func (s *TaskStore) VisibleTasksFor(f trip.Filter) []trip.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]trip.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// ActiveCount returns the number of tasks not yet completed.
func (s *TaskStore) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Snapshot returns a copy of the full state.
func (s *TaskStore) Snapshot() trip.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return trip.Snapshot{Tasks: s.tasks, Filter: s.filter}.Clone()
}

// Get returns the task with id.
func (s *TaskStore) Get(id string) (trip.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return trip.Task{}, false
	}
	return s.tasks[idx].Clone(), true
}

// Resolve finds the task whose id equals or starts with prefix. An exact
// match always wins.
func (s *TaskStore) Resolve(prefix string) (trip.Task, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return trip.Task{}, fmt.Errorf("%w: empty id", trip.ErrNotFound)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []trip.Task
	for _, t := range s.tasks {
		id := strings.ToLower(t.ID)
		if id == prefix {
			return t.Clone(), nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return trip.Task{}, fmt.Errorf("%w: %s", trip.ErrNotFound, prefix)
	case 1:
		return matches[0].Clone(), nil
	default:
		return trip.Task{}, fmt.Errorf("%w: %q matches %d tasks", trip.ErrAmbiguous, prefix, len(matches))
	}
}

func (s *TaskStore) indexLocked(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked saves the full state and returns the wrapped failure, if
// any. Callers must hold s.mu and pass the result to reportPersistError
// after unlocking. Failures never roll back the in-memory change.
func (s *TaskStore) persistLocked(ctx context.Context) error {
	if s.loadErr != nil {
		err := fmt.Errorf("%w: save skipped until the checklist loads: %w", trip.ErrPersistence, s.loadErr)
		s.setPersistError(err)
		return err
	}

	snap := trip.Snapshot{Tasks: s.tasks, Filter: s.filter}.Clone()
	if err := s.persister.Save(ctx, snap); err != nil {
		err = fmt.Errorf("%w: save: %w", trip.ErrPersistence, err)
		s.setPersistError(err)
		return err
	}

	s.setPersistError(nil)
	return nil
}
