// Package trip defines the trip checklist domain model: task records,
// priorities, list filters, partial updates, and the persistence contract.
package trip

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/trek/internal/core/catalog"
)

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities returns all priorities from lowest to highest.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Label returns the display label, e.g. "High Priority".
func (p Priority) Label() string {
	if !p.IsValid() {
		return string(p)
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:]) + " Priority"
}

// ParsePriority converts a user supplied string into a Priority.
// An empty string yields PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityMedium, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, s)
	}
	return p, nil
}

// Filter selects which tasks are visible.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters returns the filters in tab order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// IsValid reports whether f is a known filter.
func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Matches reports whether t is visible under f.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// ParseFilter converts a user supplied string into a Filter.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: unknown filter %q (want all, active, completed)", ErrInvalidInput, s)
	}
	return f, nil
}

// Task is a single trip checklist entry. Tasks are values: the store hands
// out copies and replaces records wholesale on every change.
type Task struct {
	ID          string
	Text        string
	Completed   bool
	CreatedAt   time.Time
	Destination string
	Kind        catalog.Kind
	Priority    Priority
	DueDate     *time.Time
}

// Category is shorthand for t.Kind.Category().
func (t Task) Category() catalog.Category { return t.Kind.Category() }

// SubCategory is shorthand for t.Kind.SubCategory().
func (t Task) SubCategory() catalog.SubCategory { return t.Kind.SubCategory() }

// HasDueDate reports whether a due date is set.
func (t Task) HasDueDate() bool { return t.DueDate != nil }

// Clone returns a copy of t that shares no memory with it.
func (t Task) Clone() Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	return t
}

// taskJSON is the persisted field layout of a Task.
type taskJSON struct {
	ID          string              `json:"id"`
	Text        string              `json:"text"`
	Completed   bool                `json:"completed"`
	CreatedAt   time.Time           `json:"createdAt"`
	Destination string              `json:"destination"`
	Category    catalog.Category    `json:"category"`
	SubCategory catalog.SubCategory `json:"subCategory"`
	Priority    Priority            `json:"priority"`
	DueDate     *time.Time          `json:"dueDate,omitempty"`
}

// MarshalJSON encodes the task with category and subCategory as sibling fields.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		ID:          t.ID,
		Text:        t.Text,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		Destination: t.Destination,
		Category:    t.Kind.Category(),
		SubCategory: t.Kind.SubCategory(),
		Priority:    t.Priority,
		DueDate:     t.DueDate,
	})
}

// UnmarshalJSON decodes a task, rejecting category/sub-category pairs the
// catalog does not allow.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	kind, err := catalog.NewKind(raw.Category, raw.SubCategory)
	if err != nil {
		return fmt.Errorf("task %s: %w", raw.ID, err)
	}

	priority := raw.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	*t = Task{
		ID:          raw.ID,
		Text:        raw.Text,
		Completed:   raw.Completed,
		CreatedAt:   raw.CreatedAt,
		Destination: raw.Destination,
		Kind:        kind,
		Priority:    priority,
		DueDate:     raw.DueDate,
	}
	return nil
}
