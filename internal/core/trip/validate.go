package trip

import (
	"fmt"
	"strings"
	"time"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/trek/internal/core/catalog"
)

// NewTask holds the user input for creating a task.
type NewTask struct {
	Text        string
	Destination string
	Category    catalog.Category
	SubCategory catalog.SubCategory // empty selects the category default
	Priority    Priority            // empty selects PriorityMedium
	DueDate     *time.Time
}

// Build validates the input and returns a new, not yet completed Task with
// the given id and creation time. Text and destination are trimmed.
func (n NewTask) Build(id string, createdAt time.Time) (Task, error) {
	var errs criterio.FieldErrorsBuilder

	text := strings.TrimSpace(n.Text)
	if text == "" {
		errs = errs.Append("text", fmt.Errorf("is required"))
	}

	destination := strings.TrimSpace(n.Destination)
	if destination == "" {
		errs = errs.Append("destination", fmt.Errorf("is required"))
	}

	kind, err := catalog.NewKind(n.Category, n.SubCategory)
	if err != nil {
		errs = errs.Append("category", err)
	}

	priority := n.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.IsValid() {
		errs = errs.Append("priority", fmt.Errorf("unknown priority %q", priority))
	}

	if err := errs.ToError(); err != nil {
		return Task{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	t := Task{
		ID:          id,
		Text:        text,
		CreatedAt:   createdAt,
		Destination: destination,
		Kind:        kind,
		Priority:    priority,
		DueDate:     normalizeDue(n.DueDate),
	}
	return t, nil
}

// Validate checks the invariants every stored task must hold.
func (t Task) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if strings.TrimSpace(t.Text) == "" {
		errs = errs.Append("text", fmt.Errorf("is required"))
	}
	if strings.TrimSpace(t.Destination) == "" {
		errs = errs.Append("destination", fmt.Errorf("is required"))
	}
	if t.Kind.IsZero() {
		errs = errs.Append("category", fmt.Errorf("is required"))
	} else if !catalog.Valid(t.Kind.Category(), t.Kind.SubCategory()) {
		errs = errs.Append("subCategory", catalog.ErrInvalidSubCategory)
	}
	if !t.Priority.IsValid() {
		errs = errs.Append("priority", fmt.Errorf("unknown priority %q", t.Priority))
	}

	if err := errs.ToError(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// normalizeDue copies d and strips location and monotonic data so stored
// due dates compare equal after a storage round-trip.
func normalizeDue(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	v := d.UTC()
	return &v
}
