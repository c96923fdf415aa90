package trip

import (
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/trek/internal/core/catalog"
)

// Update is a partial edit of a task. Nil fields are left unchanged. ID and
// CreatedAt are not editable.
//
// DueDate and ClearDueDate are distinct signals: a nil DueDate leaves the
// current due date alone, while ClearDueDate removes it.
type Update struct {
	Text         *string
	Destination  *string
	Category     *catalog.Category
	SubCategory  *catalog.SubCategory
	Priority     *Priority
	Completed    *bool
	DueDate      *time.Time
	ClearDueDate bool
}

// Ptr returns a pointer to v. Handy for building an Update.
func Ptr[T any](v T) *T { return &v }

// IsEmpty reports whether the update changes nothing.
func (u Update) IsEmpty() bool {
	return u.Text == nil &&
		u.Destination == nil &&
		u.Category == nil &&
		u.SubCategory == nil &&
		u.Priority == nil &&
		u.Completed == nil &&
		u.DueDate == nil &&
		!u.ClearDueDate
}

// Apply returns a copy of t with the update applied. The result is validated;
// on error t is returned unchanged together with an ErrInvalidInput error.
//
// Changing the category without naming a sub-category keeps the current
// sub-category when the new category offers it and otherwise selects the new
// category's first option.
func (u Update) Apply(t Task) (Task, error) {
	if u.DueDate != nil && u.ClearDueDate {
		return t, fmt.Errorf("%w: due date cannot be set and cleared in one update", ErrInvalidInput)
	}

	next := t.Clone()

	if u.Text != nil {
		next.Text = strings.TrimSpace(*u.Text)
	}
	if u.Destination != nil {
		next.Destination = strings.TrimSpace(*u.Destination)
	}

	if u.Category != nil {
		if !u.Category.IsValid() {
			return t, fmt.Errorf("%w: %w: %q", ErrInvalidInput, catalog.ErrUnknownCategory, *u.Category)
		}
		next.Kind = next.Kind.WithCategory(*u.Category)
	}
	if u.SubCategory != nil {
		kind, err := next.Kind.WithSubCategory(*u.SubCategory)
		if err != nil {
			return t, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		next.Kind = kind
	}

	if u.Priority != nil {
		next.Priority = *u.Priority
	}
	if u.Completed != nil {
		next.Completed = *u.Completed
	}

	switch {
	case u.ClearDueDate:
		next.DueDate = nil
	case u.DueDate != nil:
		next.DueDate = normalizeDue(u.DueDate)
	}

	if err := next.Validate(); err != nil {
		return t, err
	}
	return next, nil
}
