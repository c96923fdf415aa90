package tui

import (
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/trip"
	"github.com/colonyops/trek/pkg/tuitest"
)

func focusField(t *testing.T, f *taskForm, n int) {
	t.Helper()
	for range n {
		f.Update(tuitest.KeyCode(tea.KeyTab))
	}
}

func TestTaskForm_CategoryChangeRepopulatesSubCategories(t *testing.T) {
	f := newAddForm(trip.NewTask{Category: catalog.CategoryEssentials, Priority: trip.PriorityMedium}, trip.ISODate)
	require.Equal(t, string(catalog.Default(catalog.CategoryEssentials)), f.subCategory.Value())

	focusField(t, f, 2)
	require.True(t, f.category.Focused())

	// Essentials is first in display order; clothing follows.
	f.Update(tuitest.KeyPress('j'))
	assert.Equal(t, string(catalog.CategoryClothing), f.category.Value())
	assert.Equal(t, "dresses", f.subCategory.Value())
	assert.Equal(t, "Clothing Type", f.subCategory.Label())
}

func TestTaskForm_CategoryChangeResetsSharedSubCategory(t *testing.T) {
	f := newAddForm(trip.NewTask{
		Category:    catalog.CategoryEssentials,
		SubCategory: "accessories",
		Priority:    trip.PriorityMedium,
	}, trip.ISODate)
	require.Equal(t, "accessories", f.subCategory.Value())

	focusField(t, f, 2)
	f.Update(tuitest.KeyPress('j'))

	require.Equal(t, string(catalog.CategoryClothing), f.category.Value())
	assert.Equal(t, "dresses", f.subCategory.Value(), "clothing also offers accessories but the first option is selected")
}

func TestTaskForm_EditPrefillsValues(t *testing.T) {
	kind, err := catalog.NewKind(catalog.CategoryClothing, "outerwear")
	require.NoError(t, err)
	due := time.Date(2026, time.November, 1, 0, 0, 0, 0, time.UTC)

	f := newEditForm(trip.Task{
		ID:          "t1",
		Text:        "Pack boots",
		Destination: "Oslo",
		Kind:        kind,
		Priority:    trip.PriorityHigh,
		DueDate:     &due,
	}, trip.ISODate)

	assert.True(t, f.isEdit())
	assert.Equal(t, map[string]string{
		fieldText:        "Pack boots",
		fieldDestination: "Oslo",
		fieldCategory:    "clothing",
		fieldSubCategory: "outerwear",
		fieldPriority:    "high",
		fieldDue:         "2026-11-01",
	}, f.dialog.Values())

	u, err := f.update()
	require.NoError(t, err)
	assert.Equal(t, "Pack boots", *u.Text)
	require.NotNil(t, u.DueDate)
	assert.False(t, u.ClearDueDate)
}

func TestTaskForm_EmptyDueClearsDate(t *testing.T) {
	f := newAddForm(trip.NewTask{Category: catalog.CategoryPlaces}, trip.ISODate)

	u, err := f.update()
	require.NoError(t, err)
	assert.Nil(t, u.DueDate)
	assert.True(t, u.ClearDueDate)
}

func TestTaskForm_CustomDateFormat(t *testing.T) {
	f := newAddForm(trip.NewTask{Category: catalog.CategoryPlaces}, "02/01/2006")
	focusField(t, f, 5)
	for _, msg := range tuitest.Type("24/12/2026") {
		f.Update(msg)
	}

	nt, err := f.newTask()
	require.NoError(t, err)
	require.NotNil(t, nt.DueDate)
	assert.Equal(t, time.December, nt.DueDate.Month())
	assert.Equal(t, "DD/MM/YYYY", trip.LayoutHint("02/01/2006"))
}

func TestTaskForm_ShowErrorStripsPrefix(t *testing.T) {
	f := newAddForm(trip.NewTask{Category: catalog.CategoryPlaces}, trip.ISODate)

	_, err := trip.NewTask{Text: "x", Category: catalog.CategoryPlaces}.Build("id", time.Time{})
	require.Error(t, err)

	f.showError(err)
	assert.NotContains(t, f.dialog.Err(), "invalid input")
	assert.Contains(t, f.dialog.Err(), "is required")

	f.showError(errors.New("disk full"))
	assert.Equal(t, "disk full", f.dialog.Err())
}
