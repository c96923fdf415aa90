package tui

import (
	"errors"
	"regexp"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/styles"
	"github.com/colonyops/trek/internal/core/trip"
	"github.com/colonyops/trek/internal/tui/components/form"
)

const (
	fieldText        = "text"
	fieldDestination = "destination"
	fieldCategory    = "category"
	fieldSubCategory = "subCategory"
	fieldPriority    = "priority"
	fieldDue         = "due"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type formValues struct {
	text        string
	destination string
	category    catalog.Category
	subCategory catalog.SubCategory
	priority    trip.Priority
	due         string
}

// taskForm is the add/edit dialog. It keeps the sub-category options in
// step with the selected category.
type taskForm struct {
	dialog       *form.Dialog
	category     *form.SelectFormField
	subCategory  *form.SelectFormField
	lastCategory string
	editID       string
	dateFormat   string
}

func newAddForm(defaults trip.NewTask, dateFormat string) *taskForm {
	return newTaskForm("New Task", formValues{
		category:    defaults.Category,
		subCategory: defaults.SubCategory,
		priority:    defaults.Priority,
	}, dateFormat)
}

func newEditForm(t trip.Task, dateFormat string) *taskForm {
	v := formValues{
		text:        t.Text,
		destination: t.Destination,
		category:    t.Category(),
		subCategory: t.SubCategory(),
		priority:    t.Priority,
	}
	if t.DueDate != nil {
		v.due = t.DueDate.Format(dateFormat)
	}

	f := newTaskForm("Edit Task", v, dateFormat)
	f.editID = t.ID
	return f
}

func newTaskForm(title string, v formValues, dateFormat string) *taskForm {
	text := form.NewTextField("Task", "Book airport transfer", v.text).
		WithValidation(form.FieldValidation{Required: true, MaxLength: 200})
	destination := form.NewTextField("Destination", "Lisbon", v.destination).
		WithValidation(form.FieldValidation{Required: true, MaxLength: 100})

	category := form.NewSelectFormField("Category", categoryOptions(), string(v.category))
	subCategory := form.NewSelectFormField(
		catalog.Label(catalog.Category(category.Value())),
		subCategoryOptions(catalog.Category(category.Value())),
		string(v.subCategory),
	)
	priority := form.NewSelectFormField("Priority", priorityOptions(), string(v.priority))

	dueRules := form.FieldValidation{MaxLength: 32}
	if dateFormat == trip.ISODate {
		dueRules.Pattern = isoDatePattern
		dueRules.Hint = "use YYYY-MM-DD"
	}
	due := form.NewTextField("Due date (optional)", trip.LayoutHint(dateFormat), v.due).WithValidation(dueRules)

	return &taskForm{
		dialog: form.NewDialog(title,
			[]form.Field{text, destination, category, subCategory, priority, due},
			[]string{fieldText, fieldDestination, fieldCategory, fieldSubCategory, fieldPriority, fieldDue},
		),
		category:     category,
		subCategory:  subCategory,
		lastCategory: category.Value(),
		dateFormat:   dateFormat,
	}
}

func categoryOptions() []form.Option {
	cats := catalog.Categories()
	out := make([]form.Option, 0, len(cats))
	for _, c := range cats {
		out = append(out, form.Option{Label: catalog.Icon(c) + " " + c.Title(), Value: string(c)})
	}
	return out
}

func subCategoryOptions(c catalog.Category) []form.Option {
	opts := catalog.Options(c)
	out := make([]form.Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, form.Option{Label: o.Label, Value: string(o.Value)})
	}
	return out
}

func priorityOptions() []form.Option {
	ps := trip.Priorities()
	out := make([]form.Option, 0, len(ps))
	for _, p := range ps {
		out = append(out, form.Option{Label: p.Label(), Value: string(p)})
	}
	return out
}

func (f *taskForm) Update(msg tea.Msg) tea.Cmd {
	_, cmd := f.dialog.Update(msg)
	f.syncSubCategories()
	return cmd
}

// syncSubCategories re-populates the sub-category field after the category
// changed and selects the new category's first option.
func (f *taskForm) syncSubCategories() {
	c := f.category.Value()
	if c == f.lastCategory {
		return
	}
	f.lastCategory = c
	f.subCategory.SetLabel(catalog.Label(catalog.Category(c)))
	f.subCategory.SetOptions(subCategoryOptions(catalog.Category(c)), string(catalog.Default(catalog.Category(c))))
}

func (f *taskForm) View() string {
	return styles.ModalStyle.Render(f.dialog.View())
}

func (f *taskForm) isEdit() bool { return f.editID != "" }

// newTask converts the dialog values into store input.
func (f *taskForm) newTask() (trip.NewTask, error) {
	v := f.dialog.Values()

	due, err := trip.ParseDue(v[fieldDue], f.dateFormat)
	if err != nil {
		return trip.NewTask{}, err
	}

	return trip.NewTask{
		Text:        v[fieldText],
		Destination: v[fieldDestination],
		Category:    catalog.Category(v[fieldCategory]),
		SubCategory: catalog.SubCategory(v[fieldSubCategory]),
		Priority:    trip.Priority(v[fieldPriority]),
		DueDate:     due,
	}, nil
}

// update converts the dialog values into a full replacement of the editable
// fields.
func (f *taskForm) update() (trip.Update, error) {
	nt, err := f.newTask()
	if err != nil {
		return trip.Update{}, err
	}

	u := trip.Update{
		Text:        &nt.Text,
		Destination: &nt.Destination,
		Category:    &nt.Category,
		SubCategory: &nt.SubCategory,
		Priority:    &nt.Priority,
		DueDate:     nt.DueDate,
	}
	if nt.DueDate == nil {
		u.ClearDueDate = true
	}
	return u, nil
}

// showError reopens the dialog with err shown under the fields.
func (f *taskForm) showError(err error) {
	msg := err.Error()
	if errors.Is(err, trip.ErrInvalidInput) {
		msg = strings.TrimPrefix(msg, trip.ErrInvalidInput.Error()+": ")
	}
	f.dialog.SetError(msg)
}
