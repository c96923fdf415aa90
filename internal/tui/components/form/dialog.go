package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/trek/internal/core/styles"
)

// filterer is an optional interface for fields that support list filtering.
type filterer interface {
	IsFiltering() bool
}

// validator is an optional interface for fields with input rules.
type validator interface {
	Validate() string
}

// Dialog is a form container that manages focus cycling, submission, and
// cancellation across a set of form fields.
type Dialog struct {
	fields       []Field
	keys         []string // parallel slice: value key for each field
	focusedField int
	submitted    bool
	cancelled    bool
	err          string
	Title        string
}

// NewDialog creates a form dialog with the given fields and value keys.
// The first field is focused automatically.
func NewDialog(title string, fields []Field, keys []string) *Dialog {
	d := &Dialog{
		fields: fields,
		keys:   keys,
		Title:  title,
	}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return d
}

// Update handles key input for the dialog, managing focus cycling and submit/cancel.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d.updateFocusedField(msg)
	}

	switch keyMsg.String() {
	case "tab":
		return d.advanceFocus()
	case "shift+tab":
		return d.retreatFocus()
	case "enter":
		return d.advanceFocus()
	case "ctrl+s":
		return d.submit()
	case "esc":
		if d.isFocusedFieldFiltering() {
			return d.updateFocusedField(msg)
		}
		d.cancelled = true
		return d, nil
	}

	return d.updateFocusedField(msg)
}

// View renders all fields vertically with spacing and help text.
func (d *Dialog) View() string {
	parts := []string{styles.FormTitleStyle.Render(d.Title), ""}
	for i, field := range d.fields {
		if i > 0 {
			parts = append(parts, "")
		}
		parts = append(parts, field.View())
	}

	if d.err != "" {
		parts = append(parts, "", styles.FormErrorStyle.Render(d.err))
	}

	help := styles.FormHelpStyle.Render("tab: next  shift+tab: prev  enter: next/submit  ctrl+s: save  esc: cancel")
	parts = append(parts, "", help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Values returns a map of value keys to field values.
func (d *Dialog) Values() map[string]string {
	result := make(map[string]string, len(d.fields))
	for i, field := range d.fields {
		result[d.keys[i]] = field.Value()
	}
	return result
}

// Field returns the field registered under key.
func (d *Dialog) Field(key string) (Field, bool) {
	for i, k := range d.keys {
		if k == key {
			return d.fields[i], true
		}
	}
	return nil, false
}

// SetError shows msg below the fields and reopens a submitted dialog so
// the user can correct the input.
func (d *Dialog) SetError(msg string) {
	d.err = msg
	d.submitted = false
}

// Err returns the message set by SetError.
func (d *Dialog) Err() string { return d.err }

// Submitted returns whether the form was submitted.
func (d *Dialog) Submitted() bool { return d.submitted }

// Cancelled returns whether the form was cancelled.
func (d *Dialog) Cancelled() bool { return d.cancelled }

func (d *Dialog) focused() Field {
	if len(d.fields) == 0 {
		return nil
	}
	return d.fields[d.focusedField]
}

func (d *Dialog) advanceFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	next := d.focusedField + 1
	if next >= len(d.fields) {
		// Past the last field: submit
		return d.submit()
	}
	return d, d.focusIndex(next)
}

// submit marks the dialog submitted unless a field fails its rules, in
// which case that field is focused and the message shown.
func (d *Dialog) submit() (*Dialog, tea.Cmd) {
	for i, field := range d.fields {
		v, ok := field.(validator)
		if !ok {
			continue
		}
		if msg := v.Validate(); msg != "" {
			d.err = field.Label() + ": " + msg
			return d, d.focusIndex(i)
		}
	}

	d.err = ""
	d.submitted = true
	return d, nil
}

func (d *Dialog) focusIndex(i int) tea.Cmd {
	if i == d.focusedField {
		return nil
	}
	d.fields[d.focusedField].Blur()
	d.focusedField = i
	return d.fields[d.focusedField].Focus()
}

func (d *Dialog) retreatFocus() (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 || d.focusedField == 0 {
		return d, nil
	}

	return d, d.focusIndex(d.focusedField - 1)
}

func (d *Dialog) updateFocusedField(msg tea.Msg) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	var cmd tea.Cmd
	d.fields[d.focusedField], cmd = d.fields[d.focusedField].Update(msg)
	return d, cmd
}

func (d *Dialog) isFocusedFieldFiltering() bool {
	if f, ok := d.focused().(filterer); ok {
		return f.IsFiltering()
	}
	return false
}
