package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestSelectFormField(t *testing.T) {
	options := []Option{
		{Label: "Hotel", Value: "hotel"},
		{Label: "Hostel", Value: "hostel"},
		{Label: "Camping", Value: "camping"},
	}

	t.Run("creation with no default", func(t *testing.T) {
		f := NewSelectFormField("Accommodation Type", options, "")
		assert.Equal(t, "Accommodation Type", f.Label())
		assert.False(t, f.Focused())
		assert.Equal(t, "hotel", f.Value())
	})

	t.Run("creation with default value", func(t *testing.T) {
		f := NewSelectFormField("Pick", options, "hostel")
		assert.Equal(t, "hostel", f.Value())
	})

	t.Run("invalid default falls back to first", func(t *testing.T) {
		f := NewSelectFormField("Pick", options, "villa")
		assert.Equal(t, "hotel", f.Value())
	})

	t.Run("empty options", func(t *testing.T) {
		f := NewSelectFormField("Pick", nil, "")
		assert.Empty(t, f.Value())
		assert.Contains(t, f.View(), "Pick")
	})

	t.Run("update ignored when not focused", func(t *testing.T) {
		f := NewSelectFormField("Pick", options, "")
		field, _ := f.Update(tea.KeyPressMsg(tea.Key{Code: 'j', Text: "j"}))
		assert.Equal(t, "hotel", field.Value())
	})

	t.Run("j moves selection when focused", func(t *testing.T) {
		f := NewSelectFormField("Pick", options, "")
		f.Focus()

		field, _ := f.Update(tea.KeyPressMsg(tea.Key{Code: 'j', Text: "j"}))
		assert.Equal(t, "hostel", field.Value())
	})

	t.Run("set options keeps preferred value", func(t *testing.T) {
		f := NewSelectFormField("Pick", options, "camping")
		f.SetOptions([]Option{{Label: "Tent", Value: "tent"}, {Label: "Camping", Value: "camping"}}, f.Value())
		assert.Equal(t, "camping", f.Value())
	})

	t.Run("set options falls back to first", func(t *testing.T) {
		f := NewSelectFormField("Pick", options, "camping")
		f.SetOptions([]Option{{Label: "Flight", Value: "flight"}, {Label: "Ferry", Value: "ferry"}}, f.Value())
		assert.Equal(t, "flight", f.Value())
	})

	t.Run("blurred view shows selected label", func(t *testing.T) {
		f := NewSelectFormField("Pick", options, "hostel")
		assert.Contains(t, f.View(), "Hostel")
		assert.NotContains(t, f.View(), "Camping")
	})
}
