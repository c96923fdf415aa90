package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/trek/pkg/tuitest"
)

func TestModal_NewDefaults(t *testing.T) {
	m := NewModal("Delete task", "Remove \"Book hotel\"?")
	assert.True(t, m.Visible())
	assert.False(t, m.ConfirmSelected())
	assert.Equal(t, "Delete task", m.title)
}

func TestModal_Overlay_NotVisible(t *testing.T) {
	m := Modal{}
	bg := "background content"
	assert.Equal(t, bg, m.Overlay(bg, 80, 24))
}

func TestModal_ToggleSelection(t *testing.T) {
	m := NewModal("", "")

	m.ToggleSelection()
	assert.True(t, m.ConfirmSelected())

	m.ToggleSelection()
	assert.False(t, m.ConfirmSelected())
}

func TestModal_Overlay_RendersContent(t *testing.T) {
	m := NewModal("Clear completed", "Remove 2 completed tasks?")
	out := tuitest.StripANSI(m.Overlay("bg", 80, 24))

	assert.Contains(t, out, "Clear completed")
	assert.Contains(t, out, "Remove 2 completed tasks?")
	assert.Contains(t, out, "Confirm")
	assert.Contains(t, out, "Cancel")
}
