package tui

import (
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/trek/internal/core/styles"
)

// Modal represents a confirmation dialog.
type Modal struct {
	title           string
	message         string
	visible         bool
	confirmSelected bool // true = confirm button selected, false = cancel button selected
}

// NewModal creates a new modal with the given title and message. Cancel is
// preselected so a stray enter never deletes anything.
func NewModal(title, message string) Modal {
	return Modal{
		title:   title,
		message: message,
		visible: true,
	}
}

// ToggleSelection switches the selected button.
func (m *Modal) ToggleSelection() {
	m.confirmSelected = !m.confirmSelected
}

// ConfirmSelected returns true if the confirm button is selected.
func (m Modal) ConfirmSelected() bool {
	return m.confirmSelected
}

// Visible returns whether the modal should be displayed.
func (m Modal) Visible() bool {
	return m.visible
}

// View renders the modal box.
func (m Modal) View() string {
	confirmBtn := styles.ModalButtonStyle.Render("Confirm")
	cancelBtn := styles.ModalButtonSelectedStyle.Render("Cancel")
	if m.confirmSelected {
		confirmBtn = styles.ModalButtonSelectedStyle.Render("Confirm")
		cancelBtn = styles.ModalButtonStyle.Render("Cancel")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, confirmBtn, "  ", cancelBtn)
	buttonRow := lipgloss.NewStyle().MarginTop(1).Render(buttons)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		buttonRow,
		styles.ModalHelpStyle.Render("←/→ select  enter choose  y confirm  n/esc cancel"),
	)

	return styles.ModalStyle.Render(content)
}

// Overlay centers the modal over the full screen area.
func (m Modal) Overlay(background string, width, height int) string {
	if !m.visible {
		return background
	}

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		m.View(),
	)
}
