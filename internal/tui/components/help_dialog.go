// Package components provides reusable TUI components.
package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/trek/internal/core/styles"
)

// HelpSection groups key bindings under a heading.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog lists key bindings grouped by section. Disabled bindings are
// left out.
type HelpDialog struct {
	title    string
	sections []HelpSection
}

// NewHelpDialog creates a help dialog.
func NewHelpDialog(title string, sections ...HelpSection) *HelpDialog {
	return &HelpDialog{title: title, sections: sections}
}

func (h *HelpDialog) keyWidth() int {
	w := 0
	for _, s := range h.sections {
		for _, b := range s.Bindings {
			if b.Enabled() {
				w = max(w, lipgloss.Width(b.Help().Key))
			}
		}
	}
	return w
}

// View renders the dialog box.
func (h *HelpDialog) View() string {
	keyWidth := h.keyWidth()

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(h.title))

	for _, s := range h.sections {
		var rows []string
		for _, binding := range s.Bindings {
			if !binding.Enabled() {
				continue
			}
			help := binding.Help()
			pad := Pad(keyWidth - lipgloss.Width(help.Key) + 2)
			rows = append(rows, styles.CommandHeaderStyle.Render(help.Key)+pad+styles.TaskTextStyle.Render(help.Desc))
		}
		if len(rows) == 0 {
			continue
		}

		b.WriteString("\n\n")
		if s.Title != "" {
			b.WriteString(styles.FormTitleStyle.Render(s.Title) + "\n")
		}
		b.WriteString(strings.Join(rows, "\n"))
	}

	b.WriteString("\n" + styles.ModalHelpStyle.Render("esc/? close"))
	return styles.ModalStyle.Render(b.String())
}

// Overlay draws the dialog centered over background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	box := h.View()
	x := max((width-lipgloss.Width(box))/2, 0)
	y := max((height-lipgloss.Height(box))/2, 0)

	return lipgloss.NewCompositor(
		lipgloss.NewLayer(background),
		lipgloss.NewLayer(box).X(x).Y(y).Z(1),
	).Render()
}
