package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/styles"
	"github.com/colonyops/trek/internal/core/trip"
)

const (
	headerTitle = "My Trip Todo List"
	emptyText   = "No travel tasks to display"

	// header, tabs, blank line above and below the list, footer.
	chromeLines = 5
)

func (m Model) View() tea.View {
	content := m.renderChecklist()

	switch m.state {
	case stateForm:
		if m.form != nil {
			content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.View())
		}
	case stateConfirming:
		content = m.modal.Overlay(content, m.width, m.height)
	case stateShowingHelp:
		content = m.help.Overlay(content, m.width, m.height)
	}

	content = m.toastView.Overlay(content, m.width, m.height)

	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m Model) renderChecklist() string {
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		styles.TitleStyle.Render(headerTitle),
		"  ",
		styles.CounterStyle.Render(trip.RemainingLabel(m.store.ActiveCount())),
	)

	parts := []string{header, m.renderTabs(), ""}
	parts = append(parts, m.renderRows()...)
	parts = append(parts, "", m.renderFooter())

	return strings.Join(parts, "\n")
}

func (m Model) renderTabs() string {
	current := m.store.Filter()
	tabs := make([]string, 0, len(trip.Filters()))
	for _, f := range trip.Filters() {
		style := styles.TabStyle
		if f == current {
			style = styles.TabActiveStyle
		}
		tabs = append(tabs, style.Render(filterLabel(f)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderRows() []string {
	tasks := m.store.VisibleTasks()
	if len(tasks) == 0 {
		return []string{styles.EmptyStateStyle.Render(emptyText)}
	}

	visible := max(m.height-chromeLines, 1)
	start := max(m.cursor-visible+1, 0)
	end := min(start+visible, len(tasks))

	today := startOfDay(m.now())
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderTask(tasks[i], i == m.cursor, today))
	}
	return rows
}

func (m Model) renderTask(t trip.Task, selected bool, today time.Time) string {
	marker := "  "
	if selected {
		marker = styles.CommandHeaderStyle.Render("› ")
	}

	box := "[ ]"
	textStyle := styles.TaskTextStyle
	if t.Completed {
		box = "[x]"
		textStyle = styles.TaskDoneStyle
	}

	meta := []string{t.Destination, catalog.SubCategoryLabel(t.Category(), t.SubCategory())}
	parts := []string{
		box,
		catalog.Icon(t.Category()),
		textStyle.Render(t.Text),
		styles.TaskMetaStyle.Render(strings.Join(meta, " · ")),
	}

	if t.DueDate != nil {
		dueStyle := styles.DueStyle
		if !t.Completed && t.DueDate.Before(today) {
			dueStyle = styles.DueOverdueStyle
		}
		parts = append(parts, dueStyle.Render("due "+t.DueDate.Format(m.dateFormat)))
	}

	parts = append(parts, styles.PriorityStyle(string(t.Priority)).Render(t.Priority.Label()))

	row := marker + strings.Join(parts, " ")
	if selected {
		return styles.TaskSelectedStyle.Render(row)
	}
	return row
}

func (m Model) renderFooter() string {
	bindings := m.keys.shortHelp()
	items := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		items = append(items, h.Key+" "+h.Desc)
	}
	return styles.HelpStyle.Render(strings.Join(items, "  "))
}

func filterLabel(f trip.Filter) string {
	switch f {
	case trip.FilterActive:
		return "Active"
	case trip.FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
