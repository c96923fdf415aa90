// Package export renders the trip checklist as a markdown packing list.
package export

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/colonyops/trek/internal/core/catalog"
	"github.com/colonyops/trek/internal/core/styles"
	"github.com/colonyops/trek/internal/core/trip"
)

// Title is the top-level heading of an exported checklist.
const Title = "Trip Checklist"

type group struct {
	destination string
	byCategory  map[catalog.Category][]trip.Task
}

// Markdown renders tasks grouped by destination, then by category in catalog
// order. Destinations sort case-insensitively; tasks keep their given order.
func Markdown(tasks []trip.Task, dateFormat string) string {
	var b strings.Builder

	active := 0
	for _, t := range tasks {
		if !t.Completed {
			active++
		}
	}

	fmt.Fprintf(&b, "# %s\n\n", Title)
	if len(tasks) == 0 {
		b.WriteString("_No travel tasks to display_\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%d of %d items remaining\n", active, len(tasks))

	for _, g := range groupTasks(tasks) {
		fmt.Fprintf(&b, "\n## %s\n", g.destination)
		for _, c := range catalog.Categories() {
			items := g.byCategory[c]
			if len(items) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n### %s %s\n\n", catalog.Icon(c), c.Title())
			for _, t := range items {
				b.WriteString(taskLine(t, dateFormat))
				b.WriteByte('\n')
			}
		}
	}

	return b.String()
}

func groupTasks(tasks []trip.Task) []group {
	index := map[string]int{}
	var groups []group
	for _, t := range tasks {
		key := strings.ToLower(t.Destination)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{
				destination: t.Destination,
				byCategory:  map[catalog.Category][]trip.Task{},
			})
		}
		groups[i].byCategory[t.Category()] = append(groups[i].byCategory[t.Category()], t)
	}

	slices.SortStableFunc(groups, func(a, b group) int {
		return strings.Compare(strings.ToLower(a.destination), strings.ToLower(b.destination))
	})
	return groups
}

func taskLine(t trip.Task, dateFormat string) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}

	meta := []string{
		catalog.SubCategoryLabel(t.Category(), t.SubCategory()),
		t.Priority.Label(),
	}
	if t.DueDate != nil {
		meta = append(meta, "due "+t.DueDate.Format(dateFormat))
	}

	return fmt.Sprintf("- %s %s _(%s)_", box, escape(t.Text), strings.Join(meta, ", "))
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
)

func escape(s string) string {
	return mdEscaper.Replace(s)
}

// Render formats markdown for a terminal of the given width using the active
// theme.
func Render(md string, width int) (string, error) {
	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
