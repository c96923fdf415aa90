package form

import (
	"io"

	"charm.land/bubbles/v2/list"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/trek/internal/core/styles"
)

const maxVisibleOptions = 6

// SelectFormField is a single-select form field wrapping list.Model.
type SelectFormField struct {
	list    list.Model
	options []Option
	label   string
	focused bool
}

// selectDelegate renders items in a single-select list.
type selectDelegate struct{}

func (d selectDelegate) Height() int                             { return 1 }
func (d selectDelegate) Spacing() int                            { return 0 }
func (d selectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d selectDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(selectItem)
	if !ok {
		return
	}

	style := styles.TaskTextStyle
	cursor := "  "
	if index == m.Index() {
		style = styles.FormTitleStyle
		cursor = "> "
	}

	_, _ = io.WriteString(w, cursor)
	_, _ = io.WriteString(w, style.Render(item.label))
}

// NewSelectFormField creates a single-select field. defaultVal pre-selects
// the option with that value; otherwise the first option is selected.
func NewSelectFormField(label string, options []Option, defaultVal string) *SelectFormField {
	l := list.New(nil, selectDelegate{}, 40, 1)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowFilter(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.TitleBar = lipgloss.NewStyle()

	l.FilterInput.Prompt = "/ "
	filterStyles := textinput.DefaultStyles(true)
	filterStyles.Focused.Prompt = styles.FormTitleStyle
	filterStyles.Cursor.Color = styles.ColorPrimary
	l.FilterInput.SetStyles(filterStyles)

	f := &SelectFormField{list: l, label: label}
	f.SetOptions(options, defaultVal)
	return f
}

// SetOptions replaces the options. The option whose value is preferred
// stays selected; when it is not offered the first option is selected.
func (f *SelectFormField) SetOptions(options []Option, preferred string) {
	items := make([]list.Item, len(options))
	selected := 0
	for i, opt := range options {
		items[i] = selectItem{label: opt.Label, index: i}
		if opt.Value == preferred {
			selected = i
		}
	}

	f.options = options
	f.list.ResetFilter()
	f.list.SetItems(items)
	f.list.SetHeight(max(min(len(options), maxVisibleOptions), 1))
	f.list.SetShowPagination(len(options) > maxVisibleOptions)
	if len(options) > 0 {
		f.list.Select(selected)
	}
}

func (f *SelectFormField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	var cmd tea.Cmd
	f.list, cmd = f.list.Update(msg)
	return f, cmd
}

func (f *SelectFormField) View() string {
	titleStyle := styles.FormTitleBlurredStyle
	if f.focused {
		titleStyle = styles.FormTitleStyle
	}
	title := titleStyle.Render(f.label)

	var content string
	switch {
	case !f.focused:
		content = lipgloss.JoinVertical(lipgloss.Left, title, "  "+f.selectedLabel())
	case f.list.SettingFilter():
		content = lipgloss.JoinVertical(lipgloss.Left, title, f.list.FilterInput.View(), f.list.View())
	default:
		content = lipgloss.JoinVertical(lipgloss.Left, title, f.list.View())
	}

	borderStyle := styles.FormFieldStyle
	if f.focused {
		borderStyle = styles.FormFieldFocusedStyle
	}

	return borderStyle.Render(content)
}

func (f *SelectFormField) Focus() tea.Cmd {
	f.focused = true
	return nil
}

func (f *SelectFormField) Blur() {
	f.focused = false
}

func (f *SelectFormField) Focused() bool { return f.focused }

func (f *SelectFormField) Value() string {
	if opt, ok := f.selected(); ok {
		return opt.Value
	}
	return ""
}

func (f *SelectFormField) Label() string { return f.label }

// SetLabel replaces the field title.
func (f *SelectFormField) SetLabel(label string) { f.label = label }

// IsFiltering returns whether the list is currently filtering.
func (f *SelectFormField) IsFiltering() bool {
	return f.list.SettingFilter()
}

func (f *SelectFormField) selected() (Option, bool) {
	item := f.list.SelectedItem()
	if item == nil {
		return Option{}, false
	}
	si, ok := item.(selectItem)
	if !ok || si.index < 0 || si.index >= len(f.options) {
		return Option{}, false
	}
	return f.options[si.index], true
}

func (f *SelectFormField) selectedLabel() string {
	if opt, ok := f.selected(); ok {
		return opt.Label
	}
	return ""
}
