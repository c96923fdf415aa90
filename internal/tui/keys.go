package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/colonyops/trek/internal/tui/components"
)

type keyMap struct {
	Up              key.Binding
	Down            key.Binding
	Toggle          key.Binding
	Add             key.Binding
	Edit            key.Binding
	Delete          key.Binding
	ClearCompleted  key.Binding
	NextFilter      key.Binding
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding
	Help            key.Binding
	Quit            key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:              key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:            key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:          key.NewBinding(key.WithKeys("space", "x"), key.WithHelp("space/x", "toggle done")),
		Add:             key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		Edit:            key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit task")),
		Delete:          key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		ClearCompleted:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		NextFilter:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		FilterAll:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "show all")),
		FilterActive:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "show active")),
		FilterCompleted: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "show completed")),
		Help:            key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// shortHelp lists the bindings shown in the footer.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Edit, k.Delete, k.NextFilter, k.Help, k.Quit}
}

func (k keyMap) helpSections() []components.HelpSection {
	return []components.HelpSection{
		{Title: "Navigation", Bindings: []key.Binding{k.Up, k.Down}},
		{Title: "Tasks", Bindings: []key.Binding{k.Toggle, k.Add, k.Edit, k.Delete, k.ClearCompleted}},
		{Title: "Filters", Bindings: []key.Binding{k.NextFilter, k.FilterAll, k.FilterActive, k.FilterCompleted}},
		{Title: "General", Bindings: []key.Binding{k.Help, k.Quit}},
	}
}
