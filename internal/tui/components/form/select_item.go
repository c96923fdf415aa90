package form

// Option is a selectable value with its display label.
type Option struct {
	Label string
	Value string
}

// selectItem is the list item used by select fields.
type selectItem struct {
	label string
	index int
}

func (i selectItem) FilterValue() string { return i.label }
