package trip

// Op identifies the kind of change made to the checklist.
type Op string

const (
	OpAdded    Op = "added"
	OpToggled  Op = "toggled"
	OpRemoved  Op = "removed"
	OpEdited   Op = "edited"
	OpFiltered Op = "filtered"
	OpCleared  Op = "cleared"
	OpReloaded Op = "reloaded"
)

// Change describes a completed checklist mutation. TaskID is empty for
// operations that do not target a single task.
type Change struct {
	Op     Op
	TaskID string
}
