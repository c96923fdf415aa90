// Package tui implements the interactive trip checklist.
package tui

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/trek/internal/core/logging"
	"github.com/colonyops/trek/internal/core/trip"
	"github.com/colonyops/trek/internal/store/jsonfile"
	"github.com/colonyops/trek/internal/trek"
	"github.com/colonyops/trek/internal/tui/components"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateForm
	stateConfirming
	stateShowingHelp
)

type pendingAction int

const (
	actionNone pendingAction = iota
	actionDelete
	actionClearCompleted
)

const eventBufferSize = 32

// storeChangedMsg relays a completed store mutation.
type storeChangedMsg struct{ change trip.Change }

// persistErrorMsg relays a failed load or save.
type persistErrorMsg struct{ err error }

// fileChangedMsg reports that the storage file changed on disk.
type fileChangedMsg struct{}

// Deps holds what the TUI needs from the application.
type Deps struct {
	Store      *trek.TaskStore
	Defaults   trip.NewTask
	DateFormat string
	// Watch delivers storage file changes. Nil disables reloading.
	Watch <-chan jsonfile.ChangeEvent
	Log   zerolog.Logger
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	ctx        context.Context
	store      *trek.TaskStore
	defaults   trip.NewTask
	dateFormat string
	keys       keyMap
	log        zerolog.Logger
	now        func() time.Time

	state  UIState
	cursor int
	width  int
	height int

	form      *taskForm
	modal     Modal
	pending   pendingAction
	pendingID string
	help      *components.HelpDialog

	toasts    *ToastController
	toastView *ToastView

	events      chan tea.Msg
	watch       <-chan jsonfile.ChangeEvent
	unsubscribe func()
}

// New creates the TUI model and subscribes it to store events.
func New(ctx context.Context, deps Deps) Model {
	keys := defaultKeyMap()
	toasts := NewToastController()
	events := make(chan tea.Msg, eventBufferSize)

	m := Model{
		ctx:        ctx,
		store:      deps.Store,
		defaults:   deps.Defaults,
		dateFormat: deps.DateFormat,
		keys:       keys,
		log:        logging.With(deps.Log, "tui"),
		now:        time.Now,
		width:      80,
		height:     24,
		help:       components.NewHelpDialog("Keyboard Shortcuts", keys.helpSections()...),
		toasts:     toasts,
		toastView:  NewToastView(toasts),
		events:     events,
		watch:      deps.Watch,
	}
	if m.dateFormat == "" {
		m.dateFormat = trip.ISODate
	}

	m.unsubscribe = deps.Store.Subscribe(func(c trip.Change) {
		sendEvent(events, storeChangedMsg{change: c})
	})
	deps.Store.OnPersistError(func(err error) {
		sendEvent(events, persistErrorMsg{err: err})
	})

	if err := deps.Store.LastPersistError(); err != nil {
		toasts.Push(toastWarning, persistMessage(err))
	}

	return m
}

// sendEvent never blocks the store; a full buffer drops the event since
// the view re-reads the store on every render.
func sendEvent(ch chan tea.Msg, msg tea.Msg) {
	select {
	case ch <- msg:
	default:
	}
}

func waitForEvent(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}

func waitForFileChange(ch <-chan jsonfile.ChangeEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// Close stops delivering store events to the model.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForEvent(m.events), waitForFileChange(m.watch)}
	if m.toasts.HasToasts() {
		m.toasts.SetTicking(true)
		cmds = append(cmds, scheduleToastTick())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case storeChangedMsg:
		m.handleChange(msg.change)
		return m, waitForEvent(m.events)

	case persistErrorMsg:
		return m, tea.Batch(waitForEvent(m.events), m.pushToast(toastWarning, persistMessage(msg.err)))

	case fileChangedMsg:
		var cmd tea.Cmd
		if err := m.store.Reload(m.ctx); err != nil {
			m.log.Warn().Err(err).Msg("reload after file change failed")
			cmd = m.pushToast(toastError, "Reload failed: "+err.Error())
		}
		return m, tea.Batch(cmd, waitForFileChange(m.watch))

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state {
		case stateForm:
			return m.handleFormKey(msg)
		case stateConfirming:
			return m.handleConfirmKey(msg)
		case stateShowingHelp:
			return m.handleHelpKey(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}

	if m.state == stateForm && m.form != nil {
		return m, m.form.Update(msg)
	}
	return m, nil
}

func (m Model) handleNormalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.state = stateShowingHelp
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.store.Toggle(m.ctx, t.ID)
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Add):
		m.form = newAddForm(m.defaults, m.dateFormat)
		m.state = stateForm
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			m.form = newEditForm(t, m.dateFormat)
			m.state = stateForm
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.confirm(actionDelete, t.ID, "Delete task", fmt.Sprintf("Delete %q?", t.Text))
		}
	case key.Matches(msg, m.keys.ClearCompleted):
		n := len(m.store.VisibleTasksFor(trip.FilterCompleted))
		if n == 0 {
			return m, m.pushToast(toastInfo, "No completed tasks to clear")
		}
		m.confirm(actionClearCompleted, "", "Clear completed", fmt.Sprintf("Remove %d completed %s?", n, plural(n, "task")))
	case key.Matches(msg, m.keys.NextFilter):
		m.setFilter(nextFilter(m.store.Filter()))
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(trip.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.setFilter(trip.FilterActive)
	case key.Matches(msg, m.keys.FilterCompleted):
		m.setFilter(trip.FilterCompleted)
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	cmd := m.form.Update(msg)

	switch {
	case m.form.dialog.Cancelled():
		m.closeForm()
		return m, nil
	case m.form.dialog.Submitted():
		return m, tea.Batch(cmd, m.submitForm())
	}
	return m, cmd
}

// submitForm applies the form to the store. Input errors keep the form open
// with the message shown.
func (m *Model) submitForm() tea.Cmd {
	f := m.form

	if !f.isEdit() {
		input, err := f.newTask()
		if err == nil {
			_, err = m.store.Add(m.ctx, input)
		}
		if err != nil {
			f.showError(err)
			return nil
		}
		m.closeForm()
		return nil
	}

	u, err := f.update()
	if err != nil {
		f.showError(err)
		return nil
	}
	found, err := m.store.Edit(m.ctx, f.editID, u)
	if err != nil {
		f.showError(err)
		return nil
	}
	m.closeForm()
	if !found {
		return m.pushToast(toastWarning, "Task no longer exists")
	}
	return nil
}

func (m *Model) closeForm() {
	m.form = nil
	m.state = stateNormal
}

func (m Model) handleConfirmKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "h", "l", "tab":
		m.modal.ToggleSelection()
		return m, nil
	case "enter":
		if !m.modal.ConfirmSelected() {
			m.resetConfirm()
			return m, nil
		}
		return m, m.runPending()
	case "y":
		return m, m.runPending()
	case "n", "esc", "q":
		m.resetConfirm()
	}
	return m, nil
}

func (m Model) handleHelpKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "?", "q":
		m.state = stateNormal
	}
	return m, nil
}

func (m *Model) confirm(action pendingAction, id, title, message string) {
	m.modal = NewModal(title, message)
	m.pending = action
	m.pendingID = id
	m.state = stateConfirming
}

func (m *Model) resetConfirm() {
	m.modal = Modal{}
	m.pending = actionNone
	m.pendingID = ""
	m.state = stateNormal
}

func (m *Model) runPending() tea.Cmd {
	action, id := m.pending, m.pendingID
	m.resetConfirm()

	switch action {
	case actionDelete:
		m.store.Remove(m.ctx, id)
		m.clampCursor()
	case actionClearCompleted:
		n := m.store.ClearCompleted(m.ctx)
		m.clampCursor()
		return m.pushToast(toastInfo, fmt.Sprintf("Cleared %d completed %s", n, plural(n, "task")))
	}
	return nil
}

func (m *Model) setFilter(f trip.Filter) {
	if err := m.store.SetFilter(m.ctx, f); err != nil {
		m.log.Error().Err(err).Msg("set filter")
		return
	}
	m.cursor = 0
}

// handleChange keeps the cursor meaningful after the store changed. A newly
// added task becomes the selection when it is visible.
func (m *Model) handleChange(c trip.Change) {
	if c.Op == trip.OpAdded {
		for i, t := range m.store.VisibleTasks() {
			if t.ID == c.TaskID {
				m.cursor = i
				return
			}
		}
	}
	m.clampCursor()
}

// pushToast adds a toast and starts the tick timer if it is not running.
func (m *Model) pushToast(level toastLevel, message string) tea.Cmd {
	m.toasts.Push(level, message)
	if m.toasts.Ticking() {
		return nil
	}
	m.toasts.SetTicking(true)
	return scheduleToastTick()
}

func (m Model) selected() (trip.Task, bool) {
	tasks := m.store.VisibleTasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return trip.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.store.VisibleTasks())
	m.cursor = max(min(m.cursor, n-1), 0)
}

func nextFilter(f trip.Filter) trip.Filter {
	filters := trip.Filters()
	for i, candidate := range filters {
		if candidate == f {
			return filters[(i+1)%len(filters)]
		}
	}
	return trip.FilterAll
}

func persistMessage(err error) string {
	return "Changes not saved: " + err.Error()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
