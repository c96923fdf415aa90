package components

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/trek/pkg/tuitest"
)

func TestPad(t *testing.T) {
	assert.Empty(t, Pad(-1))
	assert.Empty(t, Pad(0))
	assert.Equal(t, "   ", Pad(3))
	assert.Len(t, Pad(maxCachedPad), maxCachedPad)
	assert.Len(t, Pad(maxCachedPad+5), maxCachedPad+5)
}

func TestHelpDialog_View(t *testing.T) {
	hidden := key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "secret"))
	hidden.SetEnabled(false)

	h := NewHelpDialog("Keyboard Shortcuts",
		HelpSection{Title: "Tasks", Bindings: []key.Binding{
			key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle done")),
			key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
			hidden,
		}},
		HelpSection{Title: "Empty", Bindings: []key.Binding{hidden}},
		HelpSection{Title: "Filters", Bindings: []key.Binding{
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		}},
	)

	out := tuitest.StripANSI(h.View())
	assert.Contains(t, out, "Keyboard Shortcuts")
	assert.Contains(t, out, "toggle done")
	assert.Contains(t, out, "esc/? close")
	assert.NotContains(t, out, "secret")
	assert.NotContains(t, out, "Empty")
	assert.Less(t, strings.Index(out, "Tasks"), strings.Index(out, "Filters"))

	// Descriptions line up after the widest key.
	assert.Contains(t, out, "space  toggle done")
	assert.Contains(t, out, "a      add task")
}

func TestHelpDialog_Overlay(t *testing.T) {
	h := NewHelpDialog("Help", HelpSection{Bindings: []key.Binding{
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}})
	bg := strings.Repeat(strings.Repeat(".", 60)+"\n", 19) + strings.Repeat(".", 60)

	out := tuitest.StripANSI(h.Overlay(bg, 60, 20))
	assert.Contains(t, out, "quit")
	assert.True(t, strings.HasPrefix(out, "......"))
}
