package tui

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToastController_Push(t *testing.T) {
	c := NewToastController()

	c.Push(toastInfo, "hello")

	assert.True(t, c.HasToasts())
	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, "hello", c.Toasts()[0].message)
	assert.Equal(t, defaultToastTTL, c.Toasts()[0].remaining)
}

func TestToastController_Push_evicts_oldest_at_max(t *testing.T) {
	c := NewToastController()

	for i := range defaultMaxToasts + 2 {
		c.Push(toastInfo, fmt.Sprintf("toast %d", i))
	}

	assert.Len(t, c.Toasts(), defaultMaxToasts)
	assert.Equal(t, "toast 2", c.Toasts()[0].message)
}

func TestToastController_Push_repeated_message_refreshes(t *testing.T) {
	c := NewToastController()
	c.Push(toastWarning, "not saved")
	c.Tick(2 * time.Second)

	c.Push(toastWarning, "not saved")

	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, defaultToastTTL, c.Toasts()[0].remaining)
}

func TestToastController_Tick(t *testing.T) {
	c := NewToastController()
	c.Push(toastInfo, "expires")
	c.Push(toastInfo, "survives")

	c.Tick(time.Second)
	assert.Equal(t, defaultToastTTL-time.Second, c.Toasts()[1].remaining)

	c.toasts[0].remaining = 50 * time.Millisecond
	c.Tick(100 * time.Millisecond)

	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, "survives", c.Toasts()[0].message)
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController()
	c.Dismiss()
	assert.False(t, c.HasToasts())

	c.Push(toastInfo, "first")
	c.Push(toastInfo, "second")
	c.Dismiss()

	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, "first", c.Toasts()[0].message)
}
