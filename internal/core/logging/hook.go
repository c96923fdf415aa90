package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies task_id and command from the event context into log events.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if taskID := GetTaskID(ctx); taskID != "" {
		e.Str("task_id", taskID)
	}

	if name := GetCommand(ctx); name != "" {
		e.Str("command", name)
	}
}
