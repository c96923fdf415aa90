package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithTaskID(t *testing.T) {
	ctx := WithTaskID(context.Background(), "3f2a")
	assert.Equal(t, "3f2a", GetTaskID(ctx))
}

func TestWithCommand(t *testing.T) {
	ctx := WithCommand(context.Background(), "toggle")
	assert.Equal(t, "toggle", GetCommand(ctx))
}

func TestContextValues_NotPresent(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTaskID(ctx))
	assert.Empty(t, GetCommand(ctx))
}
