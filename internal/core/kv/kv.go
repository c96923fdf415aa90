// Package kv defines a small persistent key-value contract used by the
// sqlite storage backend.
package kv

import (
	"context"
)

// KV is a persistent key-value store. Values are JSON-serializable.
// Get on a missing key returns an error wrapping sql.ErrNoRows.
type KV interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
}
