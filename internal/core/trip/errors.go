package trip

import "errors"

var (
	// ErrInvalidInput is returned when a task is created or edited with
	// missing or invalid fields. The store state is left unchanged.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned by lookups for an id that does not exist.
	// Mutating store operations treat a missing id as a no-op instead.
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguous is returned when an id prefix matches more than one task.
	ErrAmbiguous = errors.New("task id prefix is ambiguous")
	// ErrPersistence wraps failures reading or writing durable storage.
	ErrPersistence = errors.New("persistence failure")
)
