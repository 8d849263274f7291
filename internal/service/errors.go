package service

import "errors"

// Error kinds surfaced to the API layer. Callers match with errors.Is;
// call sites wrap them with context via fmt.Errorf("...: %w", Err...).
var (
	// ErrValidation marks caller mistakes: empty titles, attaching a
	// recurrence rule to a task without a due date, and the like.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks lookups for records that do not exist.
	ErrNotFound = errors.New("not found")
)
