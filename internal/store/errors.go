package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references an id that does not
// exist in the store.
var ErrNotFound = errors.New("task not found")

// ValidationError reports input that the store refuses to persist.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// UnavailableError means the backend could not be initialized, e.g. the
// database file path is not writable. It is returned from store
// construction, never from individual operations.
type UnavailableError struct {
	Backend string
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s store unavailable: %v", e.Backend, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// ValidateTitle checks the one field both backends must agree on.
func ValidateTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}
