package ledger

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a referenced client, worker or payment that does not
// exist. Mutating operations treat it as a silent no-op; reads surface it.
var ErrNotFound = errors.New("not found")

// ValidationError rejects invalid input (non-positive amount, empty
// required field). The operation aborts with no partial state change.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StorageError wraps a persistence-layer failure so callers can tell it
// apart from domain errors instead of having it swallowed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
