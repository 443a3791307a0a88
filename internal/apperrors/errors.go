package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected business conditions. Services return these
// (usually wrapped with context); callers branch with errors.Is.
var (
	// ErrUnauthorized indicates the actor's role forbids the action class.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the action class is permitted but this specific
	// target or state forbids it (completed-task lock, cross-tenant target).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the target does not exist within the actor's
	// visible scope. Out-of-scope rows surface as ErrNotFound, never
	// ErrForbidden, so cross-tenant existence never leaks.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates a uniqueness violation (duplicate name/username).
	ErrConflict = errors.New("resource already exists")

	// ErrLimitExceeded indicates the system-wide company cap was reached.
	ErrLimitExceeded = errors.New("limit exceeded")

	// ErrHasDependents indicates a delete blocked by referential dependents.
	ErrHasDependents = errors.New("resource has dependents")

	// ErrValidation indicates an empty or malformed required field.
	ErrValidation = errors.New("validation error")
)

// StorageError wraps an unexpected storage fault (connection/disk failure).
// It is the only error class eligible for retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a storage fault for operation op.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
