package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the target of a lookup, update or removal
	// does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when creating a record whose ID is taken.
	ErrDuplicate = errors.New("already exists")
	// ErrReferenced is returned when removing a task that todos still use.
	ErrReferenced = errors.New("still referenced")

	// ErrLockFailed is returned when the shared in-memory store cannot be
	// acquired. ErrLockUnavailable and ErrLockPoisoned both match it.
	ErrLockFailed      = errors.New("failed to lock")
	ErrLockUnavailable = fmt.Errorf("%w: context ended while waiting", ErrLockFailed)
	ErrLockPoisoned    = fmt.Errorf("%w: store poisoned by an earlier panic", ErrLockFailed)
)

// InternalError wraps a backing-store failure. Its message is not meant to be
// interpreted by callers.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func internalErr(op string, err error) error {
	return &InternalError{Op: op, Err: err}
}
