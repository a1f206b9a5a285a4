package service

import "errors"

var (
	// ErrTaskInUse is returned when removing a task that todos still
	// reference without forcing.
	ErrTaskInUse = errors.New("task has todos (use --force to remove them too)")
	// ErrStatusNotFound is returned when a todo has no status with the given ID.
	ErrStatusNotFound = errors.New("done status not found")
)
