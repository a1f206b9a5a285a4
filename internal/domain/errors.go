package domain

import "errors"

// Validation errors returned by constructors and setters. Callers match them
// with errors.Is; the returned errors carry the offending values as context.
var (
	ErrOutOfRange  = errors.New("value out of range")
	ErrSameEnd     = errors.New("range start and end are the same")
	ErrOppositeEnd = errors.New("range start is after its end")
	ErrEmptyName   = errors.New("name must not be empty")
)
