package domain

import "github.com/google/uuid"

// ID identifies a task, todo or done status. It is opaque to callers.
type ID string

// NewID wraps a caller-supplied identifier.
func NewID(s string) ID {
	return ID(s)
}

// GenerateID returns a random, globally unique identifier.
func GenerateID() ID {
	return ID(uuid.New().String())
}

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return id == ""
}
