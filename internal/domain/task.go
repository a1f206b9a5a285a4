package domain

import "fmt"

// Task is a named unit of work.
type Task struct {
	id   ID
	name string
}

func NewTask(id ID, name string) (Task, error) {
	if err := validateName(name); err != nil {
		return Task{}, err
	}
	return Task{id: id, name: name}, nil
}

func (t Task) ID() ID       { return t.id }
func (t Task) Name() string { return t.name }

// SetName renames the task; the old name is kept on failure.
func (t *Task) SetName(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	t.name = name
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("task name: %w", ErrEmptyName)
	}
	return nil
}
