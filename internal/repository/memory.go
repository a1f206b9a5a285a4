package repository

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/cadence/internal/domain"
)

// Store is an in-memory backing store for tasks and todos. Every handle
// returned by Tasks and Todos shares one lock, so at most one critical section
// runs at a time across all of them. Aggregates are copied in and out; nothing
// outside the store aliases stored state.
type Store struct {
	sem      chan struct{}
	poisoned atomic.Bool

	tasks []domain.Task
	todos []*domain.Todo
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{sem: make(chan struct{}, 1)}
}

// Tasks returns a TaskRepo handle onto the store.
func (s *Store) Tasks() *MemoryTaskRepo {
	return &MemoryTaskRepo{store: s}
}

// Todos returns a TodoRepo handle onto the store.
func (s *Store) Todos() *MemoryTodoRepo {
	return &MemoryTodoRepo{store: s}
}

// withLock runs fn while holding the store lock. Acquisition gives up when ctx
// ends. If fn panics the store is poisoned and every later call fails with
// ErrLockPoisoned.
func (s *Store) withLock(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrLockUnavailable, err)
	}
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrLockUnavailable, ctx.Err())
	}
	defer func() { <-s.sem }()

	if s.poisoned.Load() {
		return ErrLockPoisoned
	}
	defer func() {
		if p := recover(); p != nil {
			s.poisoned.Store(true)
			panic(p)
		}
	}()
	return fn()
}

func (s *Store) taskIndex(id domain.ID) int {
	for i := range s.tasks {
		if s.tasks[i].ID() == id {
			return i
		}
	}
	return -1
}

func (s *Store) todoIndex(id domain.ID) int {
	for i, t := range s.todos {
		if t.ID() == id {
			return i
		}
	}
	return -1
}

// readTodo copies a stored todo, refreshing its task from the task table the
// way a join would.
func (s *Store) readTodo(t *domain.Todo) *domain.Todo {
	out := t.Clone()
	if i := s.taskIndex(t.Task().ID()); i >= 0 {
		out.SetTask(s.tasks[i])
	}
	return out
}

// MemoryTaskRepo implements TaskRepo on a Store.
type MemoryTaskRepo struct {
	store *Store
}

var _ TaskRepo = (*MemoryTaskRepo)(nil)

func (r *MemoryTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	return r.store.withLock(ctx, func() error {
		if r.store.taskIndex(t.ID()) >= 0 {
			return fmt.Errorf("task %s: %w", t.ID(), ErrDuplicate)
		}
		r.store.tasks = append(r.store.tasks, *t)
		return nil
	})
}

func (r *MemoryTaskRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Task, error) {
	var out *domain.Task
	err := r.store.withLock(ctx, func() error {
		i := r.store.taskIndex(id)
		if i < 0 {
			return fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		t := r.store.tasks[i]
		out = &t
		return nil
	})
	return out, err
}

func (r *MemoryTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	var out []*domain.Task
	err := r.store.withLock(ctx, func() error {
		out = make([]*domain.Task, 0, len(r.store.tasks))
		for _, t := range r.store.tasks {
			t := t
			out = append(out, &t)
		}
		return nil
	})
	return out, err
}

func (r *MemoryTaskRepo) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	var out *domain.Task
	err := r.store.withLock(ctx, func() error {
		i := r.store.taskIndex(t.ID())
		if i < 0 {
			return fmt.Errorf("task %s: %w", t.ID(), ErrNotFound)
		}
		r.store.tasks[i] = *t
		updated := *t
		out = &updated
		return nil
	})
	return out, err
}

func (r *MemoryTaskRepo) Remove(ctx context.Context, id domain.ID) error {
	return r.store.withLock(ctx, func() error {
		i := r.store.taskIndex(id)
		if i < 0 {
			return fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		for _, todo := range r.store.todos {
			if todo.Task().ID() == id {
				return fmt.Errorf("task %s: %w", id, ErrReferenced)
			}
		}
		r.store.tasks = append(r.store.tasks[:i], r.store.tasks[i+1:]...)
		return nil
	})
}

// MemoryTodoRepo implements TodoRepo on a Store.
type MemoryTodoRepo struct {
	store *Store
}

var _ TodoRepo = (*MemoryTodoRepo)(nil)

func (r *MemoryTodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	return r.store.withLock(ctx, func() error {
		if r.store.todoIndex(t.ID()) >= 0 {
			return fmt.Errorf("todo %s: %w", t.ID(), ErrDuplicate)
		}
		if r.store.taskIndex(t.Task().ID()) < 0 {
			return fmt.Errorf("task %s: %w", t.Task().ID(), ErrNotFound)
		}
		if err := checkStatusIDs(t); err != nil {
			return err
		}
		r.store.todos = append(r.store.todos, t.Clone())
		return nil
	})
}

func (r *MemoryTodoRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Todo, error) {
	var out *domain.Todo
	err := r.store.withLock(ctx, func() error {
		i := r.store.todoIndex(id)
		if i < 0 {
			return fmt.Errorf("todo %s: %w", id, ErrNotFound)
		}
		out = r.store.readTodo(r.store.todos[i])
		return nil
	})
	return out, err
}

func (r *MemoryTodoRepo) List(ctx context.Context) ([]*domain.Todo, error) {
	var out []*domain.Todo
	err := r.store.withLock(ctx, func() error {
		out = make([]*domain.Todo, 0, len(r.store.todos))
		for _, t := range r.store.todos {
			out = append(out, r.store.readTodo(t))
		}
		return nil
	})
	return out, err
}

func (r *MemoryTodoRepo) ListByTask(ctx context.Context, taskID domain.ID) ([]*domain.Todo, error) {
	var out []*domain.Todo
	err := r.store.withLock(ctx, func() error {
		for _, t := range r.store.todos {
			if t.Task().ID() == taskID {
				out = append(out, r.store.readTodo(t))
			}
		}
		return nil
	})
	return out, err
}

func (r *MemoryTodoRepo) CountByTask(ctx context.Context, taskID domain.ID) (int, error) {
	var n int
	err := r.store.withLock(ctx, func() error {
		for _, t := range r.store.todos {
			if t.Task().ID() == taskID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *MemoryTodoRepo) Update(ctx context.Context, t *domain.Todo) (*domain.Todo, error) {
	var out *domain.Todo
	err := r.store.withLock(ctx, func() error {
		i := r.store.todoIndex(t.ID())
		if i < 0 {
			return fmt.Errorf("todo %s: %w", t.ID(), ErrNotFound)
		}
		if r.store.taskIndex(t.Task().ID()) < 0 {
			return fmt.Errorf("task %s: %w", t.Task().ID(), ErrNotFound)
		}
		if err := checkStatusIDs(t); err != nil {
			return err
		}
		r.store.todos[i] = t.Clone()
		out = r.store.readTodo(r.store.todos[i])
		return nil
	})
	return out, err
}

func (r *MemoryTodoRepo) Remove(ctx context.Context, id domain.ID) error {
	return r.store.withLock(ctx, func() error {
		i := r.store.todoIndex(id)
		if i < 0 {
			return fmt.Errorf("todo %s: %w", id, ErrNotFound)
		}
		r.store.todos = append(r.store.todos[:i], r.store.todos[i+1:]...)
		return nil
	})
}

// checkStatusIDs rejects a todo carrying two statuses with the same ID.
// Status IDs are scoped to their todo.
func checkStatusIDs(t *domain.Todo) error {
	all := t.Status().All()
	seen := make(map[domain.ID]struct{}, len(all))
	for _, s := range all {
		if _, ok := seen[s.ID()]; ok {
			return fmt.Errorf("done status %s of todo %s: %w", s.ID(), t.ID(), ErrDuplicate)
		}
		seen[s.ID()] = struct{}{}
	}
	return nil
}
