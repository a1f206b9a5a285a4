package repository

import (
	"context"

	"github.com/alexanderramin/cadence/internal/domain"
)

// TaskRepo persists tasks. Lookups of an absent ID fail with ErrNotFound.
type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) (*domain.Task, error)
	Remove(ctx context.Context, id domain.ID) error
}

// TodoRepo persists todos together with their done statuses. A todo's task
// must already exist in the matching TaskRepo.
type TodoRepo interface {
	Create(ctx context.Context, t *domain.Todo) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Todo, error)
	List(ctx context.Context) ([]*domain.Todo, error)
	ListByTask(ctx context.Context, taskID domain.ID) ([]*domain.Todo, error)
	CountByTask(ctx context.Context, taskID domain.ID) (int, error)
	Update(ctx context.Context, t *domain.Todo) (*domain.Todo, error)
	Remove(ctx context.Context, id domain.ID) error
}
