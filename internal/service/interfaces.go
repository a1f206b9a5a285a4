package service

import (
	"context"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/importer"
)

type TaskService interface {
	Create(ctx context.Context, name string) (*domain.Task, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Task, error)
	Rename(ctx context.Context, id domain.ID, name string) (*domain.Task, error)
	Remove(ctx context.Context, id domain.ID, force bool) error
}

type TaskRetrieveService interface {
	List(ctx context.Context) ([]*domain.Task, error)
}

type TodoRetrieveService interface {
	List(ctx context.Context) ([]*domain.Todo, error)
	ListByTask(ctx context.Context, taskID domain.ID) ([]*domain.Todo, error)
}

// CreateTodoInput describes a new todo. Each checkpoint becomes an undone
// status.
type CreateTodoInput struct {
	TaskID      domain.ID
	Start       time.Time
	End         time.Time
	Checkpoints []time.Time
}

// Progress summarises the statuses of one todo.
type Progress struct {
	Dones    int
	Undones  int
	MaxDones int
	Complete bool
	Ratio    float64
}

type TodoService interface {
	Create(ctx context.Context, in CreateTodoInput) (*domain.Todo, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Todo, error)
	MarkDone(ctx context.Context, todoID, statusID domain.ID) (*domain.Todo, error)
	MarkUndone(ctx context.Context, todoID, statusID domain.ID) (*domain.Todo, error)
	Reschedule(ctx context.Context, todoID domain.ID, start, end *time.Time) (*domain.Todo, error)
	Progress(ctx context.Context, todoID domain.ID, window *domain.DateTimeRange) (Progress, error)
	Remove(ctx context.Context, id domain.ID) error
}

// ImportResult holds the outcome of an import.
type ImportResult struct {
	Tasks       []*domain.Task
	TodoCount   int
	StatusCount int
}

type ImportService interface {
	ImportFile(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
