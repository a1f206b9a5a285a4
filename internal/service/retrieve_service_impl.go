package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

type todoRetrieveService struct {
	todos         repository.TodoRepo
	defaultTaskID domain.ID
	observer      UseCaseObserver
}

// NewTodoRetrieveService returns a service whose List reads the todos of
// defaultTaskID.
func NewTodoRetrieveService(todos repository.TodoRepo, defaultTaskID domain.ID, observers ...UseCaseObserver) TodoRetrieveService {
	return &todoRetrieveService{
		todos:         todos,
		defaultTaskID: defaultTaskID,
		observer:      useCaseObserverOrNoop(observers),
	}
}

func (s *todoRetrieveService) List(ctx context.Context) ([]*domain.Todo, error) {
	return s.ListByTask(ctx, s.defaultTaskID)
}

func (s *todoRetrieveService) ListByTask(ctx context.Context, taskID domain.ID) (todos []*domain.Todo, err error) {
	fields := map[string]any{"task_id": taskID.String()}
	defer observe(ctx, s.observer, "list-todos", time.Now().UTC(), fields, &err)

	todos, err = s.todos.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("during fetching task: %w", err)
	}
	fields["count"] = len(todos)
	return todos, nil
}

type taskRetrieveService struct {
	tasks    repository.TaskRepo
	observer UseCaseObserver
}

func NewTaskRetrieveService(tasks repository.TaskRepo, observers ...UseCaseObserver) TaskRetrieveService {
	return &taskRetrieveService{
		tasks:    tasks,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskRetrieveService) List(ctx context.Context) (tasks []*domain.Task, err error) {
	defer observe(ctx, s.observer, "list-tasks", time.Now().UTC(), nil, &err)

	tasks, err = s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("during fetching tasks: %w", err)
	}
	return tasks, nil
}
