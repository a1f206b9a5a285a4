package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

type taskService struct {
	tasks    repository.TaskRepo
	todos    repository.TodoRepo
	tx       repository.Transactor
	observer UseCaseObserver
}

func NewTaskService(
	tasks repository.TaskRepo,
	todos repository.TodoRepo,
	tx repository.Transactor,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		tasks:    tasks,
		todos:    todos,
		tx:       tx,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) Create(ctx context.Context, name string) (task *domain.Task, err error) {
	fields := map[string]any{"name": name}
	defer observe(ctx, s.observer, "create-task", time.Now().UTC(), fields, &err)

	t, err := domain.NewTask(domain.GenerateID(), name)
	if err != nil {
		return nil, err
	}
	fields["task_id"] = t.ID().String()
	if err = s.tasks.Create(ctx, &t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return &t, nil
}

func (s *taskService) GetByID(ctx context.Context, id domain.ID) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) Rename(ctx context.Context, id domain.ID, name string) (task *domain.Task, err error) {
	defer observe(ctx, s.observer, "rename-task", time.Now().UTC(), map[string]any{"task_id": id.String()}, &err)

	task, err = s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = task.SetName(name); err != nil {
		return nil, err
	}
	return s.tasks.Update(ctx, task)
}

func (s *taskService) Remove(ctx context.Context, id domain.ID, force bool) (err error) {
	fields := map[string]any{"task_id": id.String(), "force": force}
	defer observe(ctx, s.observer, "remove-task", time.Now().UTC(), fields, &err)

	return s.tx.WithinTx(ctx, func(ctx context.Context, tasks repository.TaskRepo, todos repository.TodoRepo) error {
		if _, err := tasks.GetByID(ctx, id); err != nil {
			return err
		}
		if !force {
			n, err := todos.CountByTask(ctx, id)
			if err != nil {
				return fmt.Errorf("counting todos of task %s: %w", id, err)
			}
			if n > 0 {
				return fmt.Errorf("task %s has %d todos: %w", id, n, ErrTaskInUse)
			}
			return tasks.Remove(ctx, id)
		}

		owned, err := todos.ListByTask(ctx, id)
		if err != nil {
			return fmt.Errorf("listing todos of task %s: %w", id, err)
		}
		for _, todo := range owned {
			if err := todos.Remove(ctx, todo.ID()); err != nil {
				return fmt.Errorf("removing todo %s: %w", todo.ID(), err)
			}
		}
		fields["removed_todos"] = len(owned)
		return tasks.Remove(ctx, id)
	})
}
