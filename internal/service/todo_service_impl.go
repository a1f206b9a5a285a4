package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
)

type todoService struct {
	tasks    repository.TaskRepo
	todos    repository.TodoRepo
	observer UseCaseObserver
}

func NewTodoService(
	tasks repository.TaskRepo,
	todos repository.TodoRepo,
	observers ...UseCaseObserver,
) TodoService {
	return &todoService{
		tasks:    tasks,
		todos:    todos,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *todoService) Create(ctx context.Context, in CreateTodoInput) (todo *domain.Todo, err error) {
	fields := map[string]any{
		"task_id":     in.TaskID.String(),
		"checkpoints": len(in.Checkpoints),
	}
	defer observe(ctx, s.observer, "create-todo", time.Now().UTC(), fields, &err)

	task, err := s.tasks.GetByID(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	r, err := domain.NewRange(in.Start, in.End)
	if err != nil {
		return nil, fmt.Errorf("todo range: %w", err)
	}

	statuses := make([]domain.DoneStatus, 0, len(in.Checkpoints))
	for _, at := range in.Checkpoints {
		statuses = append(statuses, domain.NewDoneStatus(domain.GenerateID(), at, false))
	}

	todo = domain.NewTodo(domain.GenerateID(), *task, r, domain.NewDoneStatusList(statuses...))
	fields["todo_id"] = todo.ID().String()
	if err = s.todos.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	return todo, nil
}

func (s *todoService) GetByID(ctx context.Context, id domain.ID) (*domain.Todo, error) {
	return s.todos.GetByID(ctx, id)
}

func (s *todoService) MarkDone(ctx context.Context, todoID, statusID domain.ID) (*domain.Todo, error) {
	return s.mark(ctx, "mark-done", todoID, statusID, (*domain.DoneStatus).MarkAsDone)
}

func (s *todoService) MarkUndone(ctx context.Context, todoID, statusID domain.ID) (*domain.Todo, error) {
	return s.mark(ctx, "mark-undone", todoID, statusID, (*domain.DoneStatus).MarkAsUndone)
}

func (s *todoService) mark(ctx context.Context, name string, todoID, statusID domain.ID, apply func(*domain.DoneStatus)) (todo *domain.Todo, err error) {
	fields := map[string]any{"todo_id": todoID.String(), "status_id": statusID.String()}
	defer observe(ctx, s.observer, name, time.Now().UTC(), fields, &err)

	todo, err = s.todos.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	status, ok := todo.StatusRef().Find(statusID)
	if !ok {
		return nil, fmt.Errorf("status %s of todo %s: %w", statusID, todoID, ErrStatusNotFound)
	}
	apply(status)
	return s.todos.Update(ctx, todo)
}

// Reschedule moves the todo's range. A nil bound keeps its current value. The
// resulting range is validated as a whole, so a move that passes through an
// invalid intermediate state still succeeds and a rejected move changes
// nothing.
func (s *todoService) Reschedule(ctx context.Context, todoID domain.ID, start, end *time.Time) (todo *domain.Todo, err error) {
	fields := map[string]any{"todo_id": todoID.String()}
	defer observe(ctx, s.observer, "reschedule-todo", time.Now().UTC(), fields, &err)

	todo, err = s.todos.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if start == nil && end == nil {
		return todo, nil
	}

	current := todo.Range()
	newStart, newEnd := current.Start(), current.End()
	if start != nil {
		newStart = *start
	}
	if end != nil {
		newEnd = *end
	}
	r, err := domain.NewRange(newStart, newEnd)
	if err != nil {
		return nil, fmt.Errorf("rescheduling todo %s: %w", todoID, err)
	}
	*todo.RangeRef() = r
	fields["start"] = newStart.UTC().Format(time.RFC3339)
	fields["end"] = newEnd.UTC().Format(time.RFC3339)
	return s.todos.Update(ctx, todo)
}

// Progress counts the todo's statuses inside window, or all of them when
// window is nil.
func (s *todoService) Progress(ctx context.Context, todoID domain.ID, window *domain.DateTimeRange) (p Progress, err error) {
	defer observe(ctx, s.observer, "todo-progress", time.Now().UTC(), map[string]any{"todo_id": todoID.String()}, &err)

	todo, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		return Progress{}, err
	}

	list := todo.Status()
	if window != nil {
		var selected []domain.DoneStatus
		for _, st := range list.FromRange(*window) {
			selected = append(selected, *st)
		}
		list = domain.NewDoneStatusList(selected...)
	}

	return Progress{
		Dones:    list.Dones(),
		Undones:  list.Undones(),
		MaxDones: list.MaxDones(),
		Complete: list.Complete(),
		Ratio:    list.Ratio(),
	}, nil
}

func (s *todoService) Remove(ctx context.Context, id domain.ID) (err error) {
	defer observe(ctx, s.observer, "remove-todo", time.Now().UTC(), map[string]any{"todo_id": id.String()}, &err)
	return s.todos.Remove(ctx, id)
}
