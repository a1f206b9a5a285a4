package importer

import (
	"fmt"

	"github.com/alexanderramin/cadence/internal/domain"
)

// Generated holds the aggregates built from an import file, in file order.
type Generated struct {
	Tasks []*domain.Task
	Todos []*domain.Todo
}

// StatusCount returns the number of done statuses across all todos.
func (g *Generated) StatusCount() int {
	n := 0
	for _, t := range g.Todos {
		n += t.Status().MaxDones()
	}
	return n
}

// Convert transforms a validated ImportSchema into domain objects ready for
// persistence. Every task, todo and status gets a generated ID.
// Call ValidateImportSchema first; Convert still fails on invalid input.
func Convert(schema *ImportSchema) (*Generated, error) {
	refMap := make(map[string]domain.Task, len(schema.Tasks))

	out := &Generated{
		Tasks: make([]*domain.Task, 0, len(schema.Tasks)),
		Todos: make([]*domain.Todo, 0, len(schema.Todos)),
	}

	for _, t := range schema.Tasks {
		task, err := domain.NewTask(domain.GenerateID(), t.Name)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", t.Ref, err)
		}
		refMap[t.Ref] = task
		out.Tasks = append(out.Tasks, &task)
	}

	for i, t := range schema.Todos {
		task, ok := refMap[t.TaskRef]
		if !ok {
			return nil, fmt.Errorf("todo %d: unknown task ref %q", i, t.TaskRef)
		}
		start, err := parseTimestamp("start", t.Start)
		if err != nil {
			return nil, fmt.Errorf("todo %d: %w", i, err)
		}
		end, err := parseTimestamp("end", t.End)
		if err != nil {
			return nil, fmt.Errorf("todo %d: %w", i, err)
		}
		r, err := domain.NewRange(start, end)
		if err != nil {
			return nil, fmt.Errorf("todo %d: %w", i, err)
		}

		statuses := make([]domain.DoneStatus, 0, len(t.Checkpoints))
		for j, c := range t.Checkpoints {
			at, err := parseTimestamp("at", c.At)
			if err != nil {
				return nil, fmt.Errorf("todo %d checkpoint %d: %w", i, j, err)
			}
			statuses = append(statuses, domain.NewDoneStatus(domain.GenerateID(), at, c.Done))
		}

		out.Todos = append(out.Todos, domain.NewTodo(domain.GenerateID(), task, r, domain.NewDoneStatusList(statuses...)))
	}

	return out, nil
}
