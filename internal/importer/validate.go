package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	taskRefs := make(map[string]bool)
	errs = append(errs, validateTasks(schema.Tasks, taskRefs)...)
	errs = append(errs, validateTodos(schema.Todos, taskRefs)...)

	return errs
}

func validateTasks(tasks []TaskImport, refs map[string]bool) []error {
	var errs []error

	if len(tasks) == 0 {
		errs = append(errs, fmt.Errorf("tasks: at least one task is required"))
	}
	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if t.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[t.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, t.Ref))
		} else {
			refs[t.Ref] = true
		}
		if _, err := domain.NewTask(domain.NewID(t.Ref), t.Name); err != nil {
			errs = append(errs, fmt.Errorf("%s.name: %w", prefix, err))
		}
	}

	return errs
}

func validateTodos(todos []TodoImport, taskRefs map[string]bool) []error {
	var errs []error

	for i, t := range todos {
		prefix := fmt.Sprintf("todos[%d]", i)
		if !taskRefs[t.TaskRef] {
			errs = append(errs, fmt.Errorf("%s.task_ref: unknown task ref %q", prefix, t.TaskRef))
		}

		start, startErr := parseTimestamp(prefix+".start", t.Start)
		if startErr != nil {
			errs = append(errs, startErr)
		}
		end, endErr := parseTimestamp(prefix+".end", t.End)
		if endErr != nil {
			errs = append(errs, endErr)
		}
		if startErr == nil && endErr == nil {
			if _, err := domain.NewRange(start, end); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", prefix, err))
			}
		}

		for j, c := range t.Checkpoints {
			if _, err := parseTimestamp(fmt.Sprintf("%s.checkpoints[%d].at", prefix, j), c.At); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errs
}

func parseTimestamp(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid timestamp %q (expected RFC 3339)", field, value)
	}
	return t, nil
}
