package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/importer"
	"github.com/alexanderramin/cadence/internal/repository"
)

type importService struct {
	tx       repository.Transactor
	observer UseCaseObserver
}

func NewImportService(tx repository.Transactor, observers ...UseCaseObserver) ImportService {
	return &importService{
		tx:       tx,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportFile(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import", time.Now().UTC(), fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	generated, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, tasks repository.TaskRepo, todos repository.TodoRepo) error {
		for _, task := range generated.Tasks {
			if err := tasks.Create(ctx, task); err != nil {
				return fmt.Errorf("creating task %q: %w", task.Name(), err)
			}
		}
		for i, todo := range generated.Todos {
			if err := todos.Create(ctx, todo); err != nil {
				return fmt.Errorf("creating todo %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ImportResult{
		Tasks:       generated.Tasks,
		TodoCount:   len(generated.Todos),
		StatusCount: generated.StatusCount(),
	}
	fields["task_count"] = len(result.Tasks)
	fields["todo_count"] = result.TodoCount
	fields["status_count"] = result.StatusCount
	return result, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
