package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// SQLiteTodoRepo implements TodoRepo using a SQLite database. A todo and its
// done statuses are written in one transaction.
type SQLiteTodoRepo struct {
	db db.DBTX
}

var _ TodoRepo = (*SQLiteTodoRepo)(nil)

// NewSQLiteTodoRepo creates a new SQLiteTodoRepo.
func NewSQLiteTodoRepo(db db.DBTX) *SQLiteTodoRepo {
	return &SQLiteTodoRepo{db: db}
}

const todoColumns = `t.id, t.range_start, t.range_end, k.id, k.name`

// todoRow holds the raw columns of one todo before its statuses are loaded.
type todoRow struct {
	id, start, end, taskID, taskName string
}

func (r *SQLiteTodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	return atomically(ctx, r.db, func(ctx context.Context, tx db.DBTX) error {
		now := nowUTC()
		query := `INSERT INTO todos (id, task_id, range_start, range_end, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`
		_, err := tx.ExecContext(ctx, query,
			t.ID().String(),
			t.Task().ID().String(),
			formatTimestamp(t.Range().Start()),
			formatTimestamp(t.Range().End()),
			now,
			now,
		)
		if err != nil {
			if db.IsForeignKeyViolation(err) {
				return fmt.Errorf("task %s: %w", t.Task().ID(), ErrNotFound)
			}
			return storeErr(fmt.Sprintf("inserting todo %s", t.ID()), err)
		}
		return insertStatuses(ctx, tx, t)
	})
}

func (r *SQLiteTodoRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Todo, error) {
	query := `SELECT ` + todoColumns + `
		FROM todos t JOIN tasks k ON k.id = t.task_id
		WHERE t.id = ?`
	var row todoRow
	err := r.db.QueryRowContext(ctx, query, id.String()).Scan(&row.id, &row.start, &row.end, &row.taskID, &row.taskName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("todo %s: %w", id, ErrNotFound)
		}
		return nil, storeErr("scanning todo", err)
	}
	return r.populateTodo(ctx, row)
}

func (r *SQLiteTodoRepo) List(ctx context.Context) ([]*domain.Todo, error) {
	query := `SELECT ` + todoColumns + `
		FROM todos t JOIN tasks k ON k.id = t.task_id
		ORDER BY t.range_start, t.id`
	return r.queryTodos(ctx, "listing todos", query)
}

func (r *SQLiteTodoRepo) ListByTask(ctx context.Context, taskID domain.ID) ([]*domain.Todo, error) {
	query := `SELECT ` + todoColumns + `
		FROM todos t JOIN tasks k ON k.id = t.task_id
		WHERE t.task_id = ?
		ORDER BY t.range_start, t.id`
	return r.queryTodos(ctx, "listing todos by task", query, taskID.String())
}

func (r *SQLiteTodoRepo) CountByTask(ctx context.Context, taskID domain.ID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos WHERE task_id = ?`, taskID.String()).Scan(&n)
	if err != nil {
		return 0, storeErr("counting todos by task", err)
	}
	return n, nil
}

func (r *SQLiteTodoRepo) Update(ctx context.Context, t *domain.Todo) (*domain.Todo, error) {
	err := atomically(ctx, r.db, func(ctx context.Context, tx db.DBTX) error {
		query := `UPDATE todos SET task_id = ?, range_start = ?, range_end = ?, updated_at = ? WHERE id = ?`
		res, err := tx.ExecContext(ctx, query,
			t.Task().ID().String(),
			formatTimestamp(t.Range().Start()),
			formatTimestamp(t.Range().End()),
			nowUTC(),
			t.ID().String(),
		)
		if err != nil {
			if db.IsForeignKeyViolation(err) {
				return fmt.Errorf("task %s: %w", t.Task().ID(), ErrNotFound)
			}
			return storeErr("updating todo", err)
		}
		if err := requireAffected(res, "todo", t.ID()); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM done_statuses WHERE todo_id = ?`, t.ID().String()); err != nil {
			return storeErr("clearing done statuses", err)
		}
		return insertStatuses(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, t.ID())
}

func (r *SQLiteTodoRepo) Remove(ctx context.Context, id domain.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id.String())
	if err != nil {
		return storeErr("deleting todo", err)
	}
	return requireAffected(res, "todo", id)
}

func insertStatuses(ctx context.Context, tx db.DBTX, t *domain.Todo) error {
	query := `INSERT INTO done_statuses (id, todo_id, applicable_at, done, position) VALUES (?, ?, ?, ?, ?)`
	for i, s := range t.Status().All() {
		_, err := tx.ExecContext(ctx, query,
			s.ID().String(),
			t.ID().String(),
			formatTimestamp(s.ApplicableTime()),
			boolToInt(s.Done()),
			i,
		)
		if err != nil {
			return storeErr(fmt.Sprintf("inserting done status %s", s.ID()), err)
		}
	}
	return nil
}

func (r *SQLiteTodoRepo) queryTodos(ctx context.Context, op, query string, args ...any) ([]*domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}

	// Collect rows before issuing status queries; an open cursor would pin
	// the only connection of an in-memory database.
	var raw []todoRow
	for rows.Next() {
		var row todoRow
		if err := rows.Scan(&row.id, &row.start, &row.end, &row.taskID, &row.taskName); err != nil {
			rows.Close()
			return nil, storeErr("scanning todo row", err)
		}
		raw = append(raw, row)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, storeErr("iterating todos", err)
	}
	rows.Close()

	todos := make([]*domain.Todo, 0, len(raw))
	for _, row := range raw {
		todo, err := r.populateTodo(ctx, row)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, nil
}

// populateTodo loads the statuses of a scanned todo and rebuilds the aggregate
// through the domain constructors.
func (r *SQLiteTodoRepo) populateTodo(ctx context.Context, row todoRow) (*domain.Todo, error) {
	task, err := buildTask(row.taskID, row.taskName)
	if err != nil {
		return nil, err
	}

	start, err := parseTimestamp(row.start)
	if err != nil {
		return nil, internalErr("parsing range_start", err)
	}
	end, err := parseTimestamp(row.end)
	if err != nil {
		return nil, internalErr("parsing range_end", err)
	}
	rng, err := domain.NewRange(start, end)
	if err != nil {
		return nil, internalErr("loading todo "+row.id, err)
	}

	statuses, err := r.loadStatuses(ctx, row.id)
	if err != nil {
		return nil, err
	}
	return domain.NewTodo(domain.NewID(row.id), *task, rng, domain.NewDoneStatusList(statuses...)), nil
}

func (r *SQLiteTodoRepo) loadStatuses(ctx context.Context, todoID string) ([]domain.DoneStatus, error) {
	query := `SELECT id, applicable_at, done FROM done_statuses WHERE todo_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, todoID)
	if err != nil {
		return nil, storeErr("listing done statuses", err)
	}
	defer rows.Close()

	var statuses []domain.DoneStatus
	for rows.Next() {
		var id, applicableAt string
		var done int
		if err := rows.Scan(&id, &applicableAt, &done); err != nil {
			return nil, storeErr("scanning done status", err)
		}
		ts, err := parseTimestamp(applicableAt)
		if err != nil {
			return nil, internalErr("parsing applicable_at", err)
		}
		statuses = append(statuses, domain.NewDoneStatus(domain.NewID(id), ts, intToBool(done)))
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterating done statuses", err)
	}
	return statuses, nil
}
