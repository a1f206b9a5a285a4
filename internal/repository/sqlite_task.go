package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

var _ TaskRepo = (*SQLiteTaskRepo)(nil)

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	now := nowUTC()
	query := `INSERT INTO tasks (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, t.ID().String(), t.Name(), now, now); err != nil {
		return storeErr(fmt.Sprintf("inserting task %s", t.ID()), err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Task, error) {
	query := `SELECT id, name FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id.String())

	var rawID, name string
	if err := row.Scan(&rawID, &name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
		}
		return nil, storeErr("scanning task", err)
	}
	return buildTask(rawID, name)
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT id, name FROM tasks ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr("listing tasks", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		var rawID, name string
		if err := rows.Scan(&rawID, &name); err != nil {
			return nil, storeErr("scanning task row", err)
		}
		task, err := buildTask(rawID, name)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterating tasks", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	query := `UPDATE tasks SET name = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, t.Name(), nowUTC(), t.ID().String())
	if err != nil {
		return nil, storeErr("updating task", err)
	}
	if err := requireAffected(res, "task", t.ID()); err != nil {
		return nil, err
	}
	updated := *t
	return &updated, nil
}

func (r *SQLiteTaskRepo) Remove(ctx context.Context, id domain.ID) error {
	query := `DELETE FROM tasks WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return fmt.Errorf("task %s: %w", id, ErrReferenced)
		}
		return storeErr("deleting task", err)
	}
	return requireAffected(res, "task", id)
}

// buildTask re-validates a stored row through the domain constructor.
func buildTask(rawID, name string) (*domain.Task, error) {
	task, err := domain.NewTask(domain.NewID(rawID), name)
	if err != nil {
		return nil, internalErr("loading task "+rawID, err)
	}
	return &task, nil
}

func requireAffected(res sql.Result, kind string, id domain.ID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return internalErr("reading affected rows", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}
