package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertTask(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO tasks (id, name, created_at, updated_at) VALUES (?, 'Task', 'x', 'x')`, id)
	return err
}

func taskExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM tasks WHERE id = ?`, id).Scan(&n))
	return n == 1
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertTask(ctx, tx, "k1")
	})
	require.NoError(t, err)
	assert.True(t, taskExists(t, database, "k1"), "row should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertTask(ctx, tx, "k2"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")
	assert.False(t, taskExists(t, database, "k2"), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertTask(ctx, tx, "k3")
			panic("boom")
		})
	})
	assert.False(t, taskExists(t, database, "k3"), "row should not exist after panic rollback")
}

func TestIsUniqueViolation(t *testing.T) {
	database, uow := openTestUoW(t)
	ctx := context.Background()

	require.NoError(t, insertTask(ctx, database, "dup"))
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return insertTask(ctx, tx, "dup")
	})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err))
	assert.False(t, db.IsBusyError(err))
	assert.False(t, db.IsForeignKeyViolation(err))
}

func TestIsForeignKeyViolation(t *testing.T) {
	database, _ := openTestUoW(t)

	_, err := database.Exec(`INSERT INTO todos (id, task_id, range_start, range_end, created_at, updated_at)
		VALUES ('d1', 'missing', '2022-01-01T10:00:00Z', '2022-01-01T11:00:00Z', 'x', 'x')`)
	require.Error(t, err)
	assert.True(t, db.IsForeignKeyViolation(err))
}
