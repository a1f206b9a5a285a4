package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time; should succeed without error.
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"tasks", "todos", "done_statuses"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_todos_task",
		"idx_todos_range_start",
		"idx_done_statuses_todo",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_RejectsEmptyTaskName(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO tasks (id, name, created_at, updated_at) VALUES ('t1', '', 'x', 'x')`)
	assert.Error(t, err, "empty names are rejected by the schema as well as the domain")
}

func TestMigrate_RejectsDegenerateRange(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO tasks (id, name, created_at, updated_at) VALUES ('t1', 'Task', 'x', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO todos (id, task_id, range_start, range_end, created_at, updated_at)
		VALUES ('d1', 't1', '2022-01-01T10:00:00Z', '2022-01-01T10:00:00Z', 'x', 'x')`)
	assert.Error(t, err)
}

func TestMigrate_CascadesStatusesWithTodo(t *testing.T) {
	db := openTestDB(t)

	stmts := []string{
		`INSERT INTO tasks (id, name, created_at, updated_at) VALUES ('t1', 'Task', 'x', 'x')`,
		`INSERT INTO todos (id, task_id, range_start, range_end, created_at, updated_at)
			VALUES ('d1', 't1', '2022-01-01T10:00:00Z', '2022-01-01T11:00:00Z', 'x', 'x')`,
		`INSERT INTO done_statuses (id, todo_id, applicable_at, done, position)
			VALUES ('s1', 'd1', '2022-01-01T10:30:00Z', 0, 0)`,
		`DELETE FROM todos WHERE id = 'd1'`,
	}
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM done_statuses`).Scan(&count))
	assert.Equal(t, 0, count)
}
