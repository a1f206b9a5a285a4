package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Timestamps are stored as fixed-width nanosecond text in UTC so lexical order matches
// chronological order.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL CHECK(name <> ''),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS todos (
		id          TEXT PRIMARY KEY,
		task_id     TEXT NOT NULL REFERENCES tasks(id) ON DELETE RESTRICT,
		range_start TEXT NOT NULL,
		range_end   TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		CHECK(range_start < range_end)
	)`,

	`CREATE TABLE IF NOT EXISTS done_statuses (
		id            TEXT NOT NULL,
		todo_id       TEXT NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
		applicable_at TEXT NOT NULL,
		done          INTEGER NOT NULL DEFAULT 0 CHECK(done IN (0, 1)),
		position      INTEGER NOT NULL,
		PRIMARY KEY (todo_id, id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_todos_task ON todos(task_id)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_range_start ON todos(range_start)`,
	`CREATE INDEX IF NOT EXISTS idx_done_statuses_todo ON done_statuses(todo_id, position)`,
}
