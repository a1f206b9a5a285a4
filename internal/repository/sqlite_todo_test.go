package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

func TestSQLiteTodoRepo_CreateRollsBackOnStatusFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	task := testutil.NewTestTask("")
	require.NoError(t, NewSQLiteTaskRepo(database).Create(ctx, task))

	injected := errors.New("injected")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}
	todo := testutil.NewTestTodo(task, testutil.WithCheckpoints(testutil.At(9, 0), testutil.At(10, 0)))

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteTodoRepo(tx).Create(ctx, todo)
	})
	require.ErrorIs(t, err, injected)

	_, err = NewSQLiteTodoRepo(database).GetByID(ctx, todo.ID())
	assert.ErrorIs(t, err, ErrNotFound)

	var orphans int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM done_statuses`).Scan(&orphans))
	assert.Zero(t, orphans)
}

func TestSQLiteTodoRepo_UpdateRollsBackOnStatusFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	task := testutil.NewTestTask("")
	require.NoError(t, NewSQLiteTaskRepo(database).Create(ctx, task))
	todo := testutil.NewTestTodo(task, testutil.WithStatus("s1", testutil.At(9, 0), false))
	require.NoError(t, NewSQLiteTodoRepo(database).Create(ctx, todo))

	s, ok := todo.StatusRef().Find("s1")
	require.True(t, ok)
	s.MarkAsDone()

	// Exec 1 updates the row, 2 clears statuses, 3 reinserts s1.
	injected := errors.New("injected")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: injected}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := NewSQLiteTodoRepo(tx).Update(ctx, todo)
		return err
	})
	require.ErrorIs(t, err, injected)

	fetched, err := NewSQLiteTodoRepo(database).GetByID(ctx, todo.ID())
	require.NoError(t, err)
	require.Equal(t, 1, fetched.Status().MaxDones())
	assert.Zero(t, fetched.Status().Dones())
}

func TestSQLiteTodoRepo_CorruptRowIsInternalError(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	task := testutil.NewTestTask("")
	require.NoError(t, NewSQLiteTaskRepo(database).Create(ctx, task))

	_, err := database.Exec(`INSERT INTO todos (id, task_id, range_start, range_end, created_at, updated_at)
		VALUES ('bad', ?, 'garbage', 'zzz', '', '')`, task.ID().String())
	require.NoError(t, err)

	_, err = NewSQLiteTodoRepo(database).GetByID(ctx, "bad")
	var internal *InternalError
	require.ErrorAs(t, err, &internal)
	assert.Contains(t, internal.Op, "range_start")
}

func TestSQLiteTodoRepo_RemoveCascadesStatuses(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	task := testutil.NewTestTask("")
	require.NoError(t, NewSQLiteTaskRepo(database).Create(ctx, task))
	todo := testutil.NewTestTodo(task, testutil.WithCheckpoints(testutil.At(9, 0), testutil.At(10, 0)))
	repo := NewSQLiteTodoRepo(database)
	require.NoError(t, repo.Create(ctx, todo))

	require.NoError(t, repo.Remove(ctx, todo.ID()))

	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM done_statuses WHERE todo_id = ?`, todo.ID().String()).Scan(&n))
	assert.Zero(t, n)
}

// TestConcurrentAccess_ReadDuringWrite verifies that concurrent List calls do
// not block or observe half-written todos while writes are in progress.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	tasks := NewSQLiteTaskRepo(database)
	todos := NewSQLiteTodoRepo(database)

	task := testutil.NewTestTask("ReadWrite")
	require.NoError(t, tasks.Create(ctx, task))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			todo := testutil.NewTestTodo(task,
				testutil.WithTodoID(fmt.Sprintf("todo-%02d", i)),
				testutil.WithCheckpoints(testutil.At(9, 0), testutil.At(12, 0)),
			)
			if err := todos.Create(ctx, todo); err != nil {
				t.Errorf("writer: create todo %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				list, err := todos.List(ctx)
				if err != nil {
					t.Errorf("reader %d: list todos: %v", reader, err)
					return
				}
				for _, todo := range list {
					if todo.Status().MaxDones() != 2 {
						t.Errorf("reader %d: todo %s has %d statuses", reader, todo.ID(), todo.Status().MaxDones())
					}
				}
			}
		}(r)
	}

	wg.Wait()

	n, err := todos.CountByTask(ctx, task.ID())
	require.NoError(t, err)
	assert.Equal(t, 20, n)
}
