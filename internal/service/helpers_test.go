package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/alexanderramin/cadence/internal/testutil"
)

type testRepos struct {
	tasks repository.TaskRepo
	todos repository.TodoRepo
	tx    repository.Transactor
}

func newSQLiteRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		tasks: repository.NewSQLiteTaskRepo(database),
		todos: repository.NewSQLiteTodoRepo(database),
		tx:    repository.NewSQLiteTransactor(testutil.NewTestUoW(database)),
	}
}

func newMemoryRepos() testRepos {
	store := repository.NewStore()
	return testRepos{tasks: store.Tasks(), todos: store.Todos(), tx: store}
}

// eachStore runs fn against a fresh memory store and a fresh SQLite database.
func eachStore(t *testing.T, fn func(t *testing.T, r testRepos)) {
	t.Run("memory", func(t *testing.T) { fn(t, newMemoryRepos()) })
	t.Run("sqlite", func(t *testing.T) { fn(t, newSQLiteRepos(t)) })
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}
