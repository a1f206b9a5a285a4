package repository

import (
	"context"

	"github.com/alexanderramin/cadence/internal/db"
)

// Transactor runs fn with repositories whose writes commit or roll back
// together.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tasks TaskRepo, todos TodoRepo) error) error
}

// SQLiteTransactor builds SQLite repositories on the transaction opened by a
// UnitOfWork.
type SQLiteTransactor struct {
	uow db.UnitOfWork
}

var _ Transactor = (*SQLiteTransactor)(nil)

func NewSQLiteTransactor(uow db.UnitOfWork) *SQLiteTransactor {
	return &SQLiteTransactor{uow: uow}
}

func (t *SQLiteTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, tasks TaskRepo, todos TodoRepo) error) error {
	return t.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, NewSQLiteTaskRepo(tx), NewSQLiteTodoRepo(tx))
	})
}

var _ Transactor = (*Store)(nil)

// WithinTx hands fn the store's own handles. Writes made before fn fails are
// kept; callers validate their input before writing.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tasks TaskRepo, todos TodoRepo) error) error {
	return fn(ctx, s.Tasks(), s.Todos())
}
