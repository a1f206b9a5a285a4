package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/db"
)

// timestampLayout is fixed-width so stored strings sort chronologically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTimestamp converts t to UTC text for SQLite storage.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp parses a stored timestamp back into a UTC time.Time.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current time formatted for storage.
func nowUTC() string {
	return formatTimestamp(time.Now())
}

// atomically runs fn in a transaction. When the repository was built on a
// caller's transaction, fn joins it instead of starting a new one.
func atomically(ctx context.Context, conn db.DBTX, fn func(ctx context.Context, tx db.DBTX) error) error {
	database, ok := conn.(*sql.DB)
	if !ok {
		return fn(ctx, conn)
	}
	return db.NewSQLiteUnitOfWork(database).WithinTx(ctx, fn)
}

// storeErr classifies a driver error for the repository layer.
func storeErr(op string, err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	case db.IsBusyError(err):
		return internalErr(op+" (database busy)", err)
	default:
		return internalErr(op, err)
	}
}
