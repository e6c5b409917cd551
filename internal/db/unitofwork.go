package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// UnitOfWork runs a callback inside one transaction. Archive writes use it so
// a plan document and its gap rows commit together or not at all.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// DefaultBusyAttempts is how many times a transaction that hit a locked
// database is run before the error is returned.
const DefaultBusyAttempts = 3

// SQLiteUnitOfWork implements UnitOfWork with database/sql transactions.
// A transaction that fails because another connection holds the write lock
// is rolled back and run again with a short backoff.
type SQLiteUnitOfWork struct {
	db       *sql.DB
	attempts int
	backoff  time.Duration
}

// NewSQLiteUnitOfWork creates a UnitOfWork backed by db.
func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db, attempts: DefaultBusyAttempts, backoff: 25 * time.Millisecond}
}

// WithBusyRetry overrides the attempt count and base backoff. attempts < 1
// means a single attempt.
func (u *SQLiteUnitOfWork) WithBusyRetry(attempts int, backoff time.Duration) *SQLiteUnitOfWork {
	u.attempts = max(attempts, 1)
	u.backoff = backoff
	return u
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	var err error
	for attempt := 1; ; attempt++ {
		err = u.once(ctx, fn)
		if err == nil || !IsBusy(err) || attempt >= u.attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for database lock: %w", ctx.Err())
		case <-time.After(time.Duration(attempt) * u.backoff):
		}
	}
}

func (u *SQLiteUnitOfWork) once(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// IsBusy reports whether err is SQLite refusing a lock held by another
// connection.
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}
