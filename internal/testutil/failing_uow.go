package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradpath/internal/db"
)

// FailingArchiveUoW runs transactions like the real unit of work but fails
// the Nth INSERT into Table with Err. Archive tests use it to check that a
// document and its gap rows roll back together. Reads are never counted.
type FailingArchiveUoW struct {
	DB    *sql.DB
	Table string
	Nth   int
	Err   error
}

func (u *FailingArchiveUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	wrapped := &failingInserts{DBTX: tx, prefix: "insert into " + strings.ToLower(u.Table), nth: u.Nth, err: u.Err}
	if err := fn(ctx, wrapped); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingInserts struct {
	db.DBTX
	prefix string
	seen   int
	nth    int
	err    error
}

func (f *failingInserts) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	q := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if strings.HasPrefix(q, f.prefix) {
		f.seen++
		if f.seen == f.nth {
			return nil, f.err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
