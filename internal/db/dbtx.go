package db

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the archive repository needs. Reads run on the
// pool; a document and its gap rows are written through the *sql.Tx handed
// out by WithinTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

