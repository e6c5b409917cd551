package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/gradpath/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*db.SQLiteUnitOfWork, db.DBTX) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database), database
}

func insertWithGap(ctx context.Context, tx db.DBTX, id string) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO plan_documents
		(id, goal, catalog_path, catalog_fingerprint, request_json, response_json, created_at)
		VALUES (?, 'cs', 'c.csv', 'fp', '{}', '{}', '2026-01-01T00:00:00Z')`, id); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO plan_gaps (document_id, rubric, position, message)
		VALUES (?, 'graduation', 0, 'Total credits short')`, id)
	return err
}

func countDocs(t *testing.T, q db.DBTX, id string) int {
	t.Helper()
	var n int
	require.NoError(t, q.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM plan_documents WHERE id = ?`, id).Scan(&n))
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, q := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertWithGap(ctx, tx, "k1")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countDocs(t, q, "k1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, q := openUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertWithGap(ctx, tx, "k2"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countDocs(t, q, "k2"), "document should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, q := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertWithGap(ctx, tx, "k3")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countDocs(t, q, "k3"))
}

func TestWithinTx_RetriesBusyDatabase(t *testing.T) {
	uow, q := openUoW(t)
	uow.WithBusyRetry(3, time.Millisecond)

	attempts := 0
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		attempts++
		if err := insertWithGap(ctx, tx, "k4"); err != nil {
			return err
		}
		if attempts == 1 {
			return errors.New("database is locked (5) (SQLITE_BUSY)")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 1, countDocs(t, q, "k4"), "the failed attempt was rolled back")
}

func TestWithinTx_GivesUpAfterAttempts(t *testing.T) {
	uow, _ := openUoW(t)
	uow.WithBusyRetry(2, time.Millisecond)

	attempts := 0
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		attempts++
		return errors.New("database is locked")
	})
	require.Error(t, err)
	assert.True(t, db.IsBusy(err))
	assert.Equal(t, 2, attempts)
}

func TestWithinTx_DoesNotRetryOtherErrors(t *testing.T) {
	uow, _ := openUoW(t)
	boom := errors.New("constraint failed")

	attempts := 0
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		attempts++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, attempts)
}
