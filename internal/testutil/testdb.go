package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/gradpath/internal/db"
)

// NewTestDB opens a migrated in-memory archive that is closed with the test.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return openArchive(t, ":memory:")
}

// NewFileTestDB opens a migrated archive file in a temp directory. Unlike
// :memory:, every pooled connection sees the same data, so it is the one to
// use when a test needs concurrent readers and writers.
func NewFileTestDB(t testing.TB, maxConns int) *sql.DB {
	t.Helper()
	database := openArchive(t, filepath.Join(t.TempDir(), "archive.db"))
	database.SetMaxOpenConns(maxConns)
	return database
}

// NewTestUoW returns the production unit of work over database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

func openArchive(t testing.TB, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	if err != nil {
		t.Fatalf("opening test archive %s: %v", path, err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}
