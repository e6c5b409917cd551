package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"plan_documents", "plan_gaps"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexesAndTriggers(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_plan_documents_created", "idx_plan_documents_goal", "idx_plan_gaps_document"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
	for _, trg := range []string{"plan_documents_write_once", "plan_gaps_write_once"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='trigger' AND name=?`, trg).Scan(&name)
		require.NoError(t, err, "trigger %s should exist", trg)
	}
}

func insertDoc(t *testing.T, db *sql.DB, id, goal string) error {
	t.Helper()
	_, err := db.Exec(`INSERT INTO plan_documents (id, goal, catalog_path, catalog_fingerprint, request_json, response_json, created_at)
		VALUES (?, ?, 'c.csv', 'fp', '{}', '{}', '2026-01-01T00:00:00Z')`, id, goal)
	return err
}

func TestMigrate_GoalCheckConstraint(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, insertDoc(t, db, "d1", "cs"))
	assert.Error(t, insertDoc(t, db, "d2", "law"))

	var passes int
	require.NoError(t, db.QueryRow(`SELECT optimizer_passes FROM plan_documents WHERE id = 'd1'`).Scan(&passes))
	assert.Equal(t, 1, passes)
}

func TestMigrate_DocumentsAreWriteOnce(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, insertDoc(t, db, "d1", "cs"))
	_, err := db.Exec(`INSERT INTO plan_gaps (document_id, rubric, position, message) VALUES ('d1', 'admissions', 0, 'gap')`)
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE plan_documents SET goal = 'biotech' WHERE id = 'd1'`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write-once")

	_, err = db.Exec(`UPDATE plan_gaps SET message = 'changed'`)
	require.Error(t, err)
}

func TestMigrate_GapsRequireDocument(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO plan_gaps (document_id, rubric, position, message) VALUES ('missing', 'admissions', 0, 'gap')`)
	assert.Error(t, err, "foreign keys are enforced")
}

func TestOpenDB_PragmasApplyToEveryConnection(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "nested", "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(3)

	ctx := context.Background()
	conns := make([]*sql.Conn, 0, 3)
	for range 3 {
		c, err := db.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, c)
	}
	for i, c := range conns {
		var fk, timeout int
		var mode string
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
		assert.Equal(t, 1, fk, "connection %d", i)
		assert.Equal(t, 2000, timeout, "connection %d", i)
		assert.Equal(t, "wal", mode, "connection %d", i)
	}
	for _, c := range conns {
		require.NoError(t, c.Close())
	}
}

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"archive.db?_pragma=busy_timeout%282000%29&_pragma=foreign_keys%281%29&_pragma=journal_mode%28WAL%29",
		DSN("archive.db"))
}
