package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private archive that lives only as long as the handle.
const MemoryPath = ":memory:"

// connPragmas are applied by the driver to every pooled connection.
// busy_timeout lets a writer wait out a concurrent archive commit before
// WithinTx falls back to retrying.
var connPragmas = []string{
	"busy_timeout(2000)",
	"foreign_keys(1)",
	"journal_mode(WAL)",
}

// DSN builds the driver source name for an archive at path.
func DSN(path string) string {
	q := url.Values{}
	for _, p := range connPragmas {
		q.Add("_pragma", p)
	}
	return path + "?" + q.Encode()
}

// OpenDB opens the plan archive at path, creating its directory if needed,
// and brings the schema up to date.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	if path == MemoryPath {
		// Each pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to archive %s: %w", path, err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating archive %s: %w", path, err)
	}
	return db, nil
}
