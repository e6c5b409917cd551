package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plan_documents (
		id                  TEXT PRIMARY KEY,
		goal                TEXT NOT NULL CHECK(goal IN ('cs','pre_med','biotech')),
		catalog_path        TEXT NOT NULL,
		catalog_fingerprint TEXT NOT NULL,
		request_json        TEXT NOT NULL,
		response_json       TEXT NOT NULL,
		created_at          TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS plan_gaps (
		document_id TEXT NOT NULL REFERENCES plan_documents(id) ON DELETE CASCADE,
		rubric      TEXT NOT NULL CHECK(rubric IN ('admissions','graduation')),
		position    INTEGER NOT NULL,
		message     TEXT NOT NULL,
		PRIMARY KEY (document_id, rubric, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_documents_created ON plan_documents(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_documents_goal ON plan_documents(goal)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_gaps_document ON plan_gaps(document_id)`,
	`ALTER TABLE plan_documents ADD COLUMN optimizer_passes INTEGER NOT NULL DEFAULT 1`,
	`CREATE TRIGGER IF NOT EXISTS plan_documents_write_once
		BEFORE UPDATE ON plan_documents
		BEGIN SELECT RAISE(ABORT, 'plan documents are write-once'); END`,
	`CREATE TRIGGER IF NOT EXISTS plan_gaps_write_once
		BEFORE UPDATE ON plan_gaps
		BEGIN SELECT RAISE(ABORT, 'plan gaps are write-once'); END`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
