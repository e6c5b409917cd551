package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/gradpath/internal/db"
	"github.com/google/uuid"
)

const (
	rubricAdmissions = "admissions"
	rubricGraduation = "graduation"
)

// minPrefixLen is the shortest ID prefix GetByID accepts.
const minPrefixLen = 6

// SQLitePlanArchive implements PlanArchive using a SQLite database.
type SQLitePlanArchive struct {
	db  db.DBTX
	uow db.UnitOfWork
}

// NewSQLitePlanArchive creates an archive. Writes go through uow so a
// document and its gap rows land together.
func NewSQLitePlanArchive(conn db.DBTX, uow db.UnitOfWork) *SQLitePlanArchive {
	return &SQLitePlanArchive{db: conn, uow: uow}
}

// Create stores doc. An empty ID is assigned a new UUID and a zero CreatedAt
// is set to now; both are written back into doc.
func (r *SQLitePlanArchive) Create(ctx context.Context, doc *PlanDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = nowUTC()
	}
	if doc.OptimizerPasses <= 0 {
		doc.OptimizerPasses = 1
	}

	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO plan_documents
			(id, goal, catalog_path, catalog_fingerprint, request_json, response_json, created_at, optimizer_passes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			doc.ID,
			doc.Goal,
			doc.CatalogPath,
			doc.CatalogFingerprint,
			string(doc.Request),
			string(doc.Response),
			formatTime(doc.CreatedAt),
			doc.OptimizerPasses,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("plan document %s: %w", doc.ID, ErrAlreadyArchived)
			}
			return fmt.Errorf("inserting plan document: %w", err)
		}
		if err := insertGaps(ctx, tx, doc.ID, rubricAdmissions, doc.AdmissionsGaps); err != nil {
			return err
		}
		return insertGaps(ctx, tx, doc.ID, rubricGraduation, doc.GraduationGaps)
	})
}

func insertGaps(ctx context.Context, tx db.DBTX, id, rubric string, gaps []string) error {
	for i, msg := range gaps {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO plan_gaps (document_id, rubric, position, message) VALUES (?, ?, ?, ?)`,
			id, rubric, i, msg)
		if err != nil {
			return fmt.Errorf("inserting %s gap %d: %w", rubric, i, err)
		}
	}
	return nil
}

// GetByID loads a document by full ID or by a unique prefix of at least
// minPrefixLen characters.
func (r *SQLitePlanArchive) GetByID(ctx context.Context, idOrPrefix string) (*PlanDocument, error) {
	id, err := r.resolveID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT id, goal, catalog_path, catalog_fingerprint, request_json, response_json,
		created_at, optimizer_passes
		FROM plan_documents WHERE id = ?`
	var (
		doc       PlanDocument
		req, resp string
		created   string
	)
	err = r.db.QueryRowContext(ctx, query, id).Scan(
		&doc.ID,
		&doc.Goal,
		&doc.CatalogPath,
		&doc.CatalogFingerprint,
		&req,
		&resp,
		&created,
		&doc.OptimizerPasses,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("plan document %s: %w", idOrPrefix, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan document: %w", err)
	}
	doc.Request = []byte(req)
	doc.Response = []byte(resp)
	doc.CreatedAt = parseTime(created)

	if err := r.loadGaps(ctx, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *SQLitePlanArchive) resolveID(ctx context.Context, idOrPrefix string) (string, error) {
	if len(idOrPrefix) < minPrefixLen {
		var id string
		err := r.db.QueryRowContext(ctx, `SELECT id FROM plan_documents WHERE id = ?`, idOrPrefix).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("plan document %s: %w", idOrPrefix, ErrNotFound)
		}
		if err != nil {
			return "", fmt.Errorf("resolving plan document: %w", err)
		}
		return id, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM plan_documents WHERE id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		escapeLike(idOrPrefix)+"%")
	if err != nil {
		return "", fmt.Errorf("resolving plan document: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scanning plan document id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating plan document ids: %w", err)
	}

	switch {
	case len(ids) == 0:
		return "", fmt.Errorf("plan document %s: %w", idOrPrefix, ErrNotFound)
	case len(ids) > 1 && ids[0] != idOrPrefix:
		return "", fmt.Errorf("plan document %s: %w", idOrPrefix, ErrAmbiguousID)
	}
	return ids[0], nil
}

func (r *SQLitePlanArchive) loadGaps(ctx context.Context, doc *PlanDocument) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT rubric, message FROM plan_gaps WHERE document_id = ? ORDER BY rubric, position`, doc.ID)
	if err != nil {
		return fmt.Errorf("listing plan gaps: %w", err)
	}
	defer rows.Close()

	doc.AdmissionsGaps = []string{}
	doc.GraduationGaps = []string{}
	for rows.Next() {
		var rubric, msg string
		if err := rows.Scan(&rubric, &msg); err != nil {
			return fmt.Errorf("scanning plan gap: %w", err)
		}
		if rubric == rubricAdmissions {
			doc.AdmissionsGaps = append(doc.AdmissionsGaps, msg)
		} else {
			doc.GraduationGaps = append(doc.GraduationGaps, msg)
		}
	}
	return rows.Err()
}

// List returns the newest documents first. A non-positive limit lists all.
func (r *SQLitePlanArchive) List(ctx context.Context, limit int) ([]*DocumentSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	query := `SELECT d.id, d.goal, d.catalog_path, d.created_at, COUNT(g.document_id)
		FROM plan_documents d
		LEFT JOIN plan_gaps g ON g.document_id = d.id
		GROUP BY d.id
		ORDER BY d.created_at DESC, d.id
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan documents: %w", err)
	}
	defer rows.Close()

	out := []*DocumentSummary{}
	for rows.Next() {
		var (
			s       DocumentSummary
			created string
		)
		if err := rows.Scan(&s.ID, &s.Goal, &s.CatalogPath, &created, &s.GapCount); err != nil {
			return nil, fmt.Errorf("scanning plan document summary: %w", err)
		}
		s.CreatedAt = parseTime(created)
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan documents: %w", err)
	}
	return out, nil
}
