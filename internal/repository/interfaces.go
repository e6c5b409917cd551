package repository

import (
	"context"
	"encoding/json"
	"time"
)

// PlanDocument is one archived generate result. Documents are written once
// and never updated.
type PlanDocument struct {
	ID                 string
	Goal               string
	CatalogPath        string
	CatalogFingerprint string
	OptimizerPasses    int
	Request            json.RawMessage
	Response           json.RawMessage
	AdmissionsGaps     []string
	GraduationGaps     []string
	CreatedAt          time.Time
}

// DocumentSummary is the list view of an archived document.
type DocumentSummary struct {
	ID          string    `json:"id"`
	Goal        string    `json:"goal"`
	CatalogPath string    `json:"catalog_path"`
	GapCount    int       `json:"gap_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type PlanArchive interface {
	Create(ctx context.Context, doc *PlanDocument) error
	GetByID(ctx context.Context, idOrPrefix string) (*PlanDocument, error)
	List(ctx context.Context, limit int) ([]*DocumentSummary, error)
}
