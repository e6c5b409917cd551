package app

import (
	"context"

	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/importer"
)

type GenerateUseCase interface {
	Generate(ctx context.Context, req PlanRequest) (*PlanResponse, error)
}

type AuditUseCase interface {
	Audit(ctx context.Context, req AuditRequest) (*AuditResponse, error)
	AuditDocument(ctx context.Context, doc *importer.PlanDocument, catalogPath string) (*AuditResponse, error)
}

type CatalogUseCase interface {
	Catalog(ctx context.Context, path string) (*catalog.Catalog, *catalog.LoadReport, error)
}
