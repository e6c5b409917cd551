package service

import (
	"context"

	"github.com/alexanderramin/gradpath/internal/app"
	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/repository"
)

// CatalogSource hands out loaded catalogs. *catalog.Store satisfies it.
type CatalogSource interface {
	Get(path string) (*catalog.Catalog, *catalog.LoadReport, error)
}

type PlanService interface {
	app.GenerateUseCase
	app.AuditUseCase
	app.CatalogUseCase
	ListPlans(ctx context.Context, limit int) ([]*repository.DocumentSummary, error)
	GetPlan(ctx context.Context, id string) (*repository.PlanDocument, error)
}
