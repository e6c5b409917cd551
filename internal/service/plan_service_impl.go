package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gradpath/internal/app"
	"github.com/alexanderramin/gradpath/internal/audit"
	"github.com/alexanderramin/gradpath/internal/cache"
	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/importer"
	"github.com/alexanderramin/gradpath/internal/matcher"
	"github.com/alexanderramin/gradpath/internal/optimizer"
	"github.com/alexanderramin/gradpath/internal/planner"
	"github.com/alexanderramin/gradpath/internal/repository"
	"github.com/alexanderramin/gradpath/internal/validate"
)

type planService struct {
	catalogs       CatalogSource
	defaultCatalog string
	archive        repository.PlanArchive
	cache          *cache.ResponseCache
	rules          *matcher.Rules
	observer       UseCaseObserver
}

// Option configures optional collaborators of the plan service.
type Option func(*planService)

// WithArchive enables archiving for requests that ask for it.
func WithArchive(a repository.PlanArchive) Option {
	return func(s *planService) { s.archive = a }
}

// WithCache memoizes generate responses.
func WithCache(c *cache.ResponseCache) Option {
	return func(s *planService) { s.cache = c }
}

// WithRules replaces the embedded matcher rule tables.
func WithRules(r *matcher.Rules) Option {
	return func(s *planService) { s.rules = r }
}

// WithObserver installs a use-case observer.
func WithObserver(o UseCaseObserver) Option {
	return func(s *planService) { s.observer = useCaseObserverOrNoop([]UseCaseObserver{o}) }
}

// NewPlanService wires the planning pipeline. defaultCatalog is used when a
// request names no catalog.
func NewPlanService(catalogs CatalogSource, defaultCatalog string, opts ...Option) PlanService {
	s := &planService{
		catalogs:       catalogs,
		defaultCatalog: defaultCatalog,
		rules:          matcher.Default(),
		observer:       NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *planService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *planService) catalogPath(p string) string {
	return domain.CoalesceStr(p, s.defaultCatalog)
}

func (s *planService) Catalog(ctx context.Context, path string) (*catalog.Catalog, *catalog.LoadReport, error) {
	path = s.catalogPath(path)
	cat, report, err := s.catalogs.Get(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return cat, report, nil
}

// Generate runs the full pipeline: resolve completed courses, fill, validate,
// audit, optimize for the requested number of passes, and score GPAs.
func (s *planService) Generate(ctx context.Context, req app.PlanRequest) (resp *app.PlanResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"goal": req.Goal}
	defer func() { s.observe(ctx, "generate", startedAt, fields, err) }()

	req.CatalogPath = s.catalogPath(req.CatalogPath)
	fields["catalog"] = req.CatalogPath

	cat, report, err := s.Catalog(ctx, req.CatalogPath)
	if err != nil {
		return nil, err
	}

	key, keyErr := cache.Key(cache.KeyPrefix, cat.Fingerprint(), req)
	if keyErr == nil && !req.Save {
		var cached app.PlanResponse
		if s.cache.Load(ctx, key, &cached) {
			fields["cache"] = "hit"
			return &cached, nil
		}
	}

	resp, err = s.generate(req, cat)
	if err != nil {
		return nil, asPlanError(err)
	}
	resp.Warnings = append(loadReportWarnings(report), resp.Warnings...)
	fields["gaps"] = len(resp.Audit.Admissions.Gaps) + len(resp.Audit.Graduation.Gaps)

	if req.Save {
		if err = s.save(ctx, req, cat, resp); err != nil {
			return nil, err
		}
		fields["document_id"] = resp.DocumentID
	} else if keyErr == nil {
		s.cache.Save(ctx, key, resp)
	}
	return resp, nil
}

func (s *planService) generate(req app.PlanRequest, cat *catalog.Catalog) (*app.PlanResponse, error) {
	completed, resolutions := catalog.ResolveCompleted(cat, completedInputs(req))

	cfg, err := plannerConfig(req, completed)
	if err != nil {
		return nil, err
	}
	cfg.Rules = s.rules

	plan := domain.NewPlan(cfg.Goal)
	fill, err := planner.Fill(plan, cat, cfg)
	if err != nil {
		return nil, err
	}

	resp := &app.PlanResponse{
		Inputs:            req,
		CompletedResolved: resolutions,
		Plan:              plan,
		Fill:              fill,
		Validation:        validate.Run(plan, cat, completed),
		Optimizer:         []optimizer.Result{},
		Warnings:          resolutionWarnings(resolutions),
	}

	report := audit.Run(plan, s.rules)
	optCfg := optimizer.Config{PreferSpanish: req.PreferSpanish, Completed: completed}
	for i := 0; i < req.OptimizerPasses; i++ {
		if len(report.Admissions.Unmet()) == 0 {
			break
		}
		res := optimizer.Optimize(plan, cat, report.Admissions, optCfg, fill.Used)
		resp.Optimizer = append(resp.Optimizer, res)
		report = audit.Run(plan, s.rules)
		if len(res.Inserted) == 0 {
			break
		}
	}
	resp.Audit = report

	resp.GPA, err = computeGPA(plan, cat, req.GPA, req.UCConfig)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *planService) save(ctx context.Context, req app.PlanRequest, cat *catalog.Catalog, resp *app.PlanResponse) error {
	if s.archive == nil {
		resp.Warnings = append(resp.Warnings, "archive disabled; plan not saved")
		return nil
	}
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	respJSON, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	doc := &repository.PlanDocument{
		Goal:               req.Goal,
		CatalogPath:        req.CatalogPath,
		CatalogFingerprint: cat.Fingerprint(),
		OptimizerPasses:    req.OptimizerPasses,
		Request:            reqJSON,
		Response:           respJSON,
		AdmissionsGaps:     resp.Audit.Admissions.Gaps,
		GraduationGaps:     resp.Audit.Graduation.Gaps,
	}
	if err := s.archive.Create(ctx, doc); err != nil {
		return fmt.Errorf("archiving plan: %w", err)
	}
	resp.DocumentID = doc.ID
	return nil
}

// Audit scores an existing plan without filling or optimizing it.
func (s *planService) Audit(ctx context.Context, req app.AuditRequest) (resp *app.AuditResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { s.observe(ctx, "audit", startedAt, fields, err) }()

	if req.Plan == nil {
		return nil, &app.PlanError{Code: app.PlanErrInvalidDoc, Message: "no plan to audit"}
	}
	fields["goal"] = string(req.Plan.Goal)

	cat, _, err := s.Catalog(ctx, req.CatalogPath)
	if err != nil {
		return nil, err
	}
	completed, _ := catalog.ResolveCompleted(cat, req.Completed)

	resp = &app.AuditResponse{
		Plan:       req.Plan,
		Validation: validate.Run(req.Plan, cat, completed),
		Audit:      audit.Run(req.Plan, s.rules),
	}
	resp.GPA, err = computeGPA(req.Plan, cat, req.GPA, req.UCConfig)
	if err != nil {
		return nil, asPlanError(err)
	}
	fields["gaps"] = len(resp.Audit.Admissions.Gaps) + len(resp.Audit.Graduation.Gaps)
	return resp, nil
}

// AuditDocument validates and converts a plan document, then audits it with
// default grading assumptions.
func (s *planService) AuditDocument(ctx context.Context, doc *importer.PlanDocument, catalogPath string) (*app.AuditResponse, error) {
	if errs := importer.ValidatePlanDocument(doc); len(errs) > 0 {
		return nil, &app.PlanError{Code: app.PlanErrInvalidDoc, Message: errors.Join(errs...).Error()}
	}
	plan, err := importer.Convert(doc)
	if err != nil {
		return nil, &app.PlanError{Code: app.PlanErrInvalidDoc, Message: err.Error()}
	}
	defaults := app.NewPlanRequest()
	return s.Audit(ctx, app.AuditRequest{
		CatalogPath: catalogPath,
		Plan:        plan,
		Completed:   doc.CompletedCourses,
		GPA:         defaults.GPA,
		UCConfig:    defaults.UCConfig,
	})
}

func (s *planService) ListPlans(ctx context.Context, limit int) ([]*repository.DocumentSummary, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	docs, err := s.archive.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	return docs, nil
}

func (s *planService) GetPlan(ctx context.Context, id string) (*repository.PlanDocument, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	doc, err := s.archive.GetByID(ctx, id)
	if err != nil {
		return nil, asPlanError(err)
	}
	return doc, nil
}

// ErrArchiveDisabled is returned by archive reads when no archive is wired.
var ErrArchiveDisabled = errors.New("plan archive is not configured")
