package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradpath/internal/app"
	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/gpa"
	"github.com/alexanderramin/gradpath/internal/pathway"
	"github.com/alexanderramin/gradpath/internal/planner"
	"github.com/alexanderramin/gradpath/internal/repository"
)

// asPlanError converts configuration failures into the typed request error
// and passes every other error through.
func asPlanError(err error) error {
	var pe *app.PlanError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &pe):
		return pe
	case errors.Is(err, domain.ErrInvalidConfig):
		return &app.PlanError{Code: app.PlanErrInvalidConfig, Message: err.Error()}
	case errors.Is(err, repository.ErrNotFound):
		return &app.PlanError{Code: app.PlanErrNotFound, Message: err.Error()}
	}
	return err
}

// completedInputs lists every course the request reports as finished. The
// completed math course is part of the exclusion set like any other.
func completedInputs(req app.PlanRequest) []string {
	out := append([]string(nil), req.CompletedCourses...)
	m := strings.TrimSpace(req.CompletedMath)
	if m == "" {
		return out
	}
	for _, c := range out {
		if strings.EqualFold(strings.TrimSpace(c), m) {
			return out
		}
	}
	return append(out, m)
}

// plannerConfig builds the per-request sequencers. Every unknown key is
// reported at once.
func plannerConfig(req app.PlanRequest, completed domain.TitleSet) (planner.Config, error) {
	var errs []error
	goal, err := domain.ParseGoal(req.Goal)
	errs = append(errs, err)

	english, err := domain.ParseLevel(req.CourseLevelPrefs.English)
	errs = append(errs, prefixed("course_level_prefs.english", err))
	history, err := domain.ParseLevel(req.CourseLevelPrefs.History)
	errs = append(errs, prefixed("course_level_prefs.history", err))
	sciLevel, err := domain.ParseLevel(req.CourseLevelPrefs.Science)
	errs = append(errs, prefixed("course_level_prefs.science", err))

	math, err := pathway.NewMath(req.StartingMath, req.CompletedMath)
	errs = append(errs, prefixed("starting_math", err))
	science, err := pathway.NewScience(req.SciencePathway, sciLevel)
	errs = append(errs, prefixed("science_pathway", err))

	if req.OptimizerPasses < 0 {
		errs = append(errs, fmt.Errorf("%w: optimizer_passes must not be negative", domain.ErrInvalidConfig))
	}

	if err := errors.Join(errs...); err != nil {
		return planner.Config{}, err
	}
	return planner.Config{
		Goal:          goal,
		PreferSpanish: req.PreferSpanish,
		Completed:     completed,
		English:       pathway.NewEnglish(english),
		Math:          math,
		Science:       science,
		History:       pathway.NewHistory(history),
	}, nil
}

func prefixed(field string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", field, err)
}

func computeGPA(plan *domain.Plan, cat *catalog.Catalog, g app.GPAConfig, uc app.AdmissionsGPAConfig) (app.GPAReport, error) {
	district, err := gpa.ComputeDistrict(plan, gpa.DistrictConfig{
		DefaultLetter: g.DefaultLetter,
		ByLevel:       g.ByLevel,
		Overrides:     g.Overrides,
		IncludeGrade9: domain.BoolFromPtrWithDefault(true, g.IncludeGrade9),
	})
	if err != nil {
		return app.GPAReport{}, fmt.Errorf("district gpa: %w", err)
	}
	adm, err := gpa.ComputeAdmissions(plan, cat, gpa.AdmissionsConfig{
		DefaultLetter:     g.DefaultLetter,
		Overrides:         g.Overrides,
		MaxBonusSemesters: uc.MaxBonusSemesters,
		HonorsKeywords:    uc.HonorsKeywords,
	})
	if err != nil {
		return app.GPAReport{}, fmt.Errorf("admissions gpa: %w", err)
	}
	return app.GPAReport{District: district, Admissions: adm}, nil
}

func resolutionWarnings(res []catalog.Resolution) []string {
	var out []string
	for _, r := range res {
		if r.Method == catalog.ResolveNone {
			out = append(out, fmt.Sprintf("completed course %q did not match any catalog title; kept as written", r.Input))
		}
	}
	return out
}

func loadReportWarnings(report *catalog.LoadReport) []string {
	if report == nil || len(report.Skipped) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("catalog: %d malformed rows skipped", len(report.Skipped))}
}
