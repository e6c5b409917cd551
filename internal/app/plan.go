package app

import (
	"github.com/alexanderramin/gradpath/internal/audit"
	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/gpa"
	"github.com/alexanderramin/gradpath/internal/optimizer"
	"github.com/alexanderramin/gradpath/internal/planner"
	"github.com/alexanderramin/gradpath/internal/validate"
)

type LevelPrefs struct {
	English string `json:"english" yaml:"english"`
	History string `json:"history" yaml:"history"`
	Science string `json:"science" yaml:"science"`
}

type GPAConfig struct {
	DefaultLetter string            `json:"default_letter" yaml:"default_letter"`
	Overrides     map[string]string `json:"overrides,omitempty" yaml:"overrides"`
	ByLevel       map[string]string `json:"by_level,omitempty" yaml:"by_level"`
	IncludeGrade9 *bool             `json:"include_grade9_in_hs_gpa,omitempty" yaml:"include_grade9_in_hs_gpa"`
}

type AdmissionsGPAConfig struct {
	MaxBonusSemesters int      `json:"max_bonus_semesters" yaml:"max_bonus_semesters"`
	HonorsKeywords    []string `json:"honors_keywords" yaml:"honors_keywords"`
}

// PlanRequest is the input of one generate call. It is accepted as JSON or
// YAML and echoed back in the response.
type PlanRequest struct {
	CatalogPath      string              `json:"catalog_path" yaml:"catalog_path"`
	Goal             string              `json:"goal" yaml:"goal"`
	StartingMath     string              `json:"starting_math" yaml:"starting_math"`
	CompletedMath    string              `json:"completed_math,omitempty" yaml:"completed_math"`
	SciencePathway   string              `json:"science_pathway" yaml:"science_pathway"`
	PreferSpanish    bool                `json:"prefer_spanish" yaml:"prefer_spanish"`
	CompletedCourses []string            `json:"completed_courses" yaml:"completed_courses"`
	CourseLevelPrefs LevelPrefs          `json:"course_level_prefs" yaml:"course_level_prefs"`
	GPA              GPAConfig           `json:"gpa" yaml:"gpa"`
	UCConfig         AdmissionsGPAConfig `json:"uc_cfg" yaml:"uc_cfg"`
	OptimizerPasses  int                 `json:"optimizer_passes" yaml:"optimizer_passes"`
	Save             bool                `json:"save,omitempty" yaml:"save"`
}

// NewPlanRequest returns a request with every default filled in. Decoding a
// request file on top of it overrides only the fields the file names.
func NewPlanRequest() PlanRequest {
	return PlanRequest{
		Goal:             string(domain.GoalCS),
		StartingMath:     "auto",
		SciencePathway:   "standard_stem",
		PreferSpanish:    true,
		CompletedCourses: []string{},
		CourseLevelPrefs: LevelPrefs{
			English: string(domain.LevelRegular),
			History: string(domain.LevelRegular),
			Science: string(domain.LevelRegular),
		},
		GPA: GPAConfig{DefaultLetter: gpa.DefaultLetter},
		UCConfig: AdmissionsGPAConfig{
			MaxBonusSemesters: gpa.DefaultMaxBonusSemesters,
			HonorsKeywords:    append([]string(nil), gpa.DefaultHonorsKeywords...),
		},
		OptimizerPasses: 1,
	}
}

type GPAReport struct {
	District   gpa.District   `json:"district"`
	Admissions gpa.Admissions `json:"admissions"`
}

// PlanResponse is the full generate result. DocumentID is set only when the
// document was archived.
type PlanResponse struct {
	DocumentID        string               `json:"document_id,omitempty"`
	Inputs            PlanRequest          `json:"inputs"`
	CompletedResolved []catalog.Resolution `json:"completed_resolved"`
	Plan              *domain.Plan         `json:"plan"`
	Fill              *planner.Result      `json:"fill"`
	Validation        validate.Report      `json:"validation"`
	Audit             audit.Report         `json:"audit"`
	Optimizer         []optimizer.Result   `json:"optimizer"`
	GPA               GPAReport            `json:"gpa"`
	Warnings          []string             `json:"warnings,omitempty"`
}

// AuditRequest audits a plan produced elsewhere.
type AuditRequest struct {
	CatalogPath string
	Plan        *domain.Plan
	Completed   []string
	GPA         GPAConfig
	UCConfig    AdmissionsGPAConfig
}

type AuditResponse struct {
	Plan       *domain.Plan    `json:"plan"`
	Validation validate.Report `json:"validation"`
	Audit      audit.Report    `json:"audit"`
	GPA        GPAReport       `json:"gpa"`
}
