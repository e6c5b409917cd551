package gpa

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
)

// Admissions scale defaults.
const DefaultMaxBonusSemesters = 8

// DefaultHonorsKeywords mark a title as honors for the capped bonus. Matching
// is case-sensitive so "AP " does not hit words ending in "ap".
var DefaultHonorsKeywords = []string{"(HP)", "AP ", "Honors "}

// AdmissionsConfig assigns assumed letters and bounds the honors bonus.
type AdmissionsConfig struct {
	DefaultLetter     string
	Overrides         map[string]string
	MaxBonusSemesters int
	HonorsKeywords    []string
}

// AdmissionsEntry is one included A-G course.
type AdmissionsEntry struct {
	Grade          int     `json:"grade"`
	Course         string  `json:"course"`
	Units          float64 `json:"units"`
	Area           string  `json:"ag"`
	Letter         string  `json:"letter"`
	Points         float64 `json:"points"`
	HonorsEligible bool    `json:"honors_eligible,omitempty"`
	BonusUnits     float64 `json:"bonus_units_added,omitempty"`
}

// Exclusion is a course left out of the admissions average.
type Exclusion struct {
	Grade  int    `json:"grade"`
	Course string `json:"course"`
	Reason string `json:"reason"`
}

// Unweighted is an admissions average over a grade window.
type Unweighted struct {
	GPA         float64           `json:"gpa"`
	CourseUnits float64           `json:"course_units"`
	Included    []AdmissionsEntry `json:"included"`
	Excluded    []Exclusion       `json:"excluded"`
}

// WeightedCapped is the 10-11 average with the capped honors bonus.
type WeightedCapped struct {
	GPA          float64           `json:"weighted_capped_gpa"`
	BaseGPA      float64           `json:"base_unweighted_gpa"`
	BonusPoints  float64           `json:"bonus_points_total"`
	BonusCourses int               `json:"bonus_courses_applied_count"`
	CourseUnits  float64           `json:"course_units"`
	Included     []AdmissionsEntry `json:"included"`
	Excluded     []Exclusion       `json:"excluded"`
}

// Admissions groups the three admissions averages.
type Admissions struct {
	Unweighted911      Unweighted     `json:"unweighted_9_11"`
	Unweighted1011     Unweighted     `json:"unweighted_10_11"`
	WeightedCapped1011 WeightedCapped `json:"weighted_capped_10_11"`
}

const reasonNotAG = "not a-g"

// SemesterTitle reports whether a standalone title is a one-semester course.
func SemesterTitle(title string) bool {
	t := strings.ToLower(title)
	return strings.Contains(t, "(sem") || strings.Contains(t, " semester")
}

func (c AdmissionsConfig) letterFor(title string) string {
	if l, ok := c.Overrides[title]; ok {
		return l
	}
	return domain.CoalesceStr(c.DefaultLetter, DefaultLetter)
}

func (c AdmissionsConfig) honors(title string) bool {
	keys := c.HonorsKeywords
	if len(keys) == 0 {
		keys = DefaultHonorsKeywords
	}
	for _, k := range keys {
		if k != "" && strings.Contains(title, k) {
			return true
		}
	}
	return false
}

func (c AdmissionsConfig) maxBonusUnits() float64 {
	n := c.MaxBonusSemesters
	if n <= 0 {
		n = DefaultMaxBonusSemesters
	}
	return float64(n) * 0.5
}

// walk visits every A-G course unit in the given grades and records the
// rest as exclusions. A course counts as A-G when the catalog gives it an
// area.
func walk(plan *domain.Plan, cat *catalog.Catalog, grades map[int]bool, visit func(grade int, u unit, area domain.Category) error) ([]Exclusion, error) {
	excluded := []Exclusion{}
	for i := range plan.Years {
		y := &plan.Years[i]
		if !grades[y.Grade] {
			continue
		}
		for _, s := range y.Slots {
			for _, u := range slotUnits(s, SemesterTitle) {
				course, ok := cat.Get(u.title)
				if !ok || course.Area == "" {
					excluded = append(excluded, Exclusion{Grade: y.Grade, Course: u.title, Reason: reasonNotAG})
					continue
				}
				if err := visit(y.Grade, u, course.Area); err != nil {
					return nil, err
				}
			}
		}
	}
	return excluded, nil
}

func computeUnweighted(plan *domain.Plan, cat *catalog.Catalog, cfg AdmissionsConfig, grades map[int]bool) (Unweighted, error) {
	out := Unweighted{Included: []AdmissionsEntry{}}
	var total float64
	excluded, err := walk(plan, cat, grades, func(grade int, u unit, area domain.Category) error {
		letter := cfg.letterFor(u.title)
		pts, err := Points(letter, false)
		if err != nil {
			return fmt.Errorf("grade %d %q: %w", grade, u.title, err)
		}
		total += pts * u.units
		out.CourseUnits += u.units
		out.Included = append(out.Included, AdmissionsEntry{
			Grade: grade, Course: u.title, Units: u.units, Area: string(area), Letter: letter, Points: pts,
		})
		return nil
	})
	if err != nil {
		return Unweighted{}, err
	}
	out.Excluded = excluded
	if out.CourseUnits > 0 {
		out.GPA = round3(total / out.CourseUnits)
	}
	out.CourseUnits = round3(out.CourseUnits)
	return out, nil
}

func computeWeightedCapped(plan *domain.Plan, cat *catalog.Catalog, cfg AdmissionsConfig) (WeightedCapped, error) {
	out := WeightedCapped{Included: []AdmissionsEntry{}}
	var base, bonus float64
	maxBonus := cfg.maxBonusUnits()
	excluded, err := walk(plan, cat, map[int]bool{10: true, 11: true}, func(grade int, u unit, area domain.Category) error {
		letter := cfg.letterFor(u.title)
		pts, err := Points(letter, false)
		if err != nil {
			return fmt.Errorf("grade %d %q: %w", grade, u.title, err)
		}
		base += pts * u.units
		out.CourseUnits += u.units

		e := AdmissionsEntry{
			Grade: grade, Course: u.title, Units: u.units, Area: string(area), Letter: letter, Points: pts,
			HonorsEligible: cfg.honors(u.title),
		}
		if e.HonorsEligible && bonus < maxBonus {
			e.BonusUnits = min(u.units, maxBonus-bonus)
			bonus += e.BonusUnits
			out.BonusCourses++
		}
		out.Included = append(out.Included, e)
		return nil
	})
	if err != nil {
		return WeightedCapped{}, err
	}
	out.Excluded = excluded
	out.BonusPoints = round3(bonus)
	if out.CourseUnits > 0 {
		out.BaseGPA = round3(base / out.CourseUnits)
		out.GPA = round3((base + bonus) / out.CourseUnits)
	}
	out.CourseUnits = round3(out.CourseUnits)
	return out, nil
}

// ComputeAdmissions returns the 9-11 and 10-11 unweighted averages and the
// 10-11 weighted-capped average. Each honors unit in 10-11 adds one point
// until the semester cap is spent.
func ComputeAdmissions(plan *domain.Plan, cat *catalog.Catalog, cfg AdmissionsConfig) (Admissions, error) {
	var (
		out Admissions
		err error
	)
	if out.Unweighted911, err = computeUnweighted(plan, cat, cfg, map[int]bool{9: true, 10: true, 11: true}); err != nil {
		return Admissions{}, err
	}
	if out.Unweighted1011, err = computeUnweighted(plan, cat, cfg, map[int]bool{10: true, 11: true}); err != nil {
		return Admissions{}, err
	}
	if out.WeightedCapped1011, err = computeWeightedCapped(plan, cat, cfg); err != nil {
		return Admissions{}, err
	}
	return out, nil
}
