package gpa

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradpath/internal/domain"
)

// DistrictConfig assigns assumed letters. An override for a title wins,
// then the default for the title's level (P, HP, AP), then DefaultLetter.
type DistrictConfig struct {
	DefaultLetter string
	ByLevel       map[string]string
	Overrides     map[string]string
	IncludeGrade9 bool
}

// DistrictEntry is one course's contribution.
type DistrictEntry struct {
	Grade            int     `json:"grade"`
	Course           string  `json:"course"`
	Letter           string  `json:"letter"`
	WeightedCourse   bool    `json:"weighted_course"`
	PointsUnweighted float64 `json:"points_unweighted"`
	PointsWeighted   float64 `json:"points_weighted"`
	CourseWeight     float64 `json:"course_weight"`
}

// District is the district-scale result.
type District struct {
	Unweighted  float64         `json:"hs_unweighted_gpa"`
	Weighted    float64         `json:"hs_weighted_gpa"`
	CourseUnits float64         `json:"courses_count_equiv"`
	Breakdown   []DistrictEntry `json:"breakdown"`
}

// WeightedCourse reports whether a title earns the district weighting: an
// "AP " prefix or the "(HP)" designation.
func WeightedCourse(title string) bool {
	t := strings.TrimSpace(title)
	return strings.HasPrefix(t, "AP ") || strings.Contains(t, "(HP)")
}

// LevelKey is the by-level key for a title.
func LevelKey(title string) string {
	t := strings.TrimSpace(title)
	switch {
	case strings.HasPrefix(t, "AP "):
		return "AP"
	case strings.Contains(t, "(HP)"):
		return "HP"
	}
	return "P"
}

func (c DistrictConfig) letterFor(title string) string {
	if l, ok := c.Overrides[title]; ok {
		return l
	}
	if l, ok := c.ByLevel[LevelKey(title)]; ok {
		return l
	}
	return domain.CoalesceStr(c.DefaultLetter, DefaultLetter)
}

// ComputeDistrict averages every planned course on the district scale. Each
// pair half counts half a course. Grade 9 is skipped unless IncludeGrade9.
func ComputeDistrict(plan *domain.Plan, cfg DistrictConfig) (District, error) {
	out := District{Breakdown: []DistrictEntry{}}
	var unw, w float64
	for i := range plan.Years {
		y := &plan.Years[i]
		if y.Grade == domain.FirstGrade && !cfg.IncludeGrade9 {
			continue
		}
		for _, s := range y.Slots {
			for _, u := range slotUnits(s, nil) {
				letter := cfg.letterFor(u.title)
				pu, err := Points(letter, false)
				if err != nil {
					return District{}, fmt.Errorf("grade %d %q: %w", y.Grade, u.title, err)
				}
				weighted := WeightedCourse(u.title)
				pw, _ := Points(letter, weighted)
				unw += u.units * pu
				w += u.units * pw
				out.CourseUnits += u.units
				out.Breakdown = append(out.Breakdown, DistrictEntry{
					Grade: y.Grade, Course: u.title, Letter: letter, WeightedCourse: weighted,
					PointsUnweighted: pu, PointsWeighted: pw, CourseWeight: u.units,
				})
			}
		}
	}
	if out.CourseUnits > 0 {
		out.Unweighted = round3(unw / out.CourseUnits)
		out.Weighted = round3(w / out.CourseUnits)
	}
	return out, nil
}
