// Package audit scores a plan against the admissions (A-G) rubric and the
// district graduation rubric, and tallies rigor. Every audit is a pure fold
// over the plan: nothing is cached between calls.
package audit

import (
	"fmt"

	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/matcher"
)

const epsilon = 1e-9

// AdmissionsMinimums are the year counts required per category.
var AdmissionsMinimums = map[domain.Category]float64{
	domain.CategoryHistory:  2,
	domain.CategoryEnglish:  4,
	domain.CategoryMath:     3,
	domain.CategoryScience:  2,
	domain.CategoryLanguage: 2,
	domain.CategoryArts:     1,
	domain.CategoryElective: 1,
}

// Admissions is the A-G audit result.
type Admissions struct {
	Counts map[domain.Category]float64 `json:"counts"`
	// CountedElective is the g count from classified titles alone;
	// EffectiveElective adds the surplus of a-f over their minimums.
	CountedElective   float64                  `json:"counted_elective"`
	SurplusAF         float64                  `json:"surplus_a_f"`
	EffectiveElective float64                  `json:"effective_elective"`
	Met               map[domain.Category]bool `json:"met"`
	Gaps              []string                 `json:"gaps"`
}

// AuditAdmissions counts A-G years. A full-year slot adds 1.0 to its
// title's category; each half of a linked pair adds 0.5. Unclassified
// titles count nowhere.
func AuditAdmissions(plan *domain.Plan, rules *matcher.Rules) Admissions {
	counts := make(map[domain.Category]float64, len(domain.Categories))
	for _, c := range domain.Categories {
		counts[c] = 0
	}
	for _, y := range plan.Years {
		for _, slot := range y.Slots {
			for _, title := range slot.Titles() {
				if c, ok := rules.Category(title); ok {
					counts[c] += slot.Weight()
				}
			}
		}
	}
	return ScoreAdmissions(counts)
}

// ScoreAdmissions applies the minimums to a set of counts.
func ScoreAdmissions(counts map[domain.Category]float64) Admissions {
	a := Admissions{
		Counts: make(map[domain.Category]float64, len(domain.Categories)),
		Met:    make(map[domain.Category]bool, len(domain.Categories)),
		Gaps:   []string{},
	}
	for _, c := range domain.Categories {
		a.Counts[c] = counts[c]
	}

	for _, c := range domain.Categories {
		if c == domain.CategoryElective {
			continue
		}
		if surplus := a.Counts[c] - AdmissionsMinimums[c]; surplus > 0 {
			a.SurplusAF += surplus
		}
	}
	a.CountedElective = a.Counts[domain.CategoryElective]
	a.EffectiveElective = a.CountedElective + a.SurplusAF

	for _, c := range domain.Categories {
		need := AdmissionsMinimums[c]
		have := a.Counts[c]
		if c == domain.CategoryElective {
			have = a.EffectiveElective
		}
		a.Met[c] = have+epsilon >= need
		if a.Met[c] {
			continue
		}
		if c == domain.CategoryElective {
			a.Gaps = append(a.Gaps, fmt.Sprintf(
				"Missing %s (%s): effective %.1f (counted %.1f + surplus a-f %.1f), need %.0f",
				c, c.Name(), a.EffectiveElective, a.CountedElective, a.SurplusAF, need))
			continue
		}
		a.Gaps = append(a.Gaps, fmt.Sprintf("Missing %s (%s): have %.1f, need %.0f", c, c.Name(), have, need))
	}
	return a
}

// Unmet lists the categories below their minimum, in rubric order.
func (a Admissions) Unmet() []domain.Category {
	var out []domain.Category
	for _, c := range domain.Categories {
		if !a.Met[c] {
			out = append(out, c)
		}
	}
	return out
}

// Shortfall returns how far category c is below its minimum, or 0.
func (a Admissions) Shortfall(c domain.Category) float64 {
	have := a.Counts[c]
	if c == domain.CategoryElective {
		have = a.EffectiveElective
	}
	if d := AdmissionsMinimums[c] - have; d > epsilon {
		return d
	}
	return 0
}
