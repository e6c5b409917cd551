// Package validate checks a plan against the catalog and the student's
// completed coursework. Checks collect every problem instead of stopping at
// the first one; none of them are fatal.
package validate

import (
	"fmt"

	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/pathway"
)

// Report groups the two validation families.
type Report struct {
	OfferedByGrade []string `json:"offered_by_grade_errors"`
	Backtracking   []string `json:"backtracking_errors"`
}

// OK reports whether both families came back clean.
func (r Report) OK() bool {
	return len(r.OfferedByGrade) == 0 && len(r.Backtracking) == 0
}

// Run executes every check.
func Run(plan *domain.Plan, cat *catalog.Catalog, completed domain.TitleSet) Report {
	return Report{
		OfferedByGrade: OfferedByGrade(plan, cat),
		Backtracking:   NoBacktracking(plan, completed),
	}
}

// OfferedByGrade reports empty slots, titles missing from the catalog, and
// titles placed in a grade that does not offer them. Each occurrence gets
// its own message.
func OfferedByGrade(plan *domain.Plan, cat *catalog.Catalog) []string {
	msgs := []string{}
	if len(plan.Years) != len(domain.Grades) {
		msgs = append(msgs, fmt.Sprintf("plan has %d years, expected %d", len(plan.Years), len(domain.Grades)))
	}
	for i := range plan.Years {
		y := &plan.Years[i]
		for _, s := range y.Slots {
			if s.IsEmpty() {
				msgs = append(msgs, fmt.Sprintf("Grade %d: has empty slot", y.Grade))
				continue
			}
			for _, t := range s.Titles() {
				switch {
				case !cat.Has(t):
					msgs = append(msgs, fmt.Sprintf("Grade %d: course not found in catalog: '%s'", y.Grade, t))
				case !cat.OfferedIn(t, y.Grade):
					msgs = append(msgs, fmt.Sprintf("Grade %d: course '%s' not offered in grade %d", y.Grade, t, y.Grade))
				}
			}
		}
	}
	return msgs
}

// NoBacktracking reports every placed title that repeats completed work or
// sits at or below a completed Spanish level or math course.
func NoBacktracking(plan *domain.Plan, completed domain.TitleSet) []string {
	msgs := []string{}
	if len(completed) == 0 {
		return msgs
	}
	for i := range plan.Years {
		y := &plan.Years[i]
		for _, s := range y.Slots {
			for _, t := range s.Titles() {
				if why := pathway.Backtrack(t, completed); why != "" {
					msgs = append(msgs, fmt.Sprintf("Grade %d: '%s' %s", y.Grade, t, why))
				}
			}
		}
	}
	return msgs
}
