package audit

import (
	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/matcher"
)

// Rigor counts courses by level. Pair halves count 0.5.
type Rigor struct {
	AP      float64 `json:"AP"`
	Honors  float64 `json:"Honors"`
	Regular float64 `json:"P"`
}

// TallyRigor classifies every placed title with domain.LevelOf.
func TallyRigor(plan *domain.Plan) Rigor {
	var r Rigor
	for _, y := range plan.Years {
		for _, slot := range y.Slots {
			for _, title := range slot.Titles() {
				switch domain.LevelOf(title) {
				case domain.CourseAP:
					r.AP += slot.Weight()
				case domain.CourseHonors:
					r.Honors += slot.Weight()
				default:
					r.Regular += slot.Weight()
				}
			}
		}
	}
	return r
}

// Report bundles the three audits of one plan.
type Report struct {
	Admissions Admissions `json:"admissions"`
	Graduation Graduation `json:"graduation"`
	Rigor      Rigor      `json:"rigor"`
}

// Run audits plan with rules.
func Run(plan *domain.Plan, rules *matcher.Rules) Report {
	return Report{
		Admissions: AuditAdmissions(plan, rules),
		Graduation: AuditGraduation(plan, rules),
		Rigor:      TallyRigor(plan),
	}
}
