package importer

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/gradpath/internal/domain"
)

// Convert transforms a validated PlanDocument into a domain plan.
// Call ValidatePlanDocument first; Convert assumes the document is valid.
func Convert(doc *PlanDocument) (*domain.Plan, error) {
	goal, err := domain.ParseGoal(doc.Goal)
	if err != nil {
		return nil, err
	}
	plan := domain.NewPlan(goal)

	years := append([]YearDocument(nil), doc.Plan...)
	sort.SliceStable(years, func(i, j int) bool { return years[i].Grade < years[j].Grade })

	for _, yd := range years {
		y, err := plan.Year(yd.Grade)
		if err != nil {
			return nil, err
		}
		if len(yd.Courses) > domain.SlotsPerYear {
			return nil, fmt.Errorf("grade %d: %d slots exceed %d", yd.Grade, len(yd.Courses), domain.SlotsPerYear)
		}
		for i, c := range yd.Courses {
			s, err := slotFrom(c)
			if err != nil {
				return nil, fmt.Errorf("grade %d slot %d: %w", yd.Grade, i, err)
			}
			y.Slots[i] = s
		}
	}
	return plan, nil
}
