package importer

import (
	"fmt"

	"github.com/alexanderramin/gradpath/internal/domain"
)

// ValidatePlanDocument checks the document shape before conversion.
// Returns a slice of all validation errors found.
func ValidatePlanDocument(doc *PlanDocument) []error {
	var errs []error

	if doc.Goal == "" {
		errs = append(errs, fmt.Errorf("goal is required"))
	} else if _, err := domain.ParseGoal(doc.Goal); err != nil {
		errs = append(errs, fmt.Errorf("goal: %w", err))
	}

	if len(doc.Plan) != len(domain.Grades) {
		errs = append(errs, fmt.Errorf("plan: expected %d years, found %d", len(domain.Grades), len(doc.Plan)))
	}

	seen := make(map[int]bool)
	for i, y := range doc.Plan {
		prefix := fmt.Sprintf("plan[%d]", i)
		if y.Grade < domain.FirstGrade || y.Grade > domain.LastGrade {
			errs = append(errs, fmt.Errorf("%s.grade: %d out of range %d-%d", prefix, y.Grade, domain.FirstGrade, domain.LastGrade))
		} else if seen[y.Grade] {
			errs = append(errs, fmt.Errorf("%s.grade: duplicate grade %d", prefix, y.Grade))
		}
		seen[y.Grade] = true

		if len(y.Courses) != domain.SlotsPerYear {
			errs = append(errs, fmt.Errorf("%s.courses: expected %d slots, found %d", prefix, domain.SlotsPerYear, len(y.Courses)))
		}
		for j, c := range y.Courses {
			if _, err := slotFrom(c); err != nil {
				errs = append(errs, fmt.Errorf("%s.courses[%d]: %w", prefix, j, err))
			}
		}
	}

	for i, c := range doc.CompletedCourses {
		if c == "" {
			errs = append(errs, fmt.Errorf("completed_courses[%d]: empty title", i))
		}
	}

	return errs
}

// slotFrom interprets one decoded course entry.
func slotFrom(v any) (domain.Slot, error) {
	switch c := v.(type) {
	case nil:
		return domain.EmptySlot(), nil
	case string:
		if c == "" {
			return domain.EmptySlot(), nil
		}
		return domain.Single(c), nil
	case []any:
		if len(c) != 2 {
			return domain.EmptySlot(), fmt.Errorf("semester pair must have 2 titles, found %d", len(c))
		}
		a, okA := c[0].(string)
		b, okB := c[1].(string)
		if !okA || !okB {
			return domain.EmptySlot(), fmt.Errorf("semester pair titles must be strings")
		}
		return domain.NewPair(a, b)
	}
	return domain.EmptySlot(), fmt.Errorf("unsupported course entry of type %T", v)
}
