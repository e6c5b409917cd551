package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradpath/internal/contract"
)

// FormatGPA renders district and admissions GPA projections.
func FormatGPA(g contract.GPAReport) string {
	adm := g.Admissions
	rows := [][]string{
		{"District unweighted", fmt.Sprintf("%.3f", g.District.Unweighted), Dim(Years(g.District.CourseUnits) + " courses")},
		{"District weighted", fmt.Sprintf("%.3f", g.District.Weighted), ""},
		{"A-G unweighted 9-11", fmt.Sprintf("%.3f", adm.Unweighted911.GPA), Dim(Years(adm.Unweighted911.CourseUnits) + " units")},
		{"A-G unweighted 10-11", fmt.Sprintf("%.3f", adm.Unweighted1011.GPA), Dim(Years(adm.Unweighted1011.CourseUnits) + " units")},
		{"A-G weighted capped 10-11", fmt.Sprintf("%.3f", adm.WeightedCapped1011.GPA),
			Dim(fmt.Sprintf("%d bonus semesters", adm.WeightedCapped1011.BonusCourses))},
	}
	var b strings.Builder
	b.WriteString(Header("GPA projection") + "\n")
	b.WriteString(RenderTable([]string{"MEASURE", "GPA", ""}, rows))
	return b.String()
}
