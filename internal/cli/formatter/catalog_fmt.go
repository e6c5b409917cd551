package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
)

// FormatCatalog lists every course with its grades and A-G area, followed by
// the load report.
func FormatCatalog(cat *catalog.Catalog, report *catalog.LoadReport) string {
	rows := make([][]string, 0, cat.Len())
	for _, c := range cat.Courses() {
		area := Dim("--")
		if c.Area != "" {
			area = StylePurple.Render(strings.ToUpper(string(c.Area)))
		}
		rows = append(rows, []string{c.Title, gradeList(c.Grades), area, Dim(c.Section)})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"TITLE", "GRADES", "A-G", "SECTION"}, rows))
	if report != nil {
		fmt.Fprintf(&b, "\n%d courses in %d sections", report.Courses, report.Sections)
		if len(report.Duplicates) > 0 {
			fmt.Fprintf(&b, ", %d duplicate titles ignored", len(report.Duplicates))
		}
		b.WriteString("\n")
		for _, s := range report.Skipped {
			b.WriteString(StyleYellow.Render(fmt.Sprintf("  line %d skipped: %s", s.Line, s.Reason)) + "\n")
		}
	}
	return b.String()
}

func gradeList(grades []int) string {
	if len(grades) == len(domain.Grades) {
		return "all"
	}
	parts := make([]string, len(grades))
	for i, g := range grades {
		parts[i] = fmt.Sprintf("%d", g)
	}
	return strings.Join(parts, ",")
}
