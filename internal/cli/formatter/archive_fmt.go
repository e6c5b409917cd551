package formatter

import (
	"fmt"

	"github.com/alexanderramin/gradpath/internal/repository"
)

// FormatPlanList renders archived plan summaries, newest first.
func FormatPlanList(docs []*repository.DocumentSummary) string {
	if len(docs) == 0 {
		return Dim("No saved plans.") + "\n"
	}
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		gaps := StyleGreen.Render("0")
		if d.GapCount > 0 {
			gaps = StyleRed.Render(fmt.Sprintf("%d", d.GapCount))
		}
		rows = append(rows, []string{TruncID(d.ID), Bold(d.Goal), gaps, Dim(d.CatalogPath), HumanTimestamp(d.CreatedAt)})
	}
	return RenderTable([]string{"ID", "GOAL", "GAPS", "CATALOG", "CREATED"}, rows)
}
