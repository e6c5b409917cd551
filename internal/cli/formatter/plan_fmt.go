package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradpath/internal/contract"
	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/optimizer"
	"github.com/alexanderramin/gradpath/internal/planner"
	"github.com/alexanderramin/gradpath/internal/validate"
)

// FormatPlan renders the four-year grid, one table per grade.
func FormatPlan(plan *domain.Plan) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Four-year plan (%s)", plan.Goal)) + "\n")
	for _, y := range plan.Years {
		rows := make([][]string, 0, len(y.Slots))
		for i, s := range y.Slots {
			cell := s.String()
			switch {
			case s.IsEmpty():
				cell = Dim(cell)
			case s.IsPair():
				cell = StyleBlue.Render(cell)
			}
			rows = append(rows, []string{fmt.Sprintf("%d", i+1), cell})
		}
		b.WriteString("\n")
		b.WriteString(RenderTable([]string{fmt.Sprintf("GRADE %d", y.Grade), "COURSE"}, rows))
	}
	return b.String()
}

// FormatFill lists the subjects the filler could not place.
func FormatFill(res *planner.Result) string {
	if res == nil || len(res.Misses) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Header("Unfilled requirements") + "\n")
	for _, m := range res.Misses {
		fmt.Fprintf(&b, "  Grade %d %-22s %s\n", m.Grade, m.Subject, Dim(m.Reason))
	}
	return b.String()
}

// FormatValidation renders catalog and sequencing problems, or a single
// check line when there are none.
func FormatValidation(r validate.Report) string {
	var b strings.Builder
	b.WriteString(Header("Validation") + "\n")
	if r.OK() {
		b.WriteString(Check(true) + " No catalog or sequencing problems.\n")
		return b.String()
	}
	for _, msg := range r.OfferedByGrade {
		b.WriteString("  " + StyleYellow.Render(msg) + "\n")
	}
	for _, msg := range r.Backtracking {
		b.WriteString("  " + StyleRed.Render(msg) + "\n")
	}
	return b.String()
}

// FormatOptimizer lists what each gap-filling pass inserted.
func FormatOptimizer(passes []optimizer.Result) string {
	if len(passes) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Header("Gap optimizer") + "\n")
	for i, p := range passes {
		fmt.Fprintf(&b, "  Pass %d: %d inserted\n", i+1, len(p.Inserted))
		for _, ins := range p.Inserted {
			fmt.Fprintf(&b, "    %s Grade %d slot %d: %s %s\n",
				StyleGreen.Render("+"), ins.Grade, ins.Slot+1, ins.Title,
				Dim("("+ins.Category.Name()+")"))
		}
		for _, c := range p.Unresolved {
			fmt.Fprintf(&b, "    %s no candidate for %s\n", StyleRed.Render("-"), c.Name())
		}
	}
	return b.String()
}

// FormatGenerate renders a full planning response.
func FormatGenerate(resp *contract.PlanResponse) string {
	sections := []string{FormatPlan(resp.Plan)}
	if len(resp.CompletedResolved) > 0 {
		var b strings.Builder
		b.WriteString(Header("Completed coursework") + "\n")
		for _, r := range resp.CompletedResolved {
			fmt.Fprintf(&b, "  %-28s → %s %s\n", r.Input, r.Title, Dim(string(r.Method)))
		}
		sections = append(sections, b.String())
	}
	sections = append(sections,
		FormatFill(resp.Fill),
		FormatValidation(resp.Validation),
		FormatOptimizer(resp.Optimizer),
		FormatAdmissions(resp.Audit.Admissions),
		FormatGraduation(resp.Audit.Graduation),
		FormatRigor(resp.Audit.Rigor),
		FormatGPA(resp.GPA),
	)
	if resp.DocumentID != "" {
		sections = append(sections, Dim("Saved as "+resp.DocumentID)+"\n")
	}
	if len(resp.Warnings) > 0 {
		sections = append(sections, Warnings(resp.Warnings))
	}
	return joinSections(sections)
}

// FormatAuditResponse renders the audit of an existing plan.
func FormatAuditResponse(resp *contract.AuditResponse) string {
	return joinSections([]string{
		FormatPlan(resp.Plan),
		FormatValidation(resp.Validation),
		FormatAdmissions(resp.Audit.Admissions),
		FormatGraduation(resp.Audit.Graduation),
		FormatRigor(resp.Audit.Rigor),
		FormatGPA(resp.GPA),
	})
}

func joinSections(sections []string) string {
	kept := make([]string, 0, len(sections))
	for _, s := range sections {
		if s != "" {
			kept = append(kept, strings.TrimRight(s, "\n"))
		}
	}
	return strings.Join(kept, "\n\n") + "\n"
}
