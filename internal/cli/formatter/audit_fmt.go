package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradpath/internal/audit"
	"github.com/alexanderramin/gradpath/internal/domain"
)

const auditBarWidth = 8

var bucketLabels = map[string]string{
	audit.BucketEnglish:       "English",
	audit.BucketMath:          "Math",
	audit.BucketScience:       "Science",
	audit.BucketSocialScience: "Social Science",
	audit.BucketPE:            "Physical Education",
	audit.BucketHealth:        "Health",
	audit.BucketVPAWLCTE:      "VPA / World Language / CTE",
}

var subRequirementLabels = map[string]string{
	audit.SubAlgebraYear:     "1 year Algebra (or equivalent)",
	audit.SubLifeScience:     "1 year Life Science",
	audit.SubPhysicalScience: "1 year Physical Science",
	audit.SubEthnicOrGlobal:  "Ethnic/Global Studies (1 semester)",
	audit.SubWorldHistory:    "World History (1 year)",
	audit.SubUSHistory:       "U.S. History (1 year)",
	audit.SubCivics:          "Civics (1 semester)",
	audit.SubEconomics:       "Economics (1 semester)",
	audit.SubFreshmanPE:      "Grade 9 PE",
}

// FormatAdmissions renders the A-G counts with a bar per category.
func FormatAdmissions(a audit.Admissions) string {
	rows := make([][]string, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		have := a.Counts[c]
		if c == domain.CategoryElective {
			have = a.EffectiveElective
		}
		rows = append(rows, []string{
			strings.ToUpper(string(c)),
			c.Name(),
			RenderProgress(have, audit.AdmissionsMinimums[c], auditBarWidth),
			Check(a.Met[c]),
		})
	}

	var b strings.Builder
	b.WriteString(Header("A-G admissions") + "\n")
	b.WriteString(RenderTable([]string{"", "AREA", "YEARS", ""}, rows))
	if a.SurplusAF > 0 {
		b.WriteString(Dim(fmt.Sprintf("Elective counts %s from g courses plus %s surplus from a-f.",
			Years(a.CountedElective), Years(a.SurplusAF))) + "\n")
	}
	b.WriteString(gapList(a.Gaps, "No A-G gaps found."))
	return b.String()
}

// FormatGraduation renders credit buckets, totals, and sub-requirements.
func FormatGraduation(g audit.Graduation) string {
	rows := make([][]string, 0, len(audit.GraduationMinimums)+2)
	for _, m := range audit.GraduationMinimums {
		have := g.Credits[m.Bucket]
		rows = append(rows, []string{
			bucketLabels[m.Bucket],
			fmt.Sprintf("%3.0f/%-3.0f", have, m.Credits),
			Check(have+1e-9 >= m.Credits),
		})
	}
	rows = append(rows,
		[]string{Bold("Total credits"), fmt.Sprintf("%3.0f/%-3.0f", g.TotalEarned, audit.CreditsTotal), Check(g.TotalEarned+1e-9 >= audit.CreditsTotal)},
		[]string{"Electives (leftover)", fmt.Sprintf("%3.0f/%-3.0f", g.ElectivesEarned, audit.CreditsElective), Check(g.ElectivesEarned+1e-9 >= audit.CreditsElective)},
	)

	var b strings.Builder
	b.WriteString(Header("Graduation") + "\n")
	b.WriteString(RenderTable([]string{"BUCKET", "CREDITS", ""}, rows))
	b.WriteString(Dim(fmt.Sprintf("Required minimums sum to %.0f credits.", g.RequiredMinSum)) + "\n\n")

	for _, key := range audit.SubRequirementKeys() {
		fmt.Fprintf(&b, "  %s %s\n", Check(g.SubRequirements[key]), subRequirementLabels[key])
	}
	b.WriteString(gapList(g.Gaps, "No graduation gaps found."))
	return b.String()
}

// FormatRigor renders the AP / honors / regular tally.
func FormatRigor(r audit.Rigor) string {
	return fmt.Sprintf("%s\n  AP %s   Honors %s   Regular %s\n",
		Header("Rigor"), Years(r.AP), Years(r.Honors), Years(r.Regular))
}

func gapList(gaps []string, clean string) string {
	if len(gaps) == 0 {
		return "\n" + Check(true) + " " + clean + "\n"
	}
	var b strings.Builder
	b.WriteString("\n" + Bold("Gaps:") + "\n")
	for _, g := range gaps {
		b.WriteString("  " + StyleRed.Render("-") + " " + g + "\n")
	}
	return b.String()
}
