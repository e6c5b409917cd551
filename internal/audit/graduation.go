package audit

import (
	"fmt"

	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/matcher"
)

// Graduation buckets.
const (
	BucketEnglish       = "english"
	BucketMath          = "math"
	BucketScience       = "science"
	BucketSocialScience = "social_science"
	BucketPE            = "pe"
	BucketHealth        = "health"
	BucketVPAWLCTE      = "vpa_or_wl_or_cte"
	BucketElectives     = matcher.BucketElectives
)

// Credit values.
const (
	CreditsFullYear = 10.0
	CreditsSemester = 5.0
	CreditsTotal    = 230.0
	CreditsElective = 80.0
)

// GraduationMinimums are the credit minimums per bucket, in report order.
var GraduationMinimums = []struct {
	Bucket  string
	Credits float64
}{
	{BucketEnglish, 40},
	{BucketMath, 20},
	{BucketScience, 20},
	{BucketSocialScience, 35},
	{BucketPE, 20},
	{BucketHealth, 5},
	{BucketVPAWLCTE, 10},
}

// Sub-requirement keys.
const (
	SubAlgebraYear     = "algebra_year"
	SubLifeScience     = "life_science"
	SubPhysicalScience = "physical_science"
	SubEthnicOrGlobal  = "ethnic_or_global"
	SubWorldHistory    = "world_history"
	SubUSHistory       = "us_history"
	SubCivics          = "civics"
	SubEconomics       = "economics"
	SubFreshmanPE      = "freshman_pe"
)

// subRequirement is satisfied by a title in bucket that matches group. A
// full-year requirement needs a single-course slot; a semester one is met by
// either half of a pair as well.
type subRequirement struct {
	key      string
	bucket   string // empty means any bucket
	group    string
	fullYear bool
	grade    int // 0 means any grade
	message  string
}

var subRequirements = []subRequirement{
	{SubAlgebraYear, BucketMath, "algebra", true, 0, "Missing: successful completion of 1 year Algebra (or equivalent)."},
	{SubLifeScience, BucketScience, "science_life", true, 0, "Missing: 1 year Life Science."},
	{SubPhysicalScience, BucketScience, "science_physical", true, 0, "Missing: 1 year Physical Science."},
	{SubEthnicOrGlobal, "", "ss_ethnic_global", false, 0, "Missing: Global or Ethnic Studies (1 semester)."},
	{SubWorldHistory, BucketSocialScience, "ss_world", true, 0, "Missing: World History (1 year)."},
	{SubUSHistory, BucketSocialScience, "ss_us", true, 0, "Missing: U.S. History (1 year)."},
	{SubCivics, "", "ss_civics", false, 0, "Missing: Civics (1 semester)."},
	{SubEconomics, "", "ss_econ", false, 0, "Missing: Economics (1 semester)."},
	{SubFreshmanPE, BucketPE, "", false, 9, "Missing: Grade 9 PE (freshman PE required)."},
}

// Graduation is the district graduation audit result.
type Graduation struct {
	Credits         map[string]float64 `json:"credits"`
	TotalEarned     float64            `json:"total_earned"`
	RequiredMinSum  float64            `json:"required_min_sum"`
	ElectivesEarned float64            `json:"electives_earned"`
	SubRequirements map[string]bool    `json:"sub_requirements"`
	// Breakdown splits the vpa_or_wl_or_cte bucket into vpa, wl, and cte.
	Breakdown map[string]float64 `json:"vpa_wl_cte_breakdown"`
	Gaps      []string           `json:"gaps"`
}

// SubRequirementKeys returns the sub-requirement keys in report order.
func SubRequirementKeys() []string {
	out := make([]string, len(subRequirements))
	for i, s := range subRequirements {
		out[i] = s.key
	}
	return out
}

// AuditGraduation totals credits per bucket (10 per full-year course, 5 per
// pair half), checks the presence-based sub-requirements, and derives
// elective credits as whatever exceeds the bucket minimums.
func AuditGraduation(plan *domain.Plan, rules *matcher.Rules) Graduation {
	g := Graduation{
		Credits:         map[string]float64{BucketElectives: 0},
		SubRequirements: make(map[string]bool, len(subRequirements)),
		Breakdown:       map[string]float64{"vpa": 0, "wl": 0, "cte": 0},
		Gaps:            []string{},
	}
	for _, m := range GraduationMinimums {
		g.Credits[m.Bucket] = 0
		g.RequiredMinSum += m.Credits
	}
	for _, s := range subRequirements {
		g.SubRequirements[s.key] = false
	}

	for _, y := range plan.Years {
		for _, slot := range y.Slots {
			credits := CreditsFullYear
			if slot.IsPair() {
				credits = CreditsSemester
			}
			for _, title := range slot.Titles() {
				bucket := rules.Bucket(title)
				g.Credits[bucket] += credits
				g.TotalEarned += credits

				for _, s := range subRequirements {
					if s.fullYear && slot.IsPair() {
						continue
					}
					if s.bucket != "" && s.bucket != bucket {
						continue
					}
					if s.grade != 0 && s.grade != y.Grade {
						continue
					}
					if s.group != "" && !matcher.MatchAny(title, rules.Group(s.group)) {
						continue
					}
					g.SubRequirements[s.key] = true
				}

				if bucket == BucketVPAWLCTE {
					switch {
					case matcher.MatchAny(title, rules.Group("vpa")):
						g.Breakdown["vpa"] += credits
					case matcher.MatchAny(title, rules.Group("world_language")):
						g.Breakdown["wl"] += credits
					case matcher.MatchAny(title, rules.Group("cte")):
						g.Breakdown["cte"] += credits
					}
				}
			}
		}
	}

	if e := g.TotalEarned - g.RequiredMinSum; e > 0 {
		g.ElectivesEarned = e
	}

	for _, m := range GraduationMinimums {
		if have := g.Credits[m.Bucket]; have+epsilon < m.Credits {
			g.Gaps = append(g.Gaps, fmt.Sprintf("Credits short in %s: have %.0f, need %.0f", m.Bucket, have, m.Credits))
		}
	}
	if g.TotalEarned+epsilon < CreditsTotal {
		g.Gaps = append(g.Gaps, fmt.Sprintf("Total credits short: have %.0f, need %.0f", g.TotalEarned, CreditsTotal))
	}
	if g.ElectivesEarned+epsilon < CreditsElective {
		g.Gaps = append(g.Gaps, fmt.Sprintf("Electives short (leftover credits): have %.0f, need %.0f", g.ElectivesEarned, CreditsElective))
	}
	for _, s := range subRequirements {
		if !g.SubRequirements[s.key] {
			g.Gaps = append(g.Gaps, s.message)
		}
	}
	if g.Credits[BucketVPAWLCTE]+epsilon < 10 {
		g.Gaps = append(g.Gaps, "Missing: 10 credits in Visual/Performing Arts OR World Language OR CTE.")
	}
	return g
}
