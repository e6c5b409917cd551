package audit

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullPlan is a plan that satisfies both rubrics.
func fullPlan(t *testing.T) *domain.Plan {
	t.Helper()
	p := domain.NewPlan(domain.GoalCS)
	rows := map[int][]domain.Slot{
		9: {
			domain.Single("Freshman English (P)"), domain.Single("Algebra I (P)"), domain.Single("Biology (P)"),
			domain.Pair("Ethnic Studies (P)(sem)", "Health Education (P)"), domain.Single("PE Course 1-Freshmen"),
			domain.Single("Spanish I (P)"),
		},
		10: {
			domain.Single("Sophomore English (P)"), domain.Single("Geometry (P)"), domain.Single("Chemistry (P)"),
			domain.Single("World History (P)"), domain.Single("PE Course 2"), domain.Single("Spanish II (P)"),
		},
		11: {
			domain.Single("Junior English (P)"), domain.Single("Algebra II (P)"), domain.Single("Physics (P)"),
			domain.Single("U.S. History (P)"), domain.Single("Art 1 (P)"), domain.Single("Intro to Computer Science (P)"),
		},
		12: {
			domain.Single("British Literature (P)"), domain.Single("Pre-Calculus (P)"),
			domain.Pair("Civics (P) (sem)", "Economics (P) (sem)"), domain.Single("PE Course 3"),
			domain.Single("Debate (P)"), domain.Single("Publications/Yearbook (P)"),
		},
	}
	for g, slots := range rows {
		y, err := p.Year(g)
		require.NoError(t, err)
		for _, s := range slots {
			require.GreaterOrEqual(t, y.Place(s), 0)
		}
	}
	return p
}

func TestAuditAdmissions_FullPlan(t *testing.T) {
	a := AuditAdmissions(fullPlan(t), matcher.Default())

	assert.InDelta(t, 3.5, a.Counts[domain.CategoryHistory], 1e-9, "world + US + civics/econ halves + ethnic half")
	assert.InDelta(t, 4.0, a.Counts[domain.CategoryEnglish], 1e-9)
	assert.InDelta(t, 4.0, a.Counts[domain.CategoryMath], 1e-9)
	assert.InDelta(t, 3.0, a.Counts[domain.CategoryScience], 1e-9)
	assert.InDelta(t, 2.0, a.Counts[domain.CategoryLanguage], 1e-9)
	assert.InDelta(t, 1.0, a.Counts[domain.CategoryArts], 1e-9)
	assert.InDelta(t, 2.0, a.Counts[domain.CategoryElective], 1e-9)
	assert.Empty(t, a.Gaps)
	assert.Empty(t, a.Unmet())
}

func TestAuditAdmissions_EmptyPlanListsEveryCategory(t *testing.T) {
	a := AuditAdmissions(domain.NewPlan(domain.GoalCS), matcher.Default())
	require.Len(t, a.Gaps, len(domain.Categories))
	assert.Contains(t, a.Gaps[0], "Missing a (History / Social Science): have 0.0, need 2")
	assert.Contains(t, a.Gaps[6], "effective 0.0")
	assert.Equal(t, domain.Categories, a.Unmet())
}

func TestScoreAdmissions_SurplusCountsTowardElective(t *testing.T) {
	a := ScoreAdmissions(map[domain.Category]float64{
		domain.CategoryHistory: 2, domain.CategoryEnglish: 4, domain.CategoryMath: 4,
		domain.CategoryScience: 2, domain.CategoryLanguage: 2, domain.CategoryArts: 1,
	})
	assert.InDelta(t, 1.0, a.SurplusAF, 1e-9)
	assert.InDelta(t, 1.0, a.EffectiveElective, 1e-9)
	assert.True(t, a.Met[domain.CategoryElective])
	assert.Empty(t, a.Gaps)
}

func TestScoreAdmissions_Epsilon(t *testing.T) {
	a := ScoreAdmissions(map[domain.Category]float64{domain.CategoryArts: 1 - 1e-12})
	assert.True(t, a.Met[domain.CategoryArts])
}

// TestScoreAdmissions_ElectiveGapMonotone property-tests that raising any
// a-f count never increases the elective shortfall.
func TestScoreAdmissions_ElectiveGapMonotone(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	af := domain.Categories[:6]
	for trial := 0; trial < 500; trial++ {
		counts := make(map[domain.Category]float64)
		for _, c := range domain.Categories {
			counts[c] = float64(rng.Intn(11)) / 2
		}
		before := ScoreAdmissions(counts).Shortfall(domain.CategoryElective)

		bumped := make(map[domain.Category]float64, len(counts))
		for c, v := range counts {
			bumped[c] = v
		}
		bumped[af[rng.Intn(len(af))]] += float64(rng.Intn(4)+1) / 2
		after := ScoreAdmissions(bumped).Shortfall(domain.CategoryElective)

		assert.LessOrEqual(t, after, before+1e-12, "trial %d", trial)
	}
}

func TestAuditGraduation_FullPlan(t *testing.T) {
	g := AuditGraduation(fullPlan(t), matcher.Default())

	assert.InDelta(t, 40, g.Credits[BucketEnglish], 1e-9)
	assert.InDelta(t, 40, g.Credits[BucketMath], 1e-9)
	assert.InDelta(t, 30, g.Credits[BucketPE], 1e-9)
	assert.InDelta(t, 5, g.Credits[BucketHealth], 1e-9)
	assert.InDelta(t, 35, g.Credits[BucketSocialScience], 1e-9)
	assert.InDelta(t, 30, g.Credits[BucketScience], 1e-9)
	assert.InDelta(t, 40, g.Credits[BucketVPAWLCTE], 1e-9)
	assert.InDelta(t, 20, g.Credits[BucketElectives], 1e-9)
	assert.InDelta(t, 240, g.TotalEarned, 1e-9)
	assert.InDelta(t, 150, g.RequiredMinSum, 1e-9)
	assert.InDelta(t, 90, g.ElectivesEarned, 1e-9)

	for _, k := range SubRequirementKeys() {
		assert.True(t, g.SubRequirements[k], k)
	}
	assert.Equal(t, map[string]float64{"vpa": 10, "wl": 20, "cte": 10}, g.Breakdown)
	assert.Empty(t, g.Gaps)
}

func TestAuditGraduation_YearRequirementsNeedFullYear(t *testing.T) {
	p := domain.NewPlan(domain.GoalCS)
	y, _ := p.Year(10)
	y.Place(domain.Pair("World History (P)", "Biology (P)"))
	y.Place(domain.Single("PE Course 2"))

	g := AuditGraduation(p, matcher.Default())
	assert.False(t, g.SubRequirements[SubWorldHistory], "a semester of world history is not a year")
	assert.False(t, g.SubRequirements[SubLifeScience])
	assert.False(t, g.SubRequirements[SubFreshmanPE], "PE outside grade 9")
	assert.InDelta(t, 5, g.Credits[BucketSocialScience], 1e-9)
	assert.Contains(t, g.Gaps, "Missing: World History (1 year).")
	assert.Contains(t, g.Gaps, "Missing: Grade 9 PE (freshman PE required).")
	assert.Equal(t, "Missing: 10 credits in Visual/Performing Arts OR World Language OR CTE.", g.Gaps[len(g.Gaps)-1])
}

func TestTallyRigor(t *testing.T) {
	p := domain.NewPlan(domain.GoalCS)
	y, _ := p.Year(12)
	y.Place(domain.Single("AP Calculus AB (HP)"))
	y.Place(domain.Single("Honors Geometry (P)"))
	y.Place(domain.Single("Spanish IV (HP)"))
	y.Place(domain.Pair("AP Govt & Politics (HP) (sem)", "Civics (P) (sem)"))

	r := TallyRigor(p)
	assert.InDelta(t, 1.5, r.AP, 1e-9)
	assert.InDelta(t, 2.0, r.Honors, 1e-9)
	assert.InDelta(t, 0.5, r.Regular, 1e-9)
}

func TestRun_Idempotent(t *testing.T) {
	p := fullPlan(t)
	first, err := json.Marshal(Run(p, matcher.Default()))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := json.Marshal(Run(p, matcher.Default()))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}

	partial := domain.NewPlan(domain.GoalCS)
	y, _ := partial.Year(9)
	y.Place(domain.Single("Freshman English (P)"))
	a1, _ := json.Marshal(Run(partial, matcher.Default()))
	a2, _ := json.Marshal(Run(partial, matcher.Default()))
	assert.Equal(t, string(a1), string(a2))
}
