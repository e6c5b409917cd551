package optimizer

import (
	"testing"

	"github.com/alexanderramin/gradpath/internal/audit"
	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/matcher"
	"github.com/alexanderramin/gradpath/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimize_ClosesLanguageArtsElective(t *testing.T) {
	cat := testutil.SampleCatalog(t)
	plan := domain.NewPlan(domain.GoalCS)
	rules := matcher.Default()

	before := audit.AuditAdmissions(plan, rules)
	res := Optimize(plan, cat, before, Config{}, plan.PlacedTitles())
	after := audit.AuditAdmissions(plan, rules)

	require.Len(t, res.Inserted, 3)
	assert.Equal(t, Insertion{Category: domain.CategoryLanguage, Grade: 10, Slot: 0, Title: "American Sign Language I (P)"}, res.Inserted[0])
	assert.Equal(t, Insertion{Category: domain.CategoryArts, Grade: 10, Slot: 1, Title: "Art 1 (P)"}, res.Inserted[1])
	assert.Equal(t, Insertion{Category: domain.CategoryElective, Grade: 10, Slot: 2, Title: "Debate (P)"}, res.Inserted[2])
	assert.Empty(t, res.Unresolved)

	for _, c := range Targets {
		assert.GreaterOrEqual(t, after.Counts[c], before.Counts[c], "category %s", c)
	}
	assert.True(t, after.Met[domain.CategoryArts])
	assert.True(t, after.Met[domain.CategoryElective])
}

func TestOptimize_TerminatesWithoutCandidates(t *testing.T) {
	cat := testutil.MinimalCatalog()
	plan := domain.NewPlan(domain.GoalCS)
	rules := matcher.Default()

	before := audit.AuditAdmissions(plan, rules)
	res := Optimize(plan, cat, before, Config{PreferSpanish: true}, plan.PlacedTitles())
	after := audit.AuditAdmissions(plan, rules)

	assert.Empty(t, res.Inserted)
	assert.Equal(t, Targets, res.Unresolved)
	for _, c := range Targets {
		assert.GreaterOrEqual(t, after.Counts[c], before.Counts[c])
	}
}

func TestOptimize_ContinuesSpanishWhenPreferred(t *testing.T) {
	cat := testutil.SampleCatalog(t)
	plan := domain.NewPlan(domain.GoalCS)
	completed := domain.NewTitleSet("Spanish II (P)")
	used := completed.Clone()

	adm := audit.AuditAdmissions(plan, matcher.Default())
	res := Optimize(plan, cat, adm, Config{Completed: completed}, used)

	require.NotEmpty(t, res.Inserted)
	assert.Equal(t, "Spanish III (P)", res.Inserted[0].Title, "completed Spanish II continues the sequence")
	assert.True(t, used.Has("Spanish III (P)"))
}

func TestOptimize_SkipsFullGradesAndMetCategories(t *testing.T) {
	cat := testutil.SampleCatalog(t)
	plan := domain.NewPlan(domain.GoalCS)
	for _, g := range []int{10, 11, 12} {
		y, _ := plan.Year(g)
		for i := range y.Slots {
			y.Slots[i] = domain.Single("Filler")
		}
	}

	adm := audit.AuditAdmissions(plan, matcher.Default())
	adm.Met[domain.CategoryLanguage] = true
	res := Optimize(plan, cat, adm, Config{}, plan.PlacedTitles())

	require.Len(t, res.Inserted, 2)
	for _, ins := range res.Inserted {
		assert.Equal(t, 9, ins.Grade)
		assert.NotEqual(t, domain.CategoryLanguage, ins.Category)
	}
}

func TestOptimize_RespectsExclusions(t *testing.T) {
	cat := testutil.SampleCatalog(t)
	plan := domain.NewPlan(domain.GoalCS)
	used := domain.NewTitleSet("Art 1 (P)", "Drama 1 (P)")

	adm := audit.AuditAdmissions(plan, matcher.Default())
	res := Optimize(plan, cat, adm, Config{}, used)

	var arts string
	for _, ins := range res.Inserted {
		if ins.Category == domain.CategoryArts {
			arts = ins.Title
		}
	}
	assert.Equal(t, "Concert Choir (P)", arts)
}
