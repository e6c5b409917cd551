package planner

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/pathway"
	"github.com/alexanderramin/gradpath/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomCatalog draws a random subset of the sample titles, each with a
// random non-empty set of grades, in shuffled order.
func randomCatalog(rng *rand.Rand, pool []domain.Course) *catalog.Catalog {
	perm := rng.Perm(len(pool))
	n := rng.Intn(len(pool)) + 1
	courses := make([]domain.Course, 0, n)
	for _, i := range perm[:n] {
		c := pool[i]
		var grades []int
		for _, g := range domain.Grades {
			if rng.Intn(2) == 1 {
				grades = append(grades, g)
			}
		}
		if len(grades) == 0 {
			grades = []int{domain.Grades[rng.Intn(len(domain.Grades))]}
		}
		courses = append(courses, domain.NewCourse(c.Title, grades, c.Area, c.Section))
	}
	return catalog.New(courses...)
}

// TestFill_Invariants property-tests the filler: every year keeps six slots,
// no title is placed twice, completed titles are never placed, and every
// placed title is offered in the grade it sits in.
func TestFill_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := testutil.SampleCatalog(t).Courses()
	goals := []domain.Goal{domain.GoalCS, domain.GoalPreMed, domain.GoalBiotech}
	levels := []domain.Level{domain.LevelRegular, domain.LevelHonors, domain.LevelAP}
	tracks := []string{"", "honors_algebra2", "honors_precalc", "calc_ab", "geometry"}
	sciences := []string{"standard_stem", "finish_fast", "delayed"}

	for trial := 0; trial < 200; trial++ {
		cat := randomCatalog(rng, pool)
		goal := goals[rng.Intn(len(goals))]

		completed := make(domain.TitleSet)
		for _, title := range cat.Titles() {
			if rng.Intn(8) == 0 {
				completed.Add(title)
			}
		}

		m, err := pathway.NewMath(tracks[rng.Intn(len(tracks))], "")
		require.NoError(t, err)
		s, err := pathway.NewScience(sciences[rng.Intn(len(sciences))], levels[rng.Intn(len(levels))])
		require.NoError(t, err)

		cfg := Config{
			Goal:          goal,
			PreferSpanish: rng.Intn(2) == 1,
			Completed:     completed,
			English:       pathway.NewEnglish(levels[rng.Intn(len(levels))]),
			Math:          m,
			Science:       s,
			History:       pathway.NewHistory(levels[rng.Intn(len(levels))]),
		}

		plan := domain.NewPlan(goal)
		res, err := Fill(plan, cat, cfg)
		require.NoError(t, err, "trial %d", trial)

		require.Len(t, plan.Years, len(domain.Grades), "trial %d", trial)
		seen := make(map[string]int)
		occupied := 0
		for _, y := range plan.Years {
			assert.Len(t, y.Slots, domain.SlotsPerYear)
			for _, slot := range y.Slots {
				if slot.IsEmpty() {
					continue
				}
				occupied++
				for _, title := range slot.Titles() {
					seen[title]++
					assert.False(t, completed.Has(title),
						"trial %d: completed course %q placed in grade %d", trial, title, y.Grade)
					assert.True(t, cat.OfferedIn(title, y.Grade),
						"trial %d: %q not offered in grade %d", trial, title, y.Grade)
				}
			}
		}
		for title, n := range seen {
			assert.Equal(t, 1, n, "trial %d: %q placed %d times", trial, title, n)
		}
		assert.Len(t, res.Placements, occupied, "trial %d", trial)
	}
}

// TestFill_Deterministic checks that the same inputs always produce the
// same plan.
func TestFill_Deterministic(t *testing.T) {
	cat := testutil.SampleCatalog(t)
	var first *domain.Plan
	for i := 0; i < 5; i++ {
		plan := domain.NewPlan(domain.GoalBiotech)
		_, err := Fill(plan, cat, testConfig(t, domain.GoalBiotech))
		require.NoError(t, err)
		if first == nil {
			first = plan
			continue
		}
		assert.Equal(t, first, plan)
	}
}
