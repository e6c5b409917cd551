package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks request configuration that cannot be honored: an
// unknown goal, level, track, pathway, or letter grade. Callers abort the
// request rather than degrade.
var ErrInvalidConfig = errors.New("invalid configuration")

// Goal tags the student's planning goal. It steers elective selection.
type Goal string

const (
	GoalCS      Goal = "cs"
	GoalPreMed  Goal = "pre_med"
	GoalBiotech Goal = "biotech"
)

// ValidGoals is the canonical set of accepted goal strings.
var ValidGoals = map[Goal]bool{
	GoalCS: true, GoalPreMed: true, GoalBiotech: true,
}

// ParseGoal validates a goal string.
func ParseGoal(s string) (Goal, error) {
	g := Goal(s)
	if !ValidGoals[g] {
		return "", fmt.Errorf("%w: unknown goal %q (expected cs, pre_med, or biotech)", ErrInvalidConfig, s)
	}
	return g, nil
}

// Level is a course rigor preference.
type Level string

const (
	LevelRegular Level = "regular"
	LevelHonors  Level = "honors"
	LevelAP      Level = "ap"
)

// ParseLevel validates a level preference. Empty means regular.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case "", LevelRegular:
		return LevelRegular, nil
	case LevelHonors:
		return LevelHonors, nil
	case LevelAP:
		return LevelAP, nil
	}
	return "", fmt.Errorf("%w: unknown course level %q (expected regular, honors, or ap)", ErrInvalidConfig, s)
}

// FallbackChain lists the levels to try, most preferred first.
// ap falls back to honors then regular; honors falls back to regular.
func (l Level) FallbackChain() []Level {
	switch l {
	case LevelAP:
		return []Level{LevelAP, LevelHonors, LevelRegular}
	case LevelHonors:
		return []Level{LevelHonors, LevelRegular}
	default:
		return []Level{LevelRegular}
	}
}

// Category is an admissions (A-G) requirement category.
type Category string

const (
	CategoryHistory  Category = "a"
	CategoryEnglish  Category = "b"
	CategoryMath     Category = "c"
	CategoryScience  Category = "d"
	CategoryLanguage Category = "e"
	CategoryArts     Category = "f"
	CategoryElective Category = "g"
)

// Categories lists the admissions categories in rubric order.
var Categories = []Category{
	CategoryHistory, CategoryEnglish, CategoryMath, CategoryScience,
	CategoryLanguage, CategoryArts, CategoryElective,
}

var categoryNames = map[Category]string{
	CategoryHistory:  "History / Social Science",
	CategoryEnglish:  "English",
	CategoryMath:     "Mathematics",
	CategoryScience:  "Laboratory Science",
	CategoryLanguage: "World Language",
	CategoryArts:     "Visual & Performing Arts",
	CategoryElective: "College-Prep Elective",
}

// Name returns the human-readable category name.
func (c Category) Name() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return string(c)
}

// ParseCategory accepts a single A-G letter in either case.
func ParseCategory(s string) (Category, bool) {
	if len(s) != 1 {
		return "", false
	}
	c := Category(string(s[0] | 0x20))
	if _, ok := categoryNames[c]; !ok {
		return "", false
	}
	return c, true
}

// Grades covered by a plan, in order.
var Grades = []int{9, 10, 11, 12}

const (
	FirstGrade   = 9
	LastGrade    = 12
	SlotsPerYear = 6
)

// YearIndex maps a grade to its 0-based position within the plan.
func YearIndex(grade int) int {
	return grade - FirstGrade
}
