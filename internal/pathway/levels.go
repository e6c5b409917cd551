package pathway

import (
	"strings"

	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
)

// Math ladder positions used to detect retaking earlier work. Statistics is
// not on the ladder: it can follow any course.
const (
	RankAlgebra1 = iota
	RankGeometry
	RankAlgebra2
	RankPrecalc
	RankCalcAB
	RankCalcBC
)

// MathRank places a title on the math ladder.
func MathRank(title string) (int, bool) {
	t := strings.ToLower(title)
	words := catalog.Tokenize(t)
	switch {
	case strings.Contains(t, "pre-cal") || strings.Contains(t, "precal"):
		return RankPrecalc, true
	case words["calculus"] && words["bc"]:
		return RankCalcBC, true
	case words["calculus"] && words["ab"]:
		return RankCalcAB, true
	case words["algebra"] && (words["ii"] || words["2"]):
		return RankAlgebra2, true
	case words["algebra"] && (words["i"] || words["1"]):
		return RankAlgebra1, true
	case words["geometry"]:
		return RankGeometry, true
	}
	return 0, false
}

// Superseded returns the catalog titles a student who completed the given
// courses should not take again: a Spanish level at or below the highest one
// completed, or a math course at or below the highest completed ladder rank.
func Superseded(cat *catalog.Catalog, completed domain.TitleSet) domain.TitleSet {
	out := make(domain.TitleSet)
	spanish := HighestSpanish(completed)
	math, hasMath := highestMath(completed)
	for _, t := range cat.Titles() {
		if lvl, ok := SpanishLevel(t); ok && lvl <= spanish {
			out.Add(t)
			continue
		}
		if r, ok := MathRank(t); ok && hasMath && r <= math {
			out.Add(t)
		}
	}
	return out
}

// Backtrack explains why title repeats or precedes completed work. The
// empty string means it does not.
func Backtrack(title string, completed domain.TitleSet) string {
	if completed.Has(title) {
		return "already completed"
	}
	if lvl, ok := SpanishLevel(title); ok {
		if h := HighestSpanish(completed); h > 0 && lvl <= h {
			return "Spanish level at or below completed coursework"
		}
	}
	if r, ok := MathRank(title); ok {
		if h, has := highestMath(completed); has && r <= h {
			return "math course at or below completed coursework"
		}
	}
	return ""
}

func highestMath(titles domain.TitleSet) (int, bool) {
	best, found := 0, false
	for t := range titles {
		if r, ok := MathRank(t); ok && (!found || r > best) {
			best, found = r, true
		}
	}
	return best, found
}
