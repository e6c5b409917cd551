package pathway

import (
	"strings"

	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
)

var ethnicHealthPairs = []pairCandidate{
	{"Ethnic Studies (P)(sem)", "Health Education (P)"},
}

// EthnicStudiesHealth is the grade 9 ethnic studies + health semester pair.
var EthnicStudiesHealth = SequencerFunc(func(cat *catalog.Catalog, grade int, used domain.TitleSet) (domain.Slot, bool) {
	if grade != 9 {
		return domain.EmptySlot(), false
	}
	if slot, ok := firstPair(cat, grade, used, ethnicHealthPairs); ok {
		return slot, true
	}
	ethnic, ok := cat.Find(grade, kw("ethnic studies"), used)
	if !ok {
		return domain.EmptySlot(), false
	}
	health, ok := cat.Find(grade, kw("health education"), used)
	if !ok || health == ethnic {
		return domain.EmptySlot(), false
	}
	return domain.Pair(ethnic, health), true
})

// FreshmanPE is the grade 9 PE course.
var FreshmanPE = SequencerFunc(func(cat *catalog.Catalog, grade int, used domain.TitleSet) (domain.Slot, bool) {
	if grade != 9 {
		return domain.EmptySlot(), false
	}
	if t, ok := firstExact(cat, grade, used, []string{"PE Course 1-Freshmen"}); ok {
		return domain.Single(t), true
	}
	return single(firstWithPrefix(cat, grade, used, "pe course 1"))
})

// SecondPE is the grade 10 PE course.
var SecondPE = SequencerFunc(func(cat *catalog.Catalog, grade int, used domain.TitleSet) (domain.Slot, bool) {
	if grade != 10 {
		return domain.EmptySlot(), false
	}
	return single(firstWithPrefix(cat, grade, used, "pe course 2"))
})

func firstWithPrefix(cat *catalog.Catalog, grade int, used domain.TitleSet, prefix string) (string, bool) {
	for _, t := range cat.Titles() {
		if strings.HasPrefix(strings.ToLower(t), prefix) && cat.Available(t, grade, used) {
			return t, true
		}
	}
	return "", false
}
