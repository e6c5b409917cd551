package pathway

import (
	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
)

var worldHistory = map[domain.Level][]string{
	domain.LevelAP:      {"AP World History (HP)"},
	domain.LevelHonors:  {"Honors World History (P)"},
	domain.LevelRegular: {"World History (P)"},
}

var usHistory = map[domain.Level][]string{
	domain.LevelAP:      {"AP U.S. History (HP)"},
	domain.LevelRegular: {"U.S. History (P)"},
}

var apCivicsEconPairs = []pairCandidate{
	{"AP Govt & Politics (HP) (sem)", "AP Macroeconomics (HP) (sem)"},
}

var civicsEconPairs = []pairCandidate{
	{"Civics (P) (sem)", "Economics (P) (sem)"},
	{"Civics (P) (sem)", "AP Macroeconomics (HP) (sem)"},
}

// History covers grades 10-12: world history, U.S. history, then a
// civics + economics semester pair. Grade 9 has no history course.
type History struct {
	level domain.Level
}

// NewHistory returns the history sequencer for a level preference.
func NewHistory(level domain.Level) *History {
	return &History{level: level}
}

func (h *History) Next(cat *catalog.Catalog, grade int, used domain.TitleSet) (domain.Slot, bool) {
	switch grade {
	case 10:
		return h.single(cat, grade, used, worldHistory, [][]string{{"world history"}})
	case 11:
		return h.single(cat, grade, used, usHistory, [][]string{{"u.s. history"}, {"us history"}})
	case 12:
		return h.civicsEcon(cat, grade, used)
	}
	return domain.EmptySlot(), false
}

func (h *History) single(cat *catalog.Catalog, grade int, used domain.TitleSet, exact map[domain.Level][]string, roots [][]string) (domain.Slot, bool) {
	chain := h.level.FallbackChain()
	for _, lvl := range chain {
		if t, ok := firstExact(cat, grade, used, exact[lvl]); ok {
			return domain.Single(t), true
		}
	}
	var queries []catalog.Query
	for _, lvl := range chain {
		for _, r := range roots {
			switch lvl {
			case domain.LevelAP:
				queries = append(queries, tok(r, "ap"))
			case domain.LevelHonors:
				queries = append(queries, kw(append([]string{"honors"}, r...)...))
			default:
				queries = append(queries, kw(r...))
			}
		}
	}
	return single(cat.FindFirst(grade, used, queries...))
}

// civicsEcon tries the exact pairs, then pairs any civics/government
// semester course with any economics semester course.
func (h *History) civicsEcon(cat *catalog.Catalog, grade int, used domain.TitleSet) (domain.Slot, bool) {
	var pairs []pairCandidate
	if h.level == domain.LevelAP {
		pairs = append(pairs, apCivicsEconPairs...)
	}
	pairs = append(pairs, civicsEconPairs...)
	if slot, ok := firstPair(cat, grade, used, pairs); ok {
		return slot, true
	}

	civics, ok := cat.FindFirst(grade, used, kw("civics", "sem"), kw("government", "sem"), kw("govt", "sem"))
	if !ok {
		return domain.EmptySlot(), false
	}
	econ, ok := cat.FindFirst(grade, used, kw("economics", "sem"))
	if !ok || econ == civics {
		return domain.EmptySlot(), false
	}
	return domain.Pair(civics, econ), true
}
