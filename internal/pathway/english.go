package pathway

import (
	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
)

// englishTitles are the district's exact titles per grade and level.
var englishTitles = map[int]map[domain.Level][]string{
	9: {
		domain.LevelRegular: {"Freshman English (P)"},
		domain.LevelHonors:  {"Honors Freshman English (P)"},
	},
	10: {
		domain.LevelRegular: {"Sophomore English (P)"},
		domain.LevelHonors:  {"Honors Sophomore English (P)"},
	},
	11: {
		domain.LevelRegular: {"Junior English (P)"},
		domain.LevelHonors:  {"Honors Junior English (HP)"},
		domain.LevelAP:      {"AP English Language (HP)"},
	},
	12: {
		domain.LevelRegular: {"British Literature (P)", "CSU Expository Reading & Writing (P)"},
		domain.LevelAP:      {"AP English Literature & Comp (HP)"},
	},
}

// English picks the grade's English course by level preference.
type English struct {
	level domain.Level
}

// NewEnglish returns the English sequencer for a level preference.
func NewEnglish(level domain.Level) *English {
	return &English{level: level}
}

// Next tries the exact titles along the level fallback chain, then keyword
// searches for the preferred level, then any English course.
func (e *English) Next(cat *catalog.Catalog, grade int, used domain.TitleSet) (domain.Slot, bool) {
	byLevel := englishTitles[grade]
	for _, lvl := range e.level.FallbackChain() {
		if t, ok := firstExact(cat, grade, used, byLevel[lvl]); ok {
			return domain.Single(t), true
		}
	}

	var queries []catalog.Query
	switch e.level {
	case domain.LevelAP:
		queries = append(queries, tok([]string{"english"}, "ap"), kw("honors", "english"))
	case domain.LevelHonors:
		queries = append(queries, kw("honors", "english"))
	}
	queries = append(queries, kw("english"))
	return single(cat.FindFirst(grade, used, queries...))
}
