package pathway

import (
	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
)

// Spanish levels. LevelAPSpanish is the terminal course.
const (
	LevelNoSpanish = 0
	LevelAPSpanish = 5
)

var spanishNumerals = map[int][2]string{
	1: {"i", "1"},
	2: {"ii", "2"},
	3: {"iii", "3"},
	4: {"iv", "4"},
}

// SpanishLevel reports the Spanish level a free-text title names: 1-4 for
// Spanish I-IV (roman or arabic), 5 for AP Spanish.
func SpanishLevel(title string) (int, bool) {
	words := catalog.Tokenize(title)
	if !words["spanish"] {
		return LevelNoSpanish, false
	}
	if words["ap"] {
		return LevelAPSpanish, true
	}
	for lvl := 4; lvl >= 1; lvl-- {
		n := spanishNumerals[lvl]
		if words[n[0]] || words[n[1]] {
			return lvl, true
		}
	}
	return LevelNoSpanish, false
}

// HighestSpanish returns the highest Spanish level among titles.
func HighestSpanish(titles domain.TitleSet) int {
	best := LevelNoSpanish
	for t := range titles {
		if lvl, ok := SpanishLevel(t); ok && lvl > best {
			best = lvl
		}
	}
	return best
}

// Language continues the Spanish sequence. The next level is inferred from
// every title in the exclusion set, so completed work and courses placed in
// earlier grades both advance it.
type Language struct{}

// NewLanguage returns the world-language sequencer.
func NewLanguage() *Language { return &Language{} }

// NextLevel returns the level after the highest one in used, or false when
// AP Spanish has been reached.
func (l *Language) NextLevel(used domain.TitleSet) (int, bool) {
	h := HighestSpanish(used)
	if h >= LevelAPSpanish {
		return 0, false
	}
	return h + 1, true
}

// Queries returns the search for a Spanish level.
func (l *Language) Queries(level int) []catalog.Query {
	if level >= LevelAPSpanish {
		return []catalog.Query{tok([]string{"spanish"}, "ap")}
	}
	n := spanishNumerals[level]
	return []catalog.Query{tok([]string{"spanish"}, n[0]), tok([]string{"spanish"}, n[1])}
}

func (l *Language) Next(cat *catalog.Catalog, grade int, used domain.TitleSet) (domain.Slot, bool) {
	lvl, ok := l.NextLevel(used)
	if !ok {
		return domain.EmptySlot(), false
	}
	return single(cat.FindFirst(grade, used, l.Queries(lvl)...))
}
