// Package pathway holds the per-subject sequencers. Each sequencer names
// the next course in a fixed progression for one grade, resolving abstract
// steps to concrete catalog titles: exact preferred titles first, then
// keyword searches in catalog order. A sequencer that finds nothing reports
// false and the caller leaves the slot open.
package pathway

import (
	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
)

// Sequencer proposes the next course for one subject in one grade. It never
// returns a title contained in used.
type Sequencer interface {
	Next(cat *catalog.Catalog, grade int, used domain.TitleSet) (domain.Slot, bool)
}

// SequencerFunc adapts a function to Sequencer.
type SequencerFunc func(cat *catalog.Catalog, grade int, used domain.TitleSet) (domain.Slot, bool)

func (f SequencerFunc) Next(cat *catalog.Catalog, grade int, used domain.TitleSet) (domain.Slot, bool) {
	return f(cat, grade, used)
}

// step is one abstract position in a progression with its candidate titles.
type step struct {
	exact   []string
	queries []catalog.Query
}

// resolve tries exact titles in order, then queries.
func (s step) resolve(cat *catalog.Catalog, grade int, used domain.TitleSet) (string, bool) {
	if t, ok := firstExact(cat, grade, used, s.exact); ok {
		return t, true
	}
	return cat.FindFirst(grade, used, s.queries...)
}

func firstExact(cat *catalog.Catalog, grade int, used domain.TitleSet, titles []string) (string, bool) {
	for _, t := range titles {
		if cat.Available(t, grade, used) {
			return t, true
		}
	}
	return "", false
}

// pairCandidate is a linked semester pair tried as a unit.
type pairCandidate struct{ a, b string }

// firstPair returns the first pair whose halves both exist, are offered in
// grade, and are not used.
func firstPair(cat *catalog.Catalog, grade int, used domain.TitleSet, pairs []pairCandidate) (domain.Slot, bool) {
	for _, p := range pairs {
		if p.a == p.b {
			continue
		}
		if cat.Available(p.a, grade, used) && cat.Available(p.b, grade, used) {
			return domain.Pair(p.a, p.b), true
		}
	}
	return domain.EmptySlot(), false
}

func single(t string, ok bool) (domain.Slot, bool) {
	if !ok {
		return domain.EmptySlot(), false
	}
	return domain.Single(t), true
}

// clampIndex maps a grade onto a progression of length n, staying on the
// terminal step once the progression runs out.
func clampIndex(grade, n int) int {
	i := domain.YearIndex(grade)
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return i
}

func kw(keywords ...string) catalog.Query { return catalog.Keywords(keywords...) }

func tok(keywords []string, tokens ...string) catalog.Query {
	return catalog.Query{Keywords: keywords, Tokens: tokens}
}
