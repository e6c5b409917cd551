// Package optimizer closes the admissions categories a filled plan most
// often misses (world language, arts, elective) by inserting one matching
// course per category into an open slot. One call is one pass.
package optimizer

import (
	"github.com/alexanderramin/gradpath/internal/audit"
	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/pathway"
)

// GradeOrder is the order grades are tried. Later grades usually have more
// room, so grade 9 comes last.
var GradeOrder = []int{10, 11, 12, 9}

// Targets are the categories the optimizer works on, in order.
var Targets = []domain.Category{domain.CategoryLanguage, domain.CategoryArts, domain.CategoryElective}

// Config tunes candidate selection.
type Config struct {
	PreferSpanish bool
	Completed     domain.TitleSet
}

// Insertion records one course the optimizer added.
type Insertion struct {
	Category domain.Category `json:"category"`
	Grade    int             `json:"grade"`
	Slot     int             `json:"slot"`
	Title    string          `json:"title"`
}

// Result reports one pass.
type Result struct {
	Inserted   []Insertion       `json:"inserted"`
	Unresolved []domain.Category `json:"unresolved"`
}

var (
	alternateLanguages = []catalog.Query{
		catalog.Keywords("american", "sign", "language"),
		{Keywords: []string{"french"}, Tokens: []string{"i"}},
		{Keywords: []string{"japanese"}, Tokens: []string{"i"}},
	}
	introArts = []catalog.Query{
		{Tokens: []string{"art", "1"}},
		{Tokens: []string{"drama", "1"}},
		{Tokens: []string{"photography", "1"}},
		catalog.Keywords("concert", "choir"),
	}
	electives = []catalog.Query{
		catalog.Keywords("debate"),
		catalog.Keywords("student", "leadership"),
		catalog.Keywords("psychology"),
		{Keywords: []string{"psychology"}, Tokens: []string{"ap"}},
	}
)

// Optimize makes one pass over the unmet target categories in adm. For each,
// grades are tried in GradeOrder and the first eligible course not in used
// goes into that grade's first open slot. used grows with every insertion.
// Categories with no candidate or no room stay unresolved.
func Optimize(plan *domain.Plan, cat *catalog.Catalog, adm audit.Admissions, cfg Config, used domain.TitleSet) Result {
	res := Result{Inserted: []Insertion{}, Unresolved: []domain.Category{}}
	lang := pathway.NewLanguage()

	for _, c := range Targets {
		if adm.Met[c] {
			continue
		}
		placed := false
		for _, grade := range GradeOrder {
			year, err := plan.Year(grade)
			if err != nil || year.FirstOpen() < 0 {
				continue
			}
			title, ok := cat.FindFirst(grade, used, candidates(c, lang, cfg, used)...)
			if !ok {
				continue
			}
			idx := year.Place(domain.Single(title))
			used.Add(title)
			res.Inserted = append(res.Inserted, Insertion{Category: c, Grade: grade, Slot: idx, Title: title})
			placed = true
			break
		}
		if !placed {
			res.Unresolved = append(res.Unresolved, c)
		}
	}
	return res
}

func candidates(c domain.Category, lang *pathway.Language, cfg Config, used domain.TitleSet) []catalog.Query {
	switch c {
	case domain.CategoryLanguage:
		var qs []catalog.Query
		if cfg.PreferSpanish || pathway.HighestSpanish(cfg.Completed) >= 2 {
			if lvl, ok := lang.NextLevel(used); ok {
				qs = append(qs, lang.Queries(lvl)...)
			}
			qs = append(qs, lang.Queries(pathway.LevelAPSpanish)...)
		}
		return append(qs, alternateLanguages...)
	case domain.CategoryArts:
		return introArts
	case domain.CategoryElective:
		return electives
	}
	return nil
}
