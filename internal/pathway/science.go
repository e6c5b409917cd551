package pathway

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
)

const (
	sciNone      = "none"
	sciBiology   = "biology"
	sciChemistry = "chemistry"
	sciPhysics   = "physics"
	sciEarth     = "earth"
	sciAP        = "ap_science"
	sciOptional  = "optional"
)

var scienceTracks = map[string][]string{
	"standard_stem": {sciBiology, sciChemistry, sciPhysics, sciAP},
	"finish_fast":   {sciEarth, sciBiology, sciOptional, sciOptional},
	"delayed":       {sciNone, sciBiology, sciChemistry, sciPhysics},
}

const defaultSciencePathway = "standard_stem"

// SciencePathways lists the accepted pathway keys.
func SciencePathways() []string {
	out := make([]string, 0, len(scienceTracks))
	for k := range scienceTracks {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// scienceKeywords lists the search roots per step, most specific first.
var scienceKeywords = map[string][]string{
	sciBiology:   {"bio", "biology"},
	sciChemistry: {"chem", "chemistry"},
	sciPhysics:   {"physics", "phys"},
	sciEarth:     {"earth", "environment"},
}

var apScience = []catalog.Query{
	tok([]string{"bio"}, "ap"),
	tok([]string{"chem"}, "ap"),
	tok([]string{"physics"}, "ap"),
}

// Science walks a lab-science pathway.
type Science struct {
	steps []string
	level domain.Level
}

// NewScience builds the science sequencer. Empty pathway means standard_stem.
func NewScience(pathway string, level domain.Level) (*Science, error) {
	key := strings.ToLower(strings.TrimSpace(pathway))
	if key == "" {
		key = defaultSciencePathway
	}
	steps, ok := scienceTracks[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown science pathway %q (expected one of %s)",
			domain.ErrInvalidConfig, pathway, strings.Join(SciencePathways(), ", "))
	}
	return &Science{steps: steps, level: level}, nil
}

// StepFor returns the desired step for grade.
func (s *Science) StepFor(grade int) string {
	return s.steps[clampIndex(grade, len(s.steps))]
}

// Next resolves the grade's step. A "none" step yields nothing. Honors and AP
// preferences try the matching variant of each keyword before the plain one.
func (s *Science) Next(cat *catalog.Catalog, grade int, used domain.TitleSet) (domain.Slot, bool) {
	desired := s.StepFor(grade)
	switch desired {
	case sciNone:
		return domain.EmptySlot(), false
	case sciAP, sciOptional:
		return single(cat.FindFirst(grade, used, apScience...))
	}

	var queries []catalog.Query
	for _, lvl := range s.level.FallbackChain() {
		for _, k := range scienceKeywords[desired] {
			switch lvl {
			case domain.LevelAP:
				queries = append(queries, tok([]string{k}, "ap"))
			case domain.LevelHonors:
				queries = append(queries, kw("honors", k))
			default:
				queries = append(queries, kw(k))
			}
		}
	}
	return single(cat.FindFirst(grade, used, queries...))
}
