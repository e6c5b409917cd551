package pathway

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
)

// Math steps, in ladder order.
const (
	StepGeometry = "geometry"
	StepAlgebra2 = "algebra2"
	StepPrecalc  = "precalc"
	StepCalcAB   = "calc_ab"
	StepCalcBC   = "calc_bc"
	StepAPStats  = "ap_stats"
)

var mathLadder = []string{StepGeometry, StepAlgebra2, StepPrecalc, StepCalcAB, StepCalcBC, StepAPStats}

type mathTrack struct {
	steps  []string
	honors bool
}

// TrackAuto selects the default track when nothing better is known.
const TrackAuto = "auto"

var mathTracks = map[string]mathTrack{
	"honors_geometry": {steps: []string{StepGeometry, StepAlgebra2, StepPrecalc, StepCalcAB}, honors: true},
	"honors_algebra2": {steps: []string{StepAlgebra2, StepPrecalc, StepCalcAB, StepCalcBC}, honors: true},
	"honors_precalc":  {steps: []string{StepPrecalc, StepCalcAB, StepCalcBC, StepAPStats}, honors: true},
	"calc_ab":         {steps: []string{StepCalcAB, StepCalcBC, StepAPStats, StepAPStats}},
	"geometry":        {steps: []string{StepGeometry, StepAlgebra2, StepPrecalc, StepCalcAB}},
	"algebra2":        {steps: []string{StepAlgebra2, StepPrecalc, StepCalcAB, StepCalcBC}},
}

const defaultMathTrack = "honors_geometry"

// MathTracks lists the accepted track keys.
func MathTracks() []string {
	out := make([]string, 0, len(mathTracks)+1)
	for k := range mathTracks {
		out = append(out, k)
	}
	sort.Strings(out)
	return append(out, TrackAuto)
}

type mathStep struct {
	regular step
	honors  step
}

var mathSteps = map[string]mathStep{
	StepGeometry: {
		regular: step{exact: []string{"Geometry (P)"}, queries: []catalog.Query{kw("geometry")}},
		honors:  step{exact: []string{"Honors Geometry (P)"}, queries: []catalog.Query{kw("honors", "geometry")}},
	},
	StepAlgebra2: {
		regular: step{
			exact:   []string{"Algebra II (P)"},
			queries: []catalog.Query{tok([]string{"algebra"}, "ii"), tok([]string{"algebra"}, "2")},
		},
		honors: step{
			exact:   []string{"Honors Algebra II (HP)"},
			queries: []catalog.Query{tok([]string{"honors", "algebra"}, "ii"), tok([]string{"honors", "algebra"}, "2")},
		},
	},
	StepPrecalc: {
		regular: step{exact: []string{"Pre-Calculus (P)"}, queries: []catalog.Query{kw("pre-cal"), kw("precal")}},
		honors:  step{exact: []string{"Honors Pre-Calculus (HP)"}, queries: []catalog.Query{kw("honors", "pre")}},
	},
	StepCalcAB: {
		regular: step{exact: []string{"AP Calculus AB (HP)"}, queries: []catalog.Query{tok([]string{"calculus"}, "ab")}},
	},
	StepCalcBC: {
		regular: step{exact: []string{"AP Calculus BC (HP)"}, queries: []catalog.Query{tok([]string{"calculus"}, "bc")}},
	},
	StepAPStats: {
		regular: step{
			exact:   []string{"AP Statistics (HP)"},
			queries: []catalog.Query{tok([]string{"statistics"}, "ap"), kw("statistics"), kw("stats")},
		},
	},
}

// Math walks a math progression chosen by track or by the highest completed
// math course.
type Math struct {
	steps  []string
	honors bool
}

// NewMath builds the math sequencer. A non-empty completedMath takes
// precedence over track: the progression starts at the ladder step after
// that course. track must be a known key, "auto", or empty.
func NewMath(track, completedMath string) (*Math, error) {
	key := strings.ToLower(strings.TrimSpace(track))
	var t mathTrack
	switch key {
	case "", TrackAuto:
		t = mathTracks[defaultMathTrack]
	default:
		var ok bool
		t, ok = mathTracks[key]
		if !ok {
			return nil, fmt.Errorf("%w: unknown math track %q (expected one of %s)",
				domain.ErrInvalidConfig, track, strings.Join(MathTracks(), ", "))
		}
	}

	if strings.TrimSpace(completedMath) != "" {
		next := NextMathStep(completedMath)
		return &Math{steps: ladderFrom(next), honors: key == "" || key == TrackAuto || t.honors}, nil
	}
	return &Math{steps: t.steps, honors: t.honors}, nil
}

// Steps returns the progression in grade order.
func (m *Math) Steps() []string {
	out := make([]string, len(m.steps))
	copy(out, m.steps)
	return out
}

// StepFor returns the desired step for grade.
func (m *Math) StepFor(grade int) string {
	return m.steps[clampIndex(grade, len(m.steps))]
}

// Next resolves the grade's step. Honors tracks try the honors variant first.
func (m *Math) Next(cat *catalog.Catalog, grade int, used domain.TitleSet) (domain.Slot, bool) {
	s := mathSteps[m.StepFor(grade)]
	if m.honors && (len(s.honors.exact) > 0 || len(s.honors.queries) > 0) {
		if t, ok := s.honors.resolve(cat, grade, used); ok {
			return domain.Single(t), true
		}
	}
	return single(s.regular.resolve(cat, grade, used))
}

// NextMathStep classifies a completed math title and returns the step that
// follows it. Unrecognized titles map to geometry, the conservative start.
func NextMathStep(completed string) string {
	hc := strings.ToLower(strings.TrimSpace(completed))
	switch {
	case strings.Contains(hc, "geometry"):
		return StepAlgebra2
	case strings.Contains(hc, "algebra ii") && !strings.Contains(hc, "algebra iii"),
		strings.Contains(hc, "algebra 2"):
		return StepPrecalc
	case strings.Contains(hc, "pre-calculus"), strings.Contains(hc, "precalculus"), strings.Contains(hc, "precalc"):
		return StepCalcAB
	case strings.Contains(hc, "calculus ab"):
		return StepCalcBC
	case strings.Contains(hc, "calculus bc"):
		return StepAPStats
	}
	return StepGeometry
}

// ladderFrom returns four steps starting at from, holding the terminal step.
func ladderFrom(from string) []string {
	start := 0
	for i, s := range mathLadder {
		if s == from {
			start = i
			break
		}
	}
	out := make([]string, 0, len(domain.Grades))
	for i := range domain.Grades {
		j := start + i
		if j >= len(mathLadder) {
			j = len(mathLadder) - 1
		}
		out = append(out, mathLadder[j])
	}
	return out
}
