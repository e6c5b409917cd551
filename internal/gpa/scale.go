// Package gpa projects two grade point averages from a plan and assumed
// letter grades: the district scale over every planned course, and the
// admissions scale over A-G courses only.
package gpa

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/gradpath/internal/domain"
)

// DefaultLetter is assumed for any course without a configured grade.
const DefaultLetter = "A"

var letterBand = map[string]string{
	"A+": "A", "A": "A", "A-": "A",
	"B+": "B", "B": "B", "B-": "B",
	"C+": "C", "C": "C", "C-": "C",
	"D+": "D", "D": "D", "D-": "D",
	"F": "F",
}

var bandPoints = map[string]float64{"A": 4, "B": 3, "C": 2, "D": 1, "F": 0}

// Band collapses a letter with optional plus or minus to its band. Unknown
// letters wrap domain.ErrInvalidConfig.
func Band(letter string) (string, error) {
	b, ok := letterBand[strings.ToUpper(strings.TrimSpace(letter))]
	if !ok {
		return "", fmt.Errorf("%w: unsupported letter grade %q", domain.ErrInvalidConfig, letter)
	}
	return b, nil
}

// Points returns the grade points for a letter. Weighted courses earn one
// extra point for A, B, and C.
func Points(letter string, weighted bool) (float64, error) {
	b, err := Band(letter)
	if err != nil {
		return 0, err
	}
	p := bandPoints[b]
	if weighted && (b == "A" || b == "B" || b == "C") {
		p++
	}
	return p, nil
}

// round3 rounds to three decimals, the precision every reported average uses.
func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

type unit struct {
	title string
	units float64
}

func slotUnits(s domain.Slot, semester func(string) bool) []unit {
	if s.IsEmpty() {
		return nil
	}
	if s.IsPair() {
		ts := s.Titles()
		return []unit{{ts[0], 0.5}, {ts[1], 0.5}}
	}
	t := s.Titles()[0]
	if semester != nil && semester(t) {
		return []unit{{t, 0.5}}
	}
	return []unit{{t, 1}}
}
