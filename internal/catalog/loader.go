package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/alexanderramin/gradpath/internal/domain"
)

// sectionTokens are the first-column markers that open a subject section.
var sectionTokens = map[string]bool{
	"ENGLISH":                        true,
	"ENGLISH ELECTIVES":              true,
	"MATHEMATICS":                    true,
	"HISTORY/SOCIAL SCIENCE":         true,
	"SCIENCE":                        true,
	"VISUAL AND PERFORMING ARTS":     true,
	"VISUAL ARTS":                    true,
	"PERFORMING ARTS":                true,
	"WORLD LANGUAGE":                 true,
	"ADDITIONAL COURSES":             true,
	"PHYSICAL EDUCATION":             true,
	"CAREER AND TECHNICAL EDUCATION": true,
}

var (
	areaPattern  = regexp.MustCompile(`(?i)Area\s*([A-G])`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// Column layout of a course row.
const (
	colCode  = 0
	colTitle = 1
	colG9    = 2
	colArea  = 6
)

// Options tunes catalog parsing.
type Options struct {
	// Strict fails the load when any course row is skipped.
	Strict bool
}

// SkippedRow records a row that looked like course data but was dropped.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
	Raw    string `json:"raw"`
}

// LoadReport describes what a parse kept and dropped.
type LoadReport struct {
	Courses    int          `json:"courses"`
	Sections   int          `json:"sections"`
	Skipped    []SkippedRow `json:"skipped,omitempty"`
	Duplicates []string     `json:"duplicates,omitempty"`
}

// ErrStrictRows is returned in strict mode when rows were skipped.
var ErrStrictRows = errors.New("catalog has malformed course rows")

// Load reads a catalog CSV from disk.
func Load(path string, opts Options) (*Catalog, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return Parse(f, opts)
}

// Parse reads a catalog in the district's tabular layout: section marker
// rows, header rows, and course rows of code, title, four grade markers
// (9-12, any non-blank value means offered), and an "Area X" tag.
func Parse(r io.Reader, opts Options) (*Catalog, *LoadReport, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	cat := New()
	report := &LoadReport{}
	section := ""
	line := 0

	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("reading catalog line %d: %w", line, err)
		}

		c0, c1 := field(rec, colCode), field(rec, colTitle)
		if marker := strings.ToUpper(strings.TrimSpace(c0)); sectionTokens[marker] {
			section = marker
			report.Sections++
			continue
		}
		if isHeaderRow(c0, c1) {
			continue
		}

		skip := func(reason string) {
			report.Skipped = append(report.Skipped, SkippedRow{Line: line, Reason: reason, Raw: strings.Join(rec, ",")})
		}

		if !isCourseCode(c0) {
			skip("invalid course code")
			continue
		}
		title := normTitle(c1)
		if title == "" {
			skip("missing title")
			continue
		}
		grades := gradesFromColumns(rec)
		if len(grades) == 0 {
			skip("no eligible grades")
			continue
		}

		course := domain.NewCourse(title, grades, parseArea(field(rec, colArea)), section)
		if cat.add(course) {
			report.Duplicates = append(report.Duplicates, title)
		}
	}

	report.Courses = cat.Len()
	if opts.Strict && len(report.Skipped) > 0 {
		first := report.Skipped[0]
		return nil, report, fmt.Errorf("%w: %d skipped (first at line %d: %s)", ErrStrictRows, len(report.Skipped), first.Line, first.Reason)
	}
	return cat, report, nil
}

// ParseArea extracts the A-G letter from strings like "Area C".
func ParseArea(raw string) (domain.Category, bool) {
	c := parseArea(raw)
	return c, c != ""
}

func parseArea(raw string) domain.Category {
	m := areaPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	c, _ := domain.ParseCategory(m[1])
	return c
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func normTitle(s string) string {
	return spacePattern.ReplaceAllString(strings.TrimSpace(s), " ")
}

func isHeaderRow(c0, c1 string) bool {
	a := strings.TrimSpace(c0)
	b := strings.ToLower(strings.TrimSpace(c1))
	switch {
	case a == "" && b == "":
		return true
	case strings.ToLower(a) == "course code":
		return true
	case b == "course title":
		return true
	case strings.HasPrefix(a, "*"), strings.Contains(strings.ToLower(a), "students will be placed"):
		return true
	}
	return false
}

func isCourseCode(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if strings.EqualFold(s, "pending") {
		return true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func gradesFromColumns(rec []string) []int {
	var grades []int
	for i, g := range domain.Grades {
		if strings.TrimSpace(field(rec, colG9+i)) != "" {
			grades = append(grades, g)
		}
	}
	return grades
}
