package domain

import (
	"sort"
	"strings"
)

// Course is one catalog entry. Courses are created at catalog load and
// never mutated afterwards.
type Course struct {
	Title   string
	Grades  []int
	Area    Category // empty when the catalog gives no A-G area
	Section string
}

// NewCourse builds a course with a sorted, de-duplicated grade list.
func NewCourse(title string, grades []int, area Category, section string) Course {
	seen := make(map[int]bool, len(grades))
	gs := make([]int, 0, len(grades))
	for _, g := range grades {
		if g < FirstGrade || g > LastGrade || seen[g] {
			continue
		}
		seen[g] = true
		gs = append(gs, g)
	}
	sort.Ints(gs)
	return Course{Title: title, Grades: gs, Area: area, Section: section}
}

// OfferedIn reports whether the course is eligible for the given grade.
func (c Course) OfferedIn(grade int) bool {
	for _, g := range c.Grades {
		if g == grade {
			return true
		}
	}
	return false
}

// CourseLevel is the rigor class of a course title.
type CourseLevel string

const (
	CourseAP      CourseLevel = "AP"
	CourseHonors  CourseLevel = "Honors"
	CourseRegular CourseLevel = "P"
)

// LevelOf infers the rigor class of a title. AP is detected as a leading or
// embedded "AP " token; honors by the word "honors" or the "(HP)" marker.
func LevelOf(title string) CourseLevel {
	t := strings.ToLower(strings.TrimSpace(title))
	if strings.HasPrefix(t, "ap ") || strings.Contains(t, " ap ") {
		return CourseAP
	}
	if strings.Contains(t, "honors") || strings.Contains(t, "(hp)") {
		return CourseHonors
	}
	return CourseRegular
}
