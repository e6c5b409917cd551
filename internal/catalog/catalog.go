// Package catalog holds the read-only course catalog: an insertion-ordered
// mapping from course title to its grade eligibility, A-G area, and section.
//
// Iteration order is load order. Every first-match search in the planner
// walks the catalog in that order, so tie-breaks are reproducible.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/gradpath/internal/domain"
)

// Catalog is immutable once built. It is safe to share across goroutines.
type Catalog struct {
	order   []string
	byTitle map[string]domain.Course

	fpOnce sync.Once
	fp     string
}

// New builds a catalog from courses in the given order. A repeated title
// replaces the earlier record but keeps the earlier position.
func New(courses ...domain.Course) *Catalog {
	c := &Catalog{byTitle: make(map[string]domain.Course, len(courses))}
	for _, course := range courses {
		c.add(course)
	}
	return c
}

func (c *Catalog) add(course domain.Course) bool {
	_, dup := c.byTitle[course.Title]
	if !dup {
		c.order = append(c.order, course.Title)
	}
	c.byTitle[course.Title] = course
	return dup
}

// Len returns the number of courses.
func (c *Catalog) Len() int { return len(c.order) }

// Get looks up a course by exact title.
func (c *Catalog) Get(title string) (domain.Course, bool) {
	course, ok := c.byTitle[title]
	return course, ok
}

// Has reports whether the title exists.
func (c *Catalog) Has(title string) bool {
	_, ok := c.byTitle[title]
	return ok
}

// OfferedIn reports whether title exists and is eligible for grade.
func (c *Catalog) OfferedIn(title string, grade int) bool {
	course, ok := c.byTitle[title]
	return ok && course.OfferedIn(grade)
}

// Titles returns all titles in load order.
func (c *Catalog) Titles() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Courses returns all courses in load order.
func (c *Catalog) Courses() []domain.Course {
	out := make([]domain.Course, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, c.byTitle[t])
	}
	return out
}

// Available reports whether title can be placed in grade: it exists, is
// offered in that grade, and is not excluded.
func (c *Catalog) Available(title string, grade int, exclude domain.TitleSet) bool {
	return c.OfferedIn(title, grade) && !exclude.Has(title)
}

// Find returns the first course, in load order, that matches q, is offered
// in grade, and is not excluded.
func (c *Catalog) Find(grade int, q Query, exclude domain.TitleSet) (string, bool) {
	for _, t := range c.order {
		if exclude.Has(t) {
			continue
		}
		if !c.byTitle[t].OfferedIn(grade) {
			continue
		}
		if q.Match(t) {
			return t, true
		}
	}
	return "", false
}

// FindFirst tries each query in order and returns the first hit.
func (c *Catalog) FindFirst(grade int, exclude domain.TitleSet, queries ...Query) (string, bool) {
	for _, q := range queries {
		if t, ok := c.Find(grade, q, exclude); ok {
			return t, true
		}
	}
	return "", false
}

// FindAny returns the first eligible, non-excluded course whose title or
// section contains any of the keywords.
func (c *Catalog) FindAny(grade int, keywords []string, exclude domain.TitleSet) (string, bool) {
	for _, t := range c.order {
		if exclude.Has(t) {
			continue
		}
		course := c.byTitle[t]
		if !course.OfferedIn(grade) {
			continue
		}
		if containsAny(t, keywords) || containsAny(course.Section, keywords) {
			return t, true
		}
	}
	return "", false
}

// Fingerprint is a stable digest of the catalog contents, used as part of
// response cache keys.
func (c *Catalog) Fingerprint() string {
	c.fpOnce.Do(func() {
		h := sha256.New()
		for _, t := range c.order {
			course := c.byTitle[t]
			fmt.Fprintf(h, "%s|%v|%s|%s\n", course.Title, course.Grades, course.Area, course.Section)
		}
		c.fp = hex.EncodeToString(h.Sum(nil))
	})
	return c.fp
}

func containsAny(text string, keywords []string) bool {
	t := strings.ToLower(text)
	for _, k := range keywords {
		if k != "" && strings.Contains(t, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
