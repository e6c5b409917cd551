package domain

import "sort"

// TitleSet is a set of course titles. The exclusion set threaded through a
// filling pass is a TitleSet; it only ever grows.
type TitleSet map[string]struct{}

// NewTitleSet returns a set holding the given titles.
func NewTitleSet(titles ...string) TitleSet {
	s := make(TitleSet, len(titles))
	for _, t := range titles {
		s.Add(t)
	}
	return s
}

// Add inserts titles. Empty strings are ignored.
func (s TitleSet) Add(titles ...string) {
	for _, t := range titles {
		if t != "" {
			s[t] = struct{}{}
		}
	}
}

// Has reports membership. A nil set contains nothing.
func (s TitleSet) Has(title string) bool {
	_, ok := s[title]
	return ok
}

// Union returns a new set containing both operands.
func (s TitleSet) Union(other TitleSet) TitleSet {
	out := make(TitleSet, len(s)+len(other))
	for t := range s {
		out[t] = struct{}{}
	}
	for t := range other {
		out[t] = struct{}{}
	}
	return out
}

// Clone returns an independent copy.
func (s TitleSet) Clone() TitleSet {
	return s.Union(nil)
}

// Sorted returns the titles in lexical order.
func (s TitleSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
