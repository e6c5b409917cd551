package catalog

import (
	"strings"
	"unicode"
)

// Query matches course titles case-insensitively. Every keyword must appear
// as a substring and every token must appear as a whole word. Tokens exist
// for level numerals: "i" as a token matches "Spanish I (P)" but not
// "Spanish II (P)".
type Query struct {
	Keywords []string
	Tokens   []string
}

// Keywords builds a substring-only query.
func Keywords(kw ...string) Query {
	return Query{Keywords: kw}
}

// Match reports whether title satisfies the query. An empty query matches
// nothing.
func (q Query) Match(title string) bool {
	if len(q.Keywords) == 0 && len(q.Tokens) == 0 {
		return false
	}
	t := strings.ToLower(title)
	for _, k := range q.Keywords {
		if !strings.Contains(t, strings.ToLower(k)) {
			return false
		}
	}
	if len(q.Tokens) == 0 {
		return true
	}
	words := Tokenize(t)
	for _, tok := range q.Tokens {
		if !words[strings.ToLower(tok)] {
			return false
		}
	}
	return true
}

// Tokenize splits text into lowercase alphanumeric words.
func Tokenize(text string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make(map[string]bool, len(fields))
	for _, f := range fields {
		out[f] = true
	}
	return out
}
