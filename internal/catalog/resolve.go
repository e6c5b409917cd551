package catalog

import (
	"strings"

	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/sahilm/fuzzy"
)

// ResolveMethod says how a free-text completed course was matched.
type ResolveMethod string

const (
	ResolveExact     ResolveMethod = "exact"
	ResolveTokens    ResolveMethod = "tokens"
	ResolveSubstring ResolveMethod = "substring"
	ResolveFuzzy     ResolveMethod = "fuzzy"
	ResolveNone      ResolveMethod = "unmatched"
)

// Resolution is the outcome for one completed-course string.
type Resolution struct {
	Input  string        `json:"input"`
	Title  string        `json:"title"`
	Method ResolveMethod `json:"method"`
}

var arabicToRoman = strings.NewReplacer(
	"spanish 1", "spanish i",
	"spanish 2", "spanish ii",
	"spanish 3", "spanish iii",
	"spanish 4", "spanish iv",
)

// ResolveCompleted maps user-entered completed courses to catalog titles.
// Unmatched inputs are kept verbatim so that free-text scans (such as the
// world-language level detector) still see them.
func ResolveCompleted(c *Catalog, raw []string) (domain.TitleSet, []Resolution) {
	set := make(domain.TitleSet, len(raw))
	out := make([]Resolution, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		r := c.resolveOne(item)
		set.Add(r.Title)
		out = append(out, r)
	}
	return set, out
}

func (c *Catalog) resolveOne(item string) Resolution {
	s := arabicToRoman.Replace(strings.ToLower(item))

	for _, t := range c.order {
		if strings.ToLower(t) == s {
			return Resolution{Input: item, Title: t, Method: ResolveExact}
		}
	}

	want := Tokenize(s)
	var substring string
	for _, t := range c.order {
		lt := strings.ToLower(t)
		if !strings.Contains(lt, s) {
			continue
		}
		if containsAllTokens(Tokenize(lt), want) {
			return Resolution{Input: item, Title: t, Method: ResolveTokens}
		}
		if substring == "" {
			substring = t
		}
	}
	if substring != "" {
		return Resolution{Input: item, Title: substring, Method: ResolveSubstring}
	}

	if matches := fuzzy.Find(s, c.lowerTitles()); len(matches) > 0 {
		return Resolution{Input: item, Title: c.order[matches[0].Index], Method: ResolveFuzzy}
	}
	return Resolution{Input: item, Title: item, Method: ResolveNone}
}

func (c *Catalog) lowerTitles() []string {
	out := make([]string, len(c.order))
	for i, t := range c.order {
		out[i] = strings.ToLower(t)
	}
	return out
}

func containsAllTokens(have, want map[string]bool) bool {
	for w := range want {
		if !have[w] {
			return false
		}
	}
	return true
}
