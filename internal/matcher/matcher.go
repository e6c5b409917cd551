// Package matcher classifies free-text course titles with ordered keyword
// rule tables. The tables ship as embedded YAML so precedence is data that
// can be reviewed and tested on its own.
package matcher

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/gradpath/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule maps any keyword hit to Key.
type Rule struct {
	Key      string   `yaml:"key"`
	Keywords []string `yaml:"keywords"`
}

// Table is an ordered rule list. The first matching rule wins.
type Table []Rule

// Classify returns the key of the first rule with a keyword contained in
// title, case-insensitively.
func (t Table) Classify(title string) (string, bool) {
	for _, r := range t {
		if MatchAny(title, r.Keywords) {
			return r.Key, true
		}
	}
	return "", false
}

// Keys returns the rule keys in table order.
func (t Table) Keys() []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.Key
	}
	return out
}

// Rules is the full rule document.
type Rules struct {
	Version      int                   `yaml:"version"`
	Admissions   Table                 `yaml:"admissions"`
	Graduation   Table                 `yaml:"graduation"`
	Groups       map[string][]string   `yaml:"groups"`
	GoalElective map[string][][]string `yaml:"goal_electives"`
}

// Parse decodes and validates a rule document.
func Parse(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding rules: %w", err)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Rules) validate() error {
	var errs []error
	if r.Version <= 0 {
		errs = append(errs, errors.New("rules: version must be positive"))
	}
	if len(r.Admissions) == 0 {
		errs = append(errs, errors.New("rules: admissions table is empty"))
	}
	seen := make(map[string]bool)
	for i, rule := range r.Admissions {
		if _, ok := domain.ParseCategory(rule.Key); !ok {
			errs = append(errs, fmt.Errorf("rules: admissions[%d]: key %q is not an A-G letter", i, rule.Key))
		}
		if seen[rule.Key] {
			errs = append(errs, fmt.Errorf("rules: admissions[%d]: duplicate key %q", i, rule.Key))
		}
		seen[rule.Key] = true
	}
	for name, t := range map[string]Table{"admissions": r.Admissions, "graduation": r.Graduation} {
		for i, rule := range t {
			if rule.Key == "" {
				errs = append(errs, fmt.Errorf("rules: %s[%d]: missing key", name, i))
			}
			if len(rule.Keywords) == 0 {
				errs = append(errs, fmt.Errorf("rules: %s[%d] (%s): no keywords", name, i, rule.Key))
			}
		}
	}
	for goal := range r.GoalElective {
		if !domain.ValidGoals[domain.Goal(goal)] {
			errs = append(errs, fmt.Errorf("rules: goal_electives: unknown goal %q", goal))
		}
	}
	return errors.Join(errs...)
}

// Group returns a named keyword group, or nil.
func (r *Rules) Group(name string) []string {
	return r.Groups[name]
}

// Category classifies title into an admissions category.
func (r *Rules) Category(title string) (domain.Category, bool) {
	key, ok := r.Admissions.Classify(title)
	if !ok {
		return "", false
	}
	return domain.ParseCategory(key)
}

// Bucket classifies title into a graduation credit bucket. Titles matching
// no rule fall into "electives".
func (r *Rules) Bucket(title string) string {
	if key, ok := r.Graduation.Classify(title); ok {
		return key
	}
	return BucketElectives
}

// ElectiveKeywords returns the ordered elective keyword lists for goal.
func (r *Rules) ElectiveKeywords(goal domain.Goal) [][]string {
	return r.GoalElective[string(goal)]
}

// BucketElectives is the catch-all graduation bucket.
const BucketElectives = "electives"

var (
	defaultOnce sync.Once
	defaultVal  *Rules
)

// Default returns the embedded rule document. It panics if the embedded
// YAML is invalid, which the package tests guard against.
func Default() *Rules {
	defaultOnce.Do(func() {
		r, err := Parse(defaultRules)
		if err != nil {
			panic(fmt.Sprintf("matcher: embedded rules: %v", err))
		}
		defaultVal = r
	})
	return defaultVal
}

// MatchAny reports whether text contains any keyword, case-insensitively.
func MatchAny(text string, keywords []string) bool {
	t := strings.ToLower(text)
	for _, k := range keywords {
		if k != "" && strings.Contains(t, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
