// Package planner fills the four-year plan skeleton. Each grade is filled
// in a fixed priority order: English, math, science, world language (when
// preferred), history, and the grade's fixed requirements; whatever slots
// remain go to electives. A filled slot is never revisited.
package planner

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/gradpath/internal/catalog"
	"github.com/alexanderramin/gradpath/internal/domain"
	"github.com/alexanderramin/gradpath/internal/matcher"
	"github.com/alexanderramin/gradpath/internal/pathway"
)

// Placement sources.
const (
	SourceEnglish          = "english"
	SourceMath             = "math"
	SourceScience          = "science"
	SourceLanguage         = "world_language"
	SourceHistory          = "history"
	SourceEthnicHealth     = "ethnic_studies_health"
	SourceFreshmanPE       = "freshman_pe"
	SourceSecondPE         = "second_pe"
	SourceElectiveLanguage = "elective_language"
	SourceElectiveGoal     = "elective_goal"
	SourceElectiveAny      = "elective_any"
)

// Config carries the per-request sequencers and preferences.
type Config struct {
	Goal          domain.Goal
	PreferSpanish bool
	// Completed holds titles finished before the plan starts. They are never
	// placed, and neither are earlier Spanish levels or math courses they
	// supersede.
	Completed domain.TitleSet

	English pathway.Sequencer
	Math    pathway.Sequencer
	Science pathway.Sequencer
	History pathway.Sequencer

	// Rules supplies the goal elective keyword tables. Nil means the
	// embedded defaults.
	Rules *matcher.Rules
}

// Placement records one filled slot.
type Placement struct {
	Grade  int      `json:"grade"`
	Slot   int      `json:"slot"`
	Titles []string `json:"titles"`
	Source string   `json:"source"`
}

// Miss records a required subject that produced no candidate.
type Miss struct {
	Grade   int    `json:"grade"`
	Subject string `json:"subject"`
	Reason  string `json:"reason"`
}

// Result describes a fill pass. Used is the final exclusion set: every
// placed title plus completed and superseded titles. It is handed on to the
// gap optimizer.
type Result struct {
	Placements []Placement     `json:"placements"`
	Misses     []Miss          `json:"misses"`
	Used       domain.TitleSet `json:"-"`
}

const (
	missNoCandidate = "no candidate"
	missNoCapacity  = "no open slot"
)

type subject struct {
	name string
	seq  pathway.Sequencer
}

func (cfg Config) validate() error {
	var errs []error
	if !domain.ValidGoals[cfg.Goal] {
		errs = append(errs, fmt.Errorf("%w: unknown goal %q", domain.ErrInvalidConfig, cfg.Goal))
	}
	for name, s := range map[string]pathway.Sequencer{
		SourceEnglish: cfg.English, SourceMath: cfg.Math, SourceScience: cfg.Science, SourceHistory: cfg.History,
	} {
		if s == nil {
			errs = append(errs, fmt.Errorf("planner: missing %s sequencer", name))
		}
	}
	return errors.Join(errs...)
}

// Fill places courses into plan. The plan is mutated in place; slots that
// are already filled are left untouched.
func Fill(plan *domain.Plan, cat *catalog.Catalog, cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rules := cfg.Rules
	if rules == nil {
		rules = matcher.Default()
	}

	used := cfg.Completed.Clone()
	used = used.Union(pathway.Superseded(cat, cfg.Completed))
	used = used.Union(plan.PlacedTitles())

	f := &filler{
		cat:      cat,
		cfg:      cfg,
		rules:    rules,
		used:     used,
		language: pathway.NewLanguage(),
		res:      &Result{},
	}

	for _, grade := range domain.Grades {
		year, err := plan.Year(grade)
		if err != nil {
			return nil, fmt.Errorf("filling plan: %w", err)
		}
		f.fillYear(year, plan.Goal)
	}
	f.res.Used = f.used
	return f.res, nil
}

type filler struct {
	cat      *catalog.Catalog
	cfg      Config
	rules    *matcher.Rules
	used     domain.TitleSet
	language *pathway.Language
	res      *Result
}

func (f *filler) subjects() []subject {
	out := []subject{
		{SourceEnglish, f.cfg.English},
		{SourceMath, f.cfg.Math},
		{SourceScience, f.cfg.Science},
	}
	if f.cfg.PreferSpanish {
		out = append(out, subject{SourceLanguage, f.language})
	}
	return append(out,
		subject{SourceHistory, f.cfg.History},
		subject{SourceEthnicHealth, pathway.EthnicStudiesHealth},
		subject{SourceFreshmanPE, pathway.FreshmanPE},
		subject{SourceSecondPE, pathway.SecondPE},
	)
}

// appliesTo limits grade-specific subjects so misses are only reported
// where the subject is actually required.
func appliesTo(name string, grade int) bool {
	switch name {
	case SourceHistory:
		return grade >= 10
	case SourceEthnicHealth, SourceFreshmanPE:
		return grade == 9
	case SourceSecondPE:
		return grade == 10
	}
	return true
}

func (f *filler) fillYear(year *domain.Year, goal domain.Goal) {
	languagePlaced := false
	for _, s := range f.subjects() {
		if !appliesTo(s.name, year.Grade) {
			continue
		}
		if year.FirstOpen() < 0 {
			f.miss(year.Grade, s.name, missNoCapacity)
			continue
		}
		slot, ok := s.seq.Next(f.cat, year.Grade, f.used)
		if !ok || f.conflicts(slot) {
			f.miss(year.Grade, s.name, missNoCandidate)
			continue
		}
		f.place(year, slot, s.name)
		if s.name == SourceLanguage {
			languagePlaced = true
		}
	}
	f.fillElectives(year, goal, languagePlaced)
}

// fillElectives claims the remaining open slots: a world-language
// continuation, then the goal's keyword lists, then any eligible course in
// catalog order.
func (f *filler) fillElectives(year *domain.Year, goal domain.Goal, languagePlaced bool) {
	if year.OpenCount() == 0 {
		return
	}

	if f.cfg.PreferSpanish && !languagePlaced {
		if slot, ok := f.language.Next(f.cat, year.Grade, f.used); ok && !f.conflicts(slot) {
			f.place(year, slot, SourceElectiveLanguage)
		}
	}

	for _, keywords := range f.rules.ElectiveKeywords(goal) {
		if year.OpenCount() == 0 {
			return
		}
		if t, ok := f.cat.FindAny(year.Grade, keywords, f.used); ok {
			f.place(year, domain.Single(t), SourceElectiveGoal)
		}
	}

	for _, t := range f.cat.Titles() {
		if year.OpenCount() == 0 {
			return
		}
		if f.cat.Available(t, year.Grade, f.used) {
			f.place(year, domain.Single(t), SourceElectiveAny)
		}
	}
}

func (f *filler) conflicts(slot domain.Slot) bool {
	for _, t := range slot.Titles() {
		if f.used.Has(t) {
			return true
		}
	}
	return false
}

func (f *filler) place(year *domain.Year, slot domain.Slot, source string) {
	idx := year.Place(slot)
	if idx < 0 {
		return
	}
	f.used.Add(slot.Titles()...)
	f.res.Placements = append(f.res.Placements, Placement{
		Grade:  year.Grade,
		Slot:   idx,
		Titles: slot.Titles(),
		Source: source,
	})
}

func (f *filler) miss(grade int, subject, reason string) {
	f.res.Misses = append(f.res.Misses, Miss{Grade: grade, Subject: subject, Reason: reason})
}
