package domain

import (
	"encoding/json"
	"fmt"
)

// Slot is one of the six yearly course positions. It is empty, holds a single
// full-year title, or holds a linked pair of two semester titles that share
// the slot.
type Slot struct {
	first  string
	second string
}

// EmptySlot returns an unfilled slot.
func EmptySlot() Slot { return Slot{} }

// Single returns a slot holding one full-year course.
func Single(title string) Slot { return Slot{first: title} }

// Pair returns a slot holding two linked semester courses.
func Pair(a, b string) Slot { return Slot{first: a, second: b} }

// NewPair validates a linked pair: both halves must be named and distinct.
func NewPair(a, b string) (Slot, error) {
	switch {
	case a == "" || b == "":
		return Slot{}, fmt.Errorf("semester pair titles must be non-empty, got %q and %q", a, b)
	case a == b:
		return Slot{}, fmt.Errorf("semester pair repeats %q", a)
	}
	return Pair(a, b), nil
}

func (s Slot) IsEmpty() bool { return s.first == "" }

func (s Slot) IsPair() bool { return s.second != "" }

// Titles returns the titles occupying the slot (zero, one, or two).
func (s Slot) Titles() []string {
	switch {
	case s.IsEmpty():
		return nil
	case s.IsPair():
		return []string{s.first, s.second}
	default:
		return []string{s.first}
	}
}

// Weight is the year value carried by each title in the slot: 1.0 for a
// full-year course, 0.5 for each half of a linked pair.
func (s Slot) Weight() float64 {
	if s.IsPair() {
		return 0.5
	}
	return 1.0
}

func (s Slot) String() string {
	switch {
	case s.IsEmpty():
		return "(open)"
	case s.IsPair():
		return s.first + " + " + s.second
	default:
		return s.first
	}
}

// MarshalJSON encodes the slot as null, "Title", or ["A", "B"].
func (s Slot) MarshalJSON() ([]byte, error) {
	switch {
	case s.IsEmpty():
		return []byte("null"), nil
	case s.IsPair():
		return json.Marshal([]string{s.first, s.second})
	default:
		return json.Marshal(s.first)
	}
}

func (s *Slot) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Slot{}
		return nil
	}
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		*s = Single(title)
		return nil
	}
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("slot must be null, a title, or a two-title pair: %w", err)
	}
	switch len(pair) {
	case 0:
		*s = Slot{}
	case 1:
		*s = Single(pair[0])
	case 2:
		p, err := NewPair(pair[0], pair[1])
		if err != nil {
			return err
		}
		*s = p
	default:
		return fmt.Errorf("slot pair has %d titles, expected 2", len(pair))
	}
	return nil
}

// MarshalYAML mirrors the JSON form.
func (s Slot) MarshalYAML() (any, error) {
	switch {
	case s.IsEmpty():
		return nil, nil
	case s.IsPair():
		return []string{s.first, s.second}, nil
	default:
		return s.first, nil
	}
}
