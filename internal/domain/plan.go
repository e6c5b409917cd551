package domain

import "fmt"

// Year holds the six slots for one grade. The array type keeps the slot
// count fixed.
type Year struct {
	Grade int                `json:"grade"`
	Slots [SlotsPerYear]Slot `json:"courses"`
}

// FirstOpen returns the index of the leftmost empty slot, or -1.
func (y *Year) FirstOpen() int {
	for i, s := range y.Slots {
		if s.IsEmpty() {
			return i
		}
	}
	return -1
}

// OpenCount returns the number of empty slots.
func (y *Year) OpenCount() int {
	n := 0
	for _, s := range y.Slots {
		if s.IsEmpty() {
			n++
		}
	}
	return n
}

// Place puts s into the first open slot. It returns the slot index, or -1
// when the year is full. Filled slots are never overwritten.
func (y *Year) Place(s Slot) int {
	if s.IsEmpty() {
		return -1
	}
	i := y.FirstOpen()
	if i < 0 {
		return -1
	}
	y.Slots[i] = s
	return i
}

// Titles returns every title in the year, pair halves included.
func (y *Year) Titles() []string {
	var out []string
	for _, s := range y.Slots {
		out = append(out, s.Titles()...)
	}
	return out
}

// Plan is a four-year course plan tagged with a goal.
type Plan struct {
	Goal  Goal   `json:"goal"`
	Years []Year `json:"plan"`
}

// NewPlan builds the empty skeleton: grades 9-12, six open slots each.
func NewPlan(goal Goal) *Plan {
	p := &Plan{Goal: goal, Years: make([]Year, 0, len(Grades))}
	for _, g := range Grades {
		p.Years = append(p.Years, Year{Grade: g})
	}
	return p
}

// Year returns the year record for a grade.
func (p *Plan) Year(grade int) (*Year, error) {
	for i := range p.Years {
		if p.Years[i].Grade == grade {
			return &p.Years[i], nil
		}
	}
	return nil, fmt.Errorf("plan has no grade %d", grade)
}

// PlacedTitles returns every title placed anywhere in the plan.
func (p *Plan) PlacedTitles() TitleSet {
	out := make(TitleSet)
	for i := range p.Years {
		out.Add(p.Years[i].Titles()...)
	}
	return out
}

// PlacedBefore returns titles placed in years earlier than grade.
func (p *Plan) PlacedBefore(grade int) TitleSet {
	out := make(TitleSet)
	for i := range p.Years {
		if p.Years[i].Grade < grade {
			out.Add(p.Years[i].Titles()...)
		}
	}
	return out
}

// Clone returns a deep copy. Slots are values, so copying the years is enough.
func (p *Plan) Clone() *Plan {
	out := &Plan{Goal: p.Goal, Years: make([]Year, len(p.Years))}
	copy(out.Years, p.Years)
	return out
}
