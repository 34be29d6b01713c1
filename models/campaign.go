package models

import "sort"

// Campaign is the whole persisted dataset.
type Campaign struct {
	Warbands Roster `json:"warbands" yaml:"warbands"`
	Rounds   Rounds `json:"rounds" yaml:"rounds"`
}

// NewCampaign returns an empty dataset.
func NewCampaign() *Campaign {
	return &Campaign{Rounds: Rounds{}}
}

// Roster maps warband names to records while remembering insertion order.
type Roster struct {
	names  []string
	byName map[string]*Warband
}

// Get looks up a warband by its exact name.
func (r *Roster) Get(name string) (*Warband, bool) {
	wb, ok := r.byName[name]
	return wb, ok
}

// Add inserts wb under name. It reports false and leaves the roster untouched
// when the name is taken.
func (r *Roster) Add(name string, wb *Warband) bool {
	if _, exists := r.byName[name]; exists {
		return false
	}
	if r.byName == nil {
		r.byName = make(map[string]*Warband)
	}
	r.byName[name] = wb
	r.names = append(r.names, name)
	return true
}

// Remove deletes name and reports whether it was present.
func (r *Roster) Remove(name string) bool {
	if _, exists := r.byName[name]; !exists {
		return false
	}
	delete(r.byName, name)
	for i, n := range r.names {
		if n == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns the warband names in insertion order.
func (r *Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len is the number of warbands.
func (r *Roster) Len() int {
	return len(r.names)
}

// Each calls fn for every warband in insertion order.
func (r *Roster) Each(fn func(name string, wb *Warband)) {
	for _, name := range r.names {
		fn(name, r.byName[name])
	}
}

// Rounds maps a round number to its matches in recording order.
type Rounds map[int][]*Match

// Numbers returns the rounds holding at least one match, ascending.
func (r Rounds) Numbers() []int {
	out := make([]int, 0, len(r))
	for n, matches := range r {
		if len(matches) > 0 {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out
}

// Append adds m to the end of its round, creating the round if needed.
func (r Rounds) Append(m *Match) {
	r[m.Round] = append(r[m.Round], m)
}

// Each visits every match in ascending round order and stored order within a round.
func (r Rounds) Each(fn func(m *Match)) {
	for _, n := range r.Numbers() {
		for _, m := range r[n] {
			fn(m)
		}
	}
}

// Normalize fills the collections a decoded document may have left nil.
func (c *Campaign) Normalize() {
	if c.Rounds == nil {
		c.Rounds = Rounds{}
	}
}
