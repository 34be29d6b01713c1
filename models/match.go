package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks caller input that must be rejected before it reaches the store.
var ErrInvalidInput = errors.New("invalid input")

// Match records a single contest between two warbands within a round.
// Identity is round + position in that round; participants never change after recording.
type Match struct {
	Round          int    `json:"round" yaml:"round"`
	Warband1       string `json:"warband1" yaml:"warband1"`
	Warband2       string `json:"warband2" yaml:"warband2"`
	Winner         string `json:"winner" yaml:"winner"`
	VictoryPoints1 int    `json:"victory_points1" yaml:"victory_points1"`
	VictoryPoints2 int    `json:"victory_points2" yaml:"victory_points2"`
	Glory1         int    `json:"glory1" yaml:"glory1"`
	Glory2         int    `json:"glory2" yaml:"glory2"`
	Casualties1    int    `json:"casualties1" yaml:"casualties1"`
	Casualties2    int    `json:"casualties2" yaml:"casualties2"`
}

// MatchInput is the payload collected by the presentation layer to record a match.
type MatchInput struct {
	Round       int
	Warband1    string
	Warband2    string
	Winner      string
	VP1, VP2    int
	Glory1      int
	Glory2      int
	Casualties1 int
	Casualties2 int
}

// MatchEdit carries the editable fields of a recorded match.
type MatchEdit struct {
	Winner      string
	VP1, VP2    int
	Glory1      int
	Glory2      int
	Casualties1 int
	Casualties2 int
}

// Side is one warband's view of a match.
type Side struct {
	Warband       string
	Opponent      string
	Won           bool
	VictoryPoints int
	Glory         int
	Casualties    int
}

// Validate checks the rules a match must satisfy before it is recorded.
func (in MatchInput) Validate() error {
	if in.Round < 1 {
		return fmt.Errorf("%w: round must be a positive integer, got %d", ErrInvalidInput, in.Round)
	}
	w1 := strings.TrimSpace(in.Warband1)
	w2 := strings.TrimSpace(in.Warband2)
	if w1 == "" || w2 == "" || strings.TrimSpace(in.Winner) == "" {
		return fmt.Errorf("%w: both warbands and a winner are required", ErrInvalidInput)
	}
	if in.Warband1 == in.Warband2 {
		return fmt.Errorf("%w: a warband cannot play against itself", ErrInvalidInput)
	}
	if in.Winner != in.Warband1 && in.Winner != in.Warband2 {
		return fmt.Errorf("%w: winner %q is not one of the participants", ErrInvalidInput, in.Winner)
	}
	return checkTallies(in.VP1, in.VP2, in.Glory1, in.Glory2, in.Casualties1, in.Casualties2)
}

// Match builds the record described by the input.
func (in MatchInput) Match() *Match {
	return &Match{
		Round:          in.Round,
		Warband1:       in.Warband1,
		Warband2:       in.Warband2,
		Winner:         in.Winner,
		VictoryPoints1: in.VP1,
		VictoryPoints2: in.VP2,
		Glory1:         in.Glory1,
		Glory2:         in.Glory2,
		Casualties1:    in.Casualties1,
		Casualties2:    in.Casualties2,
	}
}

// ValidateFor checks an edit against the match it will overwrite.
func (e MatchEdit) ValidateFor(m *Match) error {
	if e.Winner != m.Warband1 && e.Winner != m.Warband2 {
		return fmt.Errorf("%w: winner %q is not one of %q and %q", ErrInvalidInput, e.Winner, m.Warband1, m.Warband2)
	}
	return checkTallies(e.VP1, e.VP2, e.Glory1, e.Glory2, e.Casualties1, e.Casualties2)
}

// EditOf returns the current editable fields of m, a starting point for partial edits.
func EditOf(m *Match) MatchEdit {
	return MatchEdit{
		Winner:      m.Winner,
		VP1:         m.VictoryPoints1,
		VP2:         m.VictoryPoints2,
		Glory1:      m.Glory1,
		Glory2:      m.Glory2,
		Casualties1: m.Casualties1,
		Casualties2: m.Casualties2,
	}
}

// Apply overwrites the editable fields of m in place.
func (e MatchEdit) Apply(m *Match) {
	m.Winner = e.Winner
	m.VictoryPoints1 = e.VP1
	m.VictoryPoints2 = e.VP2
	m.Glory1 = e.Glory1
	m.Glory2 = e.Glory2
	m.Casualties1 = e.Casualties1
	m.Casualties2 = e.Casualties2
}

// Sides returns the two per-side views of the match, warband1 first.
func (m *Match) Sides() [2]Side {
	return [2]Side{
		{
			Warband:       m.Warband1,
			Opponent:      m.Warband2,
			Won:           m.Warband1 == m.Winner,
			VictoryPoints: m.VictoryPoints1,
			Glory:         m.Glory1,
			Casualties:    m.Casualties1,
		},
		{
			Warband:       m.Warband2,
			Opponent:      m.Warband1,
			Won:           m.Warband2 == m.Winner,
			VictoryPoints: m.VictoryPoints2,
			Glory:         m.Glory2,
			Casualties:    m.Casualties2,
		},
	}
}

// PerspectiveOf returns the match as seen by name. Any name other than warband1
// is treated as warband2.
func (m *Match) PerspectiveOf(name string) Side {
	sides := m.Sides()
	if m.Warband1 == name {
		return sides[0]
	}
	side := sides[1]
	side.Won = m.Winner == name
	return side
}

func checkTallies(values ...int) error {
	for _, v := range values {
		if v < 0 {
			return fmt.Errorf("%w: points, glory and casualties cannot be negative", ErrInvalidInput)
		}
	}
	return nil
}
