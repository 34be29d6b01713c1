package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() MatchInput {
	return MatchInput{
		Round:       1,
		Warband1:    "Iron Fang",
		Warband2:    "Rust Brigade",
		Winner:      "Iron Fang",
		VP1:         3,
		VP2:         1,
		Glory1:      2,
		Casualties1: 1,
		Casualties2: 2,
	}
}

func TestMatchInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *MatchInput)
		wantErr bool
	}{
		{name: "valid", mutate: func(in *MatchInput) {}},
		{name: "second warband wins", mutate: func(in *MatchInput) { in.Winner = "Rust Brigade" }},
		{name: "zero round", mutate: func(in *MatchInput) { in.Round = 0 }, wantErr: true},
		{name: "negative round", mutate: func(in *MatchInput) { in.Round = -2 }, wantErr: true},
		{name: "missing warband", mutate: func(in *MatchInput) { in.Warband2 = "  " }, wantErr: true},
		{name: "missing winner", mutate: func(in *MatchInput) { in.Winner = "" }, wantErr: true},
		{name: "identical participants", mutate: func(in *MatchInput) { in.Warband2 = "Iron Fang" }, wantErr: true},
		{name: "winner not a participant", mutate: func(in *MatchInput) { in.Winner = "Ash Saints" }, wantErr: true},
		{name: "winner differs by case", mutate: func(in *MatchInput) { in.Winner = "iron fang" }, wantErr: true},
		{name: "negative casualties", mutate: func(in *MatchInput) { in.Casualties2 = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			err := in.Validate()

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMatchInput_Match(t *testing.T) {
	m := validInput().Match()

	assert.Equal(t, &Match{
		Round:          1,
		Warband1:       "Iron Fang",
		Warband2:       "Rust Brigade",
		Winner:         "Iron Fang",
		VictoryPoints1: 3,
		VictoryPoints2: 1,
		Glory1:         2,
		Glory2:         0,
		Casualties1:    1,
		Casualties2:    2,
	}, m)
}

func TestMatchEdit(t *testing.T) {
	m := validInput().Match()

	t.Run("rejects a winner outside the original pair", func(t *testing.T) {
		edit := EditOf(m)
		edit.Winner = "Ash Saints"

		assert.ErrorIs(t, edit.ValidateFor(m), ErrInvalidInput)
	})

	t.Run("applies every editable field", func(t *testing.T) {
		edit := MatchEdit{Winner: "Rust Brigade", VP1: 0, VP2: 4, Glory1: 1, Glory2: 3, Casualties1: 5, Casualties2: 0}
		assert.NoError(t, edit.ValidateFor(m))

		edit.Apply(m)

		assert.Equal(t, "Rust Brigade", m.Winner)
		assert.Equal(t, "Iron Fang", m.Warband1)
		assert.Equal(t, 4, m.VictoryPoints2)
		assert.Equal(t, 3, m.Glory2)
		assert.Equal(t, 5, m.Casualties1)
		assert.Equal(t, edit, EditOf(m))
	})
}

func TestMatch_PerspectiveOf(t *testing.T) {
	m := validInput().Match()

	fang := m.PerspectiveOf("Iron Fang")
	rust := m.PerspectiveOf("Rust Brigade")

	assert.Equal(t, Side{Warband: "Iron Fang", Opponent: "Rust Brigade", Won: true, VictoryPoints: 3, Glory: 2, Casualties: 1}, fang)
	assert.Equal(t, Side{Warband: "Rust Brigade", Opponent: "Iron Fang", Won: false, VictoryPoints: 1, Glory: 0, Casualties: 2}, rust)
}
