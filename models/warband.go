package models

// Warband holds the aggregate statistics of one faction. The counters are derived
// from Matches and only written directly by a manual override.
type Warband struct {
	Wins          int      `json:"wins" yaml:"wins"`
	Losses        int      `json:"losses" yaml:"losses"`
	Glory         int      `json:"glory" yaml:"glory"`
	Casualties    int      `json:"casualties" yaml:"casualties"`
	VictoryPoints int      `json:"victory_points" yaml:"victory_points"`
	Matches       []*Match `json:"matches" yaml:"matches"`
}

// NewWarband returns a warband with zeroed counters.
func NewWarband() *Warband {
	return &Warband{Matches: []*Match{}}
}

// Reset zeroes the counters and clears the match list.
func (w *Warband) Reset() {
	w.Wins, w.Losses, w.Glory, w.Casualties, w.VictoryPoints = 0, 0, 0, 0, 0
	w.Matches = []*Match{}
}

// Played is the number of matches folded into the counters.
func (w *Warband) Played() int {
	return w.Wins + w.Losses
}

// Clone returns a copy that shares no memory with w.
func (w *Warband) Clone() *Warband {
	c := *w
	c.Matches = make([]*Match, len(w.Matches))
	for i, m := range w.Matches {
		cm := *m
		c.Matches[i] = &cm
	}
	return &c
}
