package services

import (
	"sort"

	"campaign-tracker/models"
)

// Standing is one row of the campaign leaderboard.
type Standing struct {
	Rank          int
	Name          string
	Played        int
	Wins          int
	Losses        int
	VictoryPoints int
	Glory         int
	Casualties    int
}

// Standings orders warbands by wins, then victory points, then glory.
// Ties keep roster order and share a rank.
func (s *CampaignService) Standings() []Standing {
	rows := make([]Standing, 0, s.Campaign.Warbands.Len())
	s.Campaign.Warbands.Each(func(name string, wb *models.Warband) {
		rows = append(rows, Standing{
			Name:          name,
			Played:        wb.Played(),
			Wins:          wb.Wins,
			Losses:        wb.Losses,
			VictoryPoints: wb.VictoryPoints,
			Glory:         wb.Glory,
			Casualties:    wb.Casualties,
		})
	})

	sort.SliceStable(rows, func(i, j int) bool {
		return outranks(rows[i], rows[j])
	})

	for i := range rows {
		if i > 0 && !outranks(rows[i-1], rows[i]) {
			rows[i].Rank = rows[i-1].Rank
			continue
		}
		rows[i].Rank = i + 1
	}
	return rows
}

func outranks(a, b Standing) bool {
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	if a.VictoryPoints != b.VictoryPoints {
		return a.VictoryPoints > b.VictoryPoints
	}
	return a.Glory > b.Glory
}
