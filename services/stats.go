package services

import (
	"go.uber.org/zap"

	"campaign-tracker/models"
)

// RecalcStats zeroes every warband and replays all matches, rounds ascending and
// recording order within a round. Manual overrides are discarded.
func (s *CampaignService) RecalcStats() {
	s.Campaign.Warbands.Each(func(_ string, wb *models.Warband) {
		wb.Reset()
	})

	replayed := 0
	s.Campaign.Rounds.Each(func(m *models.Match) {
		s.applyMatch(m)
		replayed++
	})

	s.Log.Debug("stats recalculated",
		zap.Int("warbands", s.Campaign.Warbands.Len()),
		zap.Int("matches", replayed),
	)
}

// applyMatch folds one match into the totals of each known participant.
// A participant missing from the roster is skipped without error.
func (s *CampaignService) applyMatch(m *models.Match) {
	for _, side := range m.Sides() {
		wb, ok := s.Campaign.Warbands.Get(side.Warband)
		if !ok {
			s.Log.Info("skipping stats for unknown warband",
				zap.String("warband", side.Warband),
				zap.Int("round", m.Round),
			)
			continue
		}
		wb.VictoryPoints += side.VictoryPoints
		wb.Glory += side.Glory
		wb.Casualties += side.Casualties
		if side.Won {
			wb.Wins++
		} else {
			wb.Losses++
		}
		wb.Matches = append(wb.Matches, m)
	}
}
