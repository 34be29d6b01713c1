package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"campaign-tracker/models"
)

// Errors reported by the campaign store.
var (
	ErrDuplicateWarband = errors.New("warband already exists")
	ErrWarbandNotFound  = errors.New("warband not found")
	ErrRoundNotFound    = errors.New("round not found")
	ErrMatchNotFound    = errors.New("match not found")
	ErrInvalidInput     = models.ErrInvalidInput
)

// CampaignService owns the in-memory campaign and the file it was loaded from.
// It is not safe for concurrent use.
type CampaignService struct {
	Campaign *models.Campaign
	Path     string
	Log      *zap.Logger

	// set when the file at Path existed but could not be read; Save keeps a backup of it
	recovered bool
}

// NewCampaignService wraps an already loaded campaign. A nil campaign starts empty.
func NewCampaignService(campaign *models.Campaign, path string, log *zap.Logger) *CampaignService {
	if campaign == nil {
		campaign = models.NewCampaign()
	}
	campaign.Normalize()
	if log == nil {
		log = zap.NewNop()
	}
	return &CampaignService{Campaign: campaign, Path: path, Log: log}
}

// AddWarband registers a new warband with zeroed counters.
func (s *CampaignService) AddWarband(name string) error {
	if !s.Campaign.Warbands.Add(name, models.NewWarband()) {
		return fmt.Errorf("%w: %q", ErrDuplicateWarband, name)
	}
	s.Log.Debug("warband added", zap.String("warband", name))
	return nil
}

// RemoveWarband deletes a warband. Matches that reference it stay recorded.
func (s *CampaignService) RemoveWarband(name string) error {
	if !s.Campaign.Warbands.Remove(name) {
		return fmt.Errorf("%w: %q", ErrWarbandNotFound, name)
	}
	s.Log.Debug("warband removed", zap.String("warband", name))
	return nil
}

// ListWarbands returns the warband names in insertion order.
func (s *CampaignService) ListWarbands() []string {
	return s.Campaign.Warbands.Names()
}

// Warband returns a copy of one warband record.
func (s *CampaignService) Warband(name string) (*models.Warband, error) {
	wb, ok := s.Campaign.Warbands.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrWarbandNotFound, name)
	}
	return wb.Clone(), nil
}

// AddMatch records a match and folds it into both participants' totals.
// The input is not validated here; callers run MatchInput.Validate first.
// Calling it twice records two matches. It returns the match's index within its round.
func (s *CampaignService) AddMatch(in models.MatchInput) int {
	m := in.Match()
	s.Campaign.Rounds.Append(m)
	s.applyMatch(m)

	index := len(s.Campaign.Rounds[m.Round]) - 1
	s.Log.Debug("match recorded",
		zap.Int("round", m.Round),
		zap.Int("index", index),
		zap.String("winner", m.Winner),
	)
	return index
}

// EditMatch overwrites the editable fields of a recorded match and rebuilds every total.
func (s *CampaignService) EditMatch(round, index int, edit models.MatchEdit) error {
	m, err := s.match(round, index)
	if err != nil {
		return err
	}
	if err := edit.ValidateFor(m); err != nil {
		return err
	}
	edit.Apply(m)
	s.RecalcStats()
	return nil
}

// Match returns a copy of the match at index within round.
func (s *CampaignService) Match(round, index int) (models.Match, error) {
	m, err := s.match(round, index)
	if err != nil {
		return models.Match{}, err
	}
	return *m, nil
}

// GetRounds returns the rounds with at least one match, ascending.
func (s *CampaignService) GetRounds() []int {
	return s.Campaign.Rounds.Numbers()
}

// RoundMatches returns copies of a round's matches in recording order.
func (s *CampaignService) RoundMatches(round int) ([]models.Match, error) {
	matches := s.Campaign.Rounds[round]
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrRoundNotFound, round)
	}
	out := make([]models.Match, len(matches))
	for i, m := range matches {
		out[i] = *m
	}
	return out, nil
}

// OverrideStats sets a warband's victory points, glory and casualties directly.
// The values are not reconciled with match history: the next RecalcStats replaces them.
func (s *CampaignService) OverrideStats(name string, victoryPoints, glory, casualties int) error {
	wb, ok := s.Campaign.Warbands.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrWarbandNotFound, name)
	}
	wb.VictoryPoints = victoryPoints
	wb.Glory = glory
	wb.Casualties = casualties
	s.Log.Info("warband stats overridden",
		zap.String("warband", name),
		zap.Int("victory_points", victoryPoints),
		zap.Int("glory", glory),
		zap.Int("casualties", casualties),
	)
	return nil
}

func (s *CampaignService) match(round, index int) (*models.Match, error) {
	matches, ok := s.Campaign.Rounds[round]
	if !ok || len(matches) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrRoundNotFound, round)
	}
	if index < 0 || index >= len(matches) {
		return nil, fmt.Errorf("%w: round %d has no match %d", ErrMatchNotFound, round, index)
	}
	return matches[index], nil
}
