package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campaign-tracker/models"
	"campaign-tracker/utils"
)

// ExportService mirrors the campaign into a local SQLite file for spreadsheet and BI tools.
type ExportService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// ExportResult summarises one export run.
type ExportResult struct {
	ExportID string
	Warbands int
	Matches  int
}

// NewExportService opens (or creates) the SQLite file at path and migrates its tables.
func NewExportService(path string, log *zap.Logger) (*ExportService, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("export database path is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if err := utils.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open export database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.WarbandRecord{}, &models.MatchRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate export database: %w", err)
	}

	return &ExportService{DB: db, Log: log}, nil
}

// Export replaces the exported tables with the current campaign in one transaction.
func (s *ExportService) Export(ctx context.Context, campaign *models.Campaign) (*ExportResult, error) {
	exportID := uuid.NewString()
	warbands := warbandRecords(campaign, exportID)
	matches := matchRecords(campaign, exportID)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.MatchRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.WarbandRecord{}).Error; err != nil {
			return err
		}
		if len(warbands) > 0 {
			if err := tx.CreateInBatches(warbands, 100).Error; err != nil {
				return err
			}
		}
		if len(matches) > 0 {
			if err := tx.CreateInBatches(matches, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export campaign: %w", err)
	}

	s.Log.Info("campaign exported",
		zap.String("export_id", exportID),
		zap.Int("warbands", len(warbands)),
		zap.Int("matches", len(matches)),
	)
	return &ExportResult{ExportID: exportID, Warbands: len(warbands), Matches: len(matches)}, nil
}

// Close releases the database handle.
func (s *ExportService) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func warbandRecords(campaign *models.Campaign, exportID string) []models.WarbandRecord {
	records := make([]models.WarbandRecord, 0, campaign.Warbands.Len())
	position := 0
	campaign.Warbands.Each(func(name string, wb *models.Warband) {
		records = append(records, models.WarbandRecord{
			Name:          name,
			Slug:          slug.Make(name),
			Position:      position,
			Wins:          wb.Wins,
			Losses:        wb.Losses,
			Glory:         wb.Glory,
			Casualties:    wb.Casualties,
			VictoryPoints: wb.VictoryPoints,
			ExportID:      exportID,
		})
		position++
	})
	return records
}

func matchRecords(campaign *models.Campaign, exportID string) []models.MatchRecord {
	var records []models.MatchRecord
	for _, round := range campaign.Rounds.Numbers() {
		for i, m := range campaign.Rounds[round] {
			records = append(records, models.MatchRecord{
				ID:             uuid.NewString(),
				Round:          round,
				Position:       i,
				Warband1:       m.Warband1,
				Warband2:       m.Warband2,
				Winner:         m.Winner,
				VictoryPoints1: m.VictoryPoints1,
				VictoryPoints2: m.VictoryPoints2,
				Glory1:         m.Glory1,
				Glory2:         m.Glory2,
				Casualties1:    m.Casualties1,
				Casualties2:    m.Casualties2,
				ExportID:       exportID,
			})
		}
	}
	return records
}
