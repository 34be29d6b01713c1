package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"campaign-tracker/models"
	"campaign-tracker/utils"
)

// LoadCampaign opens the dataset at path. A missing file starts an empty campaign.
// An unreadable or malformed file also starts empty; the failure is logged and the
// original file is backed up on the next Save instead of being overwritten.
func LoadCampaign(path string, log *zap.Logger) *CampaignService {
	if log == nil {
		log = zap.NewNop()
	}
	campaign, err := ReadCampaign(path)
	svc := NewCampaignService(campaign, path, log)

	switch {
	case err == nil:
		log.Debug("campaign loaded",
			zap.String("path", path),
			zap.Int("warbands", campaign.Warbands.Len()),
			zap.Int("rounds", len(campaign.Rounds.Numbers())),
		)
	case errors.Is(err, fs.ErrNotExist):
		log.Info("no campaign file found, starting empty", zap.String("path", path))
	default:
		log.Warn("failed to load campaign, starting empty", zap.String("path", path), zap.Error(err))
		svc.recovered = true
	}
	return svc
}

// ReadCampaign decodes the dataset at path using the codec matching its extension.
func ReadCampaign(path string) (*models.Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	campaign := models.NewCampaign()
	if len(bytes.TrimSpace(data)) == 0 {
		return campaign, nil
	}
	if err := codecFor(path).unmarshal(data, campaign); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	campaign.Normalize()
	return campaign, nil
}

// WriteCampaign encodes the dataset and replaces the file at path atomically.
func WriteCampaign(path string, campaign *models.Campaign) error {
	data, err := codecFor(path).marshal(campaign)
	if err != nil {
		return fmt.Errorf("failed to encode campaign: %w", err)
	}
	if err := utils.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Save writes the dataset back to the file it was loaded from.
func (s *CampaignService) Save() error {
	if s.Path == "" {
		return errors.New("campaign has no file path")
	}
	return s.SaveAs(s.Path)
}

// SaveAs writes the dataset to path.
func (s *CampaignService) SaveAs(path string) error {
	if s.recovered && path == s.Path {
		backup := path + ".bak"
		if err := os.Rename(path, backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to back up unreadable campaign file: %w", err)
		}
		s.Log.Warn("unreadable campaign file kept as backup", zap.String("backup", backup))
		s.recovered = false
	}
	if err := WriteCampaign(path, s.Campaign); err != nil {
		return err
	}
	s.Log.Debug("campaign saved", zap.String("path", path))
	return nil
}

type codec struct {
	marshal   func(v any) ([]byte, error)
	unmarshal func(data []byte, v any) error
}

var (
	jsonCodec = codec{
		marshal: func(v any) ([]byte, error) {
			data, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return nil, err
			}
			return append(data, '\n'), nil
		},
		unmarshal: json.Unmarshal,
	}
	yamlCodec = codec{
		marshal: func(v any) ([]byte, error) {
			var buf bytes.Buffer
			enc := yaml.NewEncoder(&buf)
			enc.SetIndent(2)
			if err := enc.Encode(v); err != nil {
				return nil, err
			}
			if err := enc.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		unmarshal: yaml.Unmarshal,
	}
)

func codecFor(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec
	default:
		return jsonCodec
	}
}
