package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the tracker.
type Config struct {
	DataFile   string    `env:"DATA_FILE" envDefault:"campaign_data.json"`
	ReportFile string    `env:"REPORT_FILE" envDefault:"campaign_report.html"`
	ExportDB   string    `env:"EXPORT_DB" envDefault:"campaign.db"`
	OpenReport bool      `env:"OPEN_REPORT" envDefault:"true"`
	Log        LogConfig `envPrefix:"LOG_"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"warn"`
	Format string `env:"FORMAT" envDefault:"console"`
}

const envPrefix = "CAMPAIGN_"

// Load reads an optional .env file and then parses CAMPAIGN_* variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Println("⚠️  failed to read .env file, reading environment variables directly:", err)
	}
	return Parse()
}

// Parse builds the config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
