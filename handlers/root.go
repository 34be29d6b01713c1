package handlers

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"campaign-tracker/config"
	"campaign-tracker/middleware"
	"campaign-tracker/services"
)

// NewRootCommand builds the campaign-tracker command tree. Every command loads the
// dataset first; commands that change it save it after they succeed.
func NewRootCommand(cfg *config.Config, log *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "campaign-tracker",
		Short:         "Track warbands, matches and rounds of a wargame campaign",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.DataFile, "data", cfg.DataFile, "campaign dataset file (.json, .yaml or .yml)")
	root.PersistentPreRunE = middleware.CampaignContext(func() string { return cfg.DataFile }, log)

	SetupWarbandCommands(root)
	SetupMatchCommands(root)
	SetupRoundCommands(root)
	SetupStatsCommands(root)
	SetupReportCommands(root, cfg, log)

	return root
}

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, services.ErrInvalidInput):
		return 2
	default:
		return 1
	}
}
