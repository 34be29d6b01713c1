package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"campaign-tracker/services"
)

type campaignKey struct{}

// Handler is a command body that works on the loaded campaign.
type Handler func(cmd *cobra.Command, args []string, svc *services.CampaignService) error

// CampaignContext loads the dataset before any command runs and attaches the store
// to the command context. path is resolved at run time so flag overrides apply.
func CampaignContext(path func() string, log *zap.Logger) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		svc := services.LoadCampaign(path(), log)
		cmd.SetContext(context.WithValue(ctx, campaignKey{}, svc))
		return nil
	}
}

// Campaign returns the store attached by CampaignContext.
func Campaign(ctx context.Context) (*services.CampaignService, error) {
	if ctx == nil {
		return nil, errors.New("campaign not loaded")
	}
	svc, ok := ctx.Value(campaignKey{}).(*services.CampaignService)
	if !ok || svc == nil {
		return nil, errors.New("campaign not loaded")
	}
	return svc, nil
}

// ReadOnly runs h against the loaded campaign and never writes it back.
func ReadOnly(h Handler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, err := Campaign(cmd.Context())
		if err != nil {
			return err
		}
		return h(cmd, args, svc)
	}
}

// SaveOnSuccess runs h and saves the dataset only when h succeeds.
func SaveOnSuccess(h Handler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svc, err := Campaign(cmd.Context())
		if err != nil {
			return err
		}
		if err := h(cmd, args, svc); err != nil {
			return err
		}
		if err := svc.Save(); err != nil {
			return fmt.Errorf("failed to save campaign: %w", err)
		}
		svc.Log.Debug("campaign saved after command", zap.String("command", cmd.CommandPath()))
		return nil
	}
}
