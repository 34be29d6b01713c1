package middleware

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"campaign-tracker/services"
)

func runWith(t *testing.T, path string, run func(*cobra.Command, []string) error) error {
	t.Helper()
	cmd := &cobra.Command{
		Use:               "test",
		PersistentPreRunE: CampaignContext(func() string { return path }, zaptest.NewLogger(t)),
		RunE:              run,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
	cmd.SetArgs([]string{})
	return cmd.ExecuteContext(context.Background())
}

func TestSaveOnSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaign_data.json")

	err := runWith(t, path, SaveOnSuccess(func(_ *cobra.Command, _ []string, svc *services.CampaignService) error {
		return svc.AddWarband("Iron Fang")
	}))
	require.NoError(t, err)

	campaign, err := services.ReadCampaign(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Iron Fang"}, campaign.Warbands.Names())
}

func TestSaveOnSuccessSkipsFailedCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaign_data.json")
	boom := errors.New("boom")

	err := runWith(t, path, SaveOnSuccess(func(_ *cobra.Command, _ []string, svc *services.CampaignService) error {
		require.NoError(t, svc.AddWarband("Iron Fang"))
		return boom
	}))
	assert.ErrorIs(t, err, boom)
	assert.NoFileExists(t, path)
}

func TestReadOnlyNeverSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaign_data.json")

	err := runWith(t, path, ReadOnly(func(_ *cobra.Command, _ []string, svc *services.CampaignService) error {
		return svc.AddWarband("Iron Fang")
	}))
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCampaignWithoutContext(t *testing.T) {
	_, err := Campaign(context.Background())
	assert.Error(t, err)
}
