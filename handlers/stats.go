package handlers

import (
	"github.com/spf13/cobra"

	"campaign-tracker/middleware"
	"campaign-tracker/services"
)

// SetupStatsCommands registers recalculation and the leaderboard.
func SetupStatsCommands(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:   "recalc",
		Short: "Rebuild every warband's stats from the recorded matches",
		Long: "Rebuild every warband's stats from the recorded matches. Manual stat overrides\n" +
			"are discarded and matches naming unknown warbands are skipped for those warbands.",
		Args: cobra.NoArgs,
		RunE: middleware.SaveOnSuccess(recalc),
	})
	root.AddCommand(&cobra.Command{
		Use:   "standings",
		Short: "Rank warbands by wins, victory points and glory",
		Args:  cobra.NoArgs,
		RunE:  middleware.ReadOnly(standings),
	})
}

func recalc(cmd *cobra.Command, _ []string, svc *services.CampaignService) error {
	svc.RecalcStats()
	printSuccess(cmd.OutOrStdout(), "Stats recalculated for %d warband(s)", len(svc.ListWarbands()))
	return nil
}

func standings(cmd *cobra.Command, _ []string, svc *services.CampaignService) error {
	out := cmd.OutOrStdout()
	rows := svc.Standings()
	if len(rows) == 0 {
		printEmpty(out, "No warbands recorded.")
		return nil
	}

	table := make([][]string, 0, len(rows))
	for _, s := range rows {
		table = append(table, []string{
			itoa(s.Rank), s.Name, number(s.Played), number(s.Wins), number(s.Losses),
			number(s.VictoryPoints), number(s.Glory), number(s.Casualties),
		})
	}
	printTitle(out, "Standings")
	printTable(out, []string{"#", "Warband", "Played", "W", "L", "VP", "Glory", "Casualties"}, table)
	return nil
}
