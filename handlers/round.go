package handlers

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"campaign-tracker/middleware"
	"campaign-tracker/services"
)

// SetupRoundCommands registers the round views.
func SetupRoundCommands(root *cobra.Command) {
	round := &cobra.Command{
		Use:   "round",
		Short: "Browse matches by round",
	}

	round.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List rounds that have matches",
		Args:  cobra.NoArgs,
		RunE:  middleware.ReadOnly(listRounds),
	})
	round.AddCommand(&cobra.Command{
		Use:   "show <round>",
		Short: "Show the matches of one round",
		Args:  cobra.ExactArgs(1),
		RunE:  middleware.ReadOnly(showRound),
	})

	root.AddCommand(round)
}

func listRounds(cmd *cobra.Command, _ []string, svc *services.CampaignService) error {
	out := cmd.OutOrStdout()
	rounds := svc.GetRounds()
	if len(rounds) == 0 {
		printEmpty(out, "No rounds recorded.")
		return nil
	}
	for _, n := range rounds {
		matches, err := svc.RoundMatches(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Round %d\t%d match(es)\n", n, len(matches))
	}
	return nil
}

func showRound(cmd *cobra.Command, args []string, svc *services.CampaignService) error {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: round must be an integer, got %q", services.ErrInvalidInput, args[0])
	}
	matches, err := svc.RoundMatches(n)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(matches))
	for i, m := range matches {
		rows = append(rows, []string{
			itoa(i), m.Warband1, m.Warband2, m.Winner,
			number(m.VictoryPoints1), number(m.VictoryPoints2),
			number(m.Glory1), number(m.Glory2),
			number(m.Casualties1), number(m.Casualties2),
		})
	}

	out := cmd.OutOrStdout()
	printTitle(out, fmt.Sprintf("Round %d Matches", n))
	printTable(out,
		[]string{"Index", "Warband 1", "Warband 2", "Winner", "VP1", "VP2", "Glory1", "Glory2", "Casualties1", "Casualties2"},
		rows,
	)
	return nil
}
