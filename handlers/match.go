package handlers

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"campaign-tracker/middleware"
	"campaign-tracker/models"
	"campaign-tracker/services"
)

// SetupMatchCommands registers the commands that record and correct matches.
func SetupMatchCommands(root *cobra.Command) {
	match := &cobra.Command{
		Use:   "match",
		Short: "Record and edit match results",
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Record a match and update both warbands",
		Args:  cobra.NoArgs,
		RunE:  middleware.SaveOnSuccess(addMatch),
	}
	add.Flags().Int("round", 0, "round number (1 or higher)")
	add.Flags().String("w1", "", "first warband")
	add.Flags().String("w2", "", "second warband")
	add.Flags().String("winner", "", "winning warband, one of --w1 or --w2")
	tallyFlags(add.Flags())
	for _, name := range []string{"round", "w1", "w2", "winner"} {
		_ = add.MarkFlagRequired(name)
	}
	match.AddCommand(add)

	edit := &cobra.Command{
		Use:   "edit",
		Short: "Change the winner or tallies of a recorded match and recalculate all stats",
		Long: "Change the winner or tallies of a recorded match. Flags that are not set keep their\n" +
			"current value. Every warband's stats are recalculated afterwards.",
		Args: cobra.NoArgs,
		RunE: middleware.SaveOnSuccess(editMatch),
	}
	edit.Flags().Int("round", 0, "round of the match")
	edit.Flags().Int("index", 0, "position of the match within the round, as shown by 'round show'")
	edit.Flags().String("winner", "", "new winner, one of the two participants")
	tallyFlags(edit.Flags())
	for _, name := range []string{"round", "index"} {
		_ = edit.MarkFlagRequired(name)
	}
	match.AddCommand(edit)

	root.AddCommand(match)
}

func tallyFlags(flags *pflag.FlagSet) {
	flags.Int("vp1", 0, "victory points of the first warband")
	flags.Int("vp2", 0, "victory points of the second warband")
	flags.Int("glory1", 0, "glory of the first warband")
	flags.Int("glory2", 0, "glory of the second warband")
	flags.Int("cas1", 0, "casualties of the first warband")
	flags.Int("cas2", 0, "casualties of the second warband")
}

// tallies reads the six numeric flags into the given targets, skipping unset flags.
func tallies(flags *pflag.FlagSet, vp1, vp2, glory1, glory2, cas1, cas2 *int) error {
	targets := []struct {
		name string
		dst  *int
	}{
		{"vp1", vp1}, {"vp2", vp2},
		{"glory1", glory1}, {"glory2", glory2},
		{"cas1", cas1}, {"cas2", cas2},
	}
	for _, t := range targets {
		if !flags.Changed(t.name) {
			continue
		}
		v, err := flags.GetInt(t.name)
		if err != nil {
			return err
		}
		*t.dst = v
	}
	return nil
}

func addMatch(cmd *cobra.Command, _ []string, svc *services.CampaignService) error {
	flags := cmd.Flags()
	in := models.MatchInput{}
	in.Round, _ = flags.GetInt("round")
	in.Warband1, _ = flags.GetString("w1")
	in.Warband2, _ = flags.GetString("w2")
	in.Winner, _ = flags.GetString("winner")
	if err := tallies(flags, &in.VP1, &in.VP2, &in.Glory1, &in.Glory2, &in.Casualties1, &in.Casualties2); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range []string{in.Warband1, in.Warband2} {
		if _, err := svc.Warband(name); err != nil {
			printWarning(cmd.ErrOrStderr(), "%q is not a registered warband; the match is recorded but its stats are not updated", name)
		}
	}

	index := svc.AddMatch(in)
	printSuccess(out, "Match added to round %d at index %d: %s beat %s",
		in.Round, index, in.Winner, opponentOf(in.Winner, in.Warband1, in.Warband2))
	return nil
}

func editMatch(cmd *cobra.Command, _ []string, svc *services.CampaignService) error {
	flags := cmd.Flags()
	round, _ := flags.GetInt("round")
	index, _ := flags.GetInt("index")

	current, err := svc.Match(round, index)
	if err != nil {
		return err
	}
	edit := models.EditOf(&current)
	if flags.Changed("winner") {
		edit.Winner, _ = flags.GetString("winner")
	}
	if err := tallies(flags, &edit.VP1, &edit.VP2, &edit.Glory1, &edit.Glory2, &edit.Casualties1, &edit.Casualties2); err != nil {
		return err
	}

	if err := svc.EditMatch(round, index, edit); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Match %d of round %d updated; stats recalculated", index, round)
	return nil
}

func opponentOf(name, w1, w2 string) string {
	if name == w1 {
		return w2
	}
	return w1
}

