package handlers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"campaign-tracker/middleware"
	"campaign-tracker/services"
)

// SetupWarbandCommands registers the warband lifecycle commands.
func SetupWarbandCommands(root *cobra.Command) {
	warband := &cobra.Command{
		Use:   "warband",
		Short: "Manage the warbands taking part in the campaign",
	}

	warband.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Register a new warband",
		Args:  cobra.ExactArgs(1),
		RunE:  middleware.SaveOnSuccess(addWarband),
	})
	warband.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a warband; its recorded matches are kept",
		Args:  cobra.ExactArgs(1),
		RunE:  middleware.SaveOnSuccess(removeWarband),
	})
	warband.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List warbands in the order they were added",
		Args:  cobra.NoArgs,
		RunE:  middleware.ReadOnly(listWarbands),
	})
	warband.AddCommand(&cobra.Command{
		Use:   "show <name>",
		Short: "Show a warband's totals and match history",
		Args:  cobra.ExactArgs(1),
		RunE:  middleware.ReadOnly(showWarband),
	})

	setStats := &cobra.Command{
		Use:   "set-stats <name>",
		Short: "Override a warband's victory points, glory and casualties",
		Long: "Override a warband's victory points, glory and casualties.\n" +
			"The values are not tied to any match: the next recalculation or match edit replaces them.",
		Args: cobra.ExactArgs(1),
		RunE: middleware.SaveOnSuccess(setWarbandStats),
	}
	setStats.Flags().Int("vp", 0, "victory points")
	setStats.Flags().Int("glory", 0, "glory")
	setStats.Flags().Int("casualties", 0, "casualties")
	warband.AddCommand(setStats)

	root.AddCommand(warband)
}

func warbandName(arg string) (string, error) {
	name := strings.TrimSpace(arg)
	if name == "" {
		return "", fmt.Errorf("%w: warband name is required", services.ErrInvalidInput)
	}
	return name, nil
}

func addWarband(cmd *cobra.Command, args []string, svc *services.CampaignService) error {
	name, err := warbandName(args[0])
	if err != nil {
		return err
	}
	if err := svc.AddWarband(name); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Added warband %q", name)
	return nil
}

func removeWarband(cmd *cobra.Command, args []string, svc *services.CampaignService) error {
	name, err := warbandName(args[0])
	if err != nil {
		return err
	}
	if err := svc.RemoveWarband(name); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Removed warband %q", name)
	return nil
}

func listWarbands(cmd *cobra.Command, _ []string, svc *services.CampaignService) error {
	out := cmd.OutOrStdout()
	names := svc.ListWarbands()
	if len(names) == 0 {
		printEmpty(out, "No warbands recorded.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

func showWarband(cmd *cobra.Command, args []string, svc *services.CampaignService) error {
	name, err := warbandName(args[0])
	if err != nil {
		return err
	}
	wb, err := svc.Warband(name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printTitle(out, name)
	printTable(out,
		[]string{"Wins", "Losses", "Victory Points", "Glory", "Casualties"},
		[][]string{{number(wb.Wins), number(wb.Losses), number(wb.VictoryPoints), number(wb.Glory), number(wb.Casualties)}},
	)

	if len(wb.Matches) == 0 {
		printEmpty(out, "No matches recorded.")
		return nil
	}
	rows := make([][]string, 0, len(wb.Matches))
	for _, m := range wb.Matches {
		side := m.PerspectiveOf(name)
		result := "Loss"
		if side.Won {
			result = "Win"
		}
		rows = append(rows, []string{
			itoa(m.Round), side.Opponent, result,
			number(side.VictoryPoints), number(side.Glory), number(side.Casualties),
		})
	}
	printTable(out, []string{"Round", "Opponent", "Result", "VP", "Glory", "Casualties"}, rows)
	return nil
}

func setWarbandStats(cmd *cobra.Command, args []string, svc *services.CampaignService) error {
	name, err := warbandName(args[0])
	if err != nil {
		return err
	}
	wb, err := svc.Warband(name)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	vp, glory, casualties := wb.VictoryPoints, wb.Glory, wb.Casualties
	for flag, target := range map[string]*int{"vp": &vp, "glory": &glory, "casualties": &casualties} {
		if !flags.Changed(flag) {
			continue
		}
		v, err := flags.GetInt(flag)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%w: --%s cannot be negative", services.ErrInvalidInput, flag)
		}
		*target = v
	}

	if err := svc.OverrideStats(name, vp, glory, casualties); err != nil {
		return err
	}
	printSuccess(cmd.OutOrStdout(), "Stats for %q saved (VP %s, glory %s, casualties %s)",
		name, number(vp), number(glory), number(casualties))
	printWarning(cmd.OutOrStdout(), "Manual stats are replaced by the next recalculation.")
	return nil
}
