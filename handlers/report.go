package handlers

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"campaign-tracker/config"
	"campaign-tracker/middleware"
	"campaign-tracker/services"
	"campaign-tracker/utils"
)

// openReport is swapped out in tests.
var openReport = utils.OpenInViewer

// SetupReportCommands registers the HTML report and the database export.
func SetupReportCommands(root *cobra.Command, cfg *config.Config, log *zap.Logger) {
	report := &cobra.Command{
		Use:   "report [path]",
		Short: "Write the campaign report as HTML and open it",
		Args:  cobra.MaximumNArgs(1),
		RunE: middleware.ReadOnly(func(cmd *cobra.Command, args []string, svc *services.CampaignService) error {
			path := cfg.ReportFile
			if len(args) == 1 {
				path = args[0]
			}
			title, _ := cmd.Flags().GetString("title")
			if err := services.NewReportService(title).Export(path, svc.Campaign); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Report written to %s", path)

			noOpen, _ := cmd.Flags().GetBool("no-open")
			if !cfg.OpenReport || noOpen {
				return nil
			}
			if err := openReport(path); err != nil {
				log.Warn("failed to open report", zap.String("path", path), zap.Error(err))
				printWarning(cmd.ErrOrStderr(), "Could not open the report automatically: %v", err)
			}
			return nil
		}),
	}
	report.Flags().Bool("no-open", false, "do not open the report after writing it")
	report.Flags().String("title", services.DefaultReportTitle, "report title")
	root.AddCommand(report)

	root.AddCommand(&cobra.Command{
		Use:   "export-db [path]",
		Short: "Export warbands and matches into a SQLite database",
		Args:  cobra.MaximumNArgs(1),
		RunE: middleware.ReadOnly(func(cmd *cobra.Command, args []string, svc *services.CampaignService) error {
			path := cfg.ExportDB
			if len(args) == 1 {
				path = args[0]
			}
			exporter, err := services.NewExportService(path, log)
			if err != nil {
				return err
			}
			defer exporter.Close()

			result, err := exporter.Export(cmd.Context(), svc.Campaign)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Exported %s warband(s) and %s match(es) to %s",
				number(result.Warbands), number(result.Matches), path)
			return nil
		}),
	})
}
