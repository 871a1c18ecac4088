package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/cli"
	"github.com/spentcli/spent/internal/config"
	"github.com/spentcli/spent/internal/sheets"
	"github.com/spentcli/spent/internal/stats"
)

func exportCmd() *cobra.Command {
	var month, year int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a monthly report to Google Sheets",
		Long: `Export one calendar month of expenses, with the dashboard breakdown, to a
Google Sheets spreadsheet.

Authentication uses either OAuth2 client credentials (sheets.client_id and
sheets.client_secret in the config, with an interactive browser flow on
first use) or a service account (sheets.service_account_path).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, err := openAuthenticated()
			if err != nil {
				return err
			}

			now := time.Now()
			if month == 0 {
				month = int(now.Month())
			}
			if year == 0 {
				year = now.Year()
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("month must be between 1 and 12, got %d", month)
			}

			sheetsConfig, err := sheets.LoadConfig()
			if err != nil {
				return fmt.Errorf("sheets configuration: %w", err)
			}
			if sheetsConfig.TokenFile == "" {
				dataDir, err := config.DataDir()
				if err != nil {
					return err
				}
				sheetsConfig.TokenFile = filepath.Join(dataDir, "sheets_token.json")
			}

			first, last := stats.MonthWindow(year, time.Month(month))
			expenses, err := client.ListExpenses(cmd.Context(), api.Filter{
				StartDate: first.String(),
				EndDate:   last.String(),
			})
			if err != nil {
				return fmt.Errorf("failed to load expenses: %w", err)
			}

			dashboard := stats.Compute(expenses, year, time.Month(month))

			writer, err := sheets.NewWriter(cmd.Context(), sheetsConfig, slog.Default())
			if err != nil {
				return fmt.Errorf("failed to create sheets writer: %w", err)
			}

			if err := writer.Write(cmd.Context(), dashboard, expenses); err != nil {
				return fmt.Errorf("failed to export report: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Exported %d expenses for %s %d.", len(expenses), dashboard.Month, dashboard.Year)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "month 1-12 (default: current)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "year (default: current)")

	return cmd
}
