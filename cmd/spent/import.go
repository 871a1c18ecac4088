package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/cli"
	"github.com/spentcli/spent/internal/ofximport"
)

func importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import expenses from OFX/QFX bank files",
		Long: `Import debits from OFX or QFX (Quicken) files exported from your bank,
creating one expense per transaction.

Imported expenses land in the 'other' category with the bank's description
as notes; recategorize them afterwards with 'spent edit'.

Examples:
  # Import a single file
  spent import ~/Downloads/chase_jan_2024.qfx

  # Import everything in a directory
  spent import ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := openAuthenticated()
			if err != nil {
				return err
			}

			// Expand globs and collect all files
			var allFiles []string
			for _, pattern := range args {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					return fmt.Errorf("invalid pattern %s: %w", pattern, err)
				}
				if len(matches) == 0 {
					if _, err := os.Stat(pattern); err == nil {
						allFiles = append(allFiles, pattern)
					} else {
						slog.Warn("No files found matching pattern", "pattern", pattern)
					}
				} else {
					allFiles = append(allFiles, matches...)
				}
			}

			if len(allFiles) == 0 {
				return fmt.Errorf("no files found to import")
			}

			parser := ofximport.NewParser()
			seen := make(map[string]bool)
			var drafts []ofximport.Draft

			for _, filePath := range allFiles {
				f, err := os.Open(filePath) // #nosec G304
				if err != nil {
					slog.Error("Failed to open file", "file", filePath, "error", err)
					continue
				}

				parsed, err := parser.ParseFile(cmd.Context(), f)
				_ = f.Close()
				if err != nil {
					slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
					continue
				}

				added := 0
				for _, d := range parsed {
					if seen[d.FitID] {
						continue
					}
					seen[d.FitID] = true
					drafts = append(drafts, d)
					added++
				}

				slog.Info("Processed file",
					"file", filepath.Base(filePath),
					"drafts", len(parsed),
					"added", added,
					"duplicates", len(parsed)-added)
			}

			if len(drafts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("No importable debits found."))
				return nil
			}

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), cli.BoldStyle.Render(fmt.Sprintf("Would import %d expenses:", len(drafts))))
				for _, d := range drafts {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s  %8.2f  %s\n", d.Date.String(), d.Amount, cli.SubtleStyle.Render(d.Notes))
				}
				return nil
			}

			bar := progressbar.NewOptions(len(drafts),
				progressbar.OptionSetDescription("Importing expenses"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			imported := 0
			for _, d := range drafts {
				_, err := client.CreateExpense(cmd.Context(), api.ExpensePayload{
					Amount:   d.Amount,
					Category: d.Category,
					Date:     d.Date.String(),
					Notes:    d.Notes,
				})
				if err != nil {
					slog.Error("Failed to import expense",
						"date", d.Date.String(),
						"amount", d.Amount,
						"error", err)
					continue
				}
				imported++
				_ = bar.Add(1)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Imported %d of %d expenses.", imported, len(drafts))))
			if imported < len(drafts) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Some expenses failed to import; see the log above."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "preview import without saving")

	return cmd
}
