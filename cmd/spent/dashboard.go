package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/cli"
	"github.com/spentcli/spent/internal/model"
	"github.com/spentcli/spent/internal/stats"
)

func dashboardCmd() *cobra.Command {
	var month, year int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show spending stats for a month",
		Long:  `Fetch one calendar month of expenses and show totals, the per-category breakdown, and the most recent entries.`,
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

			// The backend does the date windowing; aggregation happens here.
			first, last := stats.MonthWindow(year, time.Month(month))
			expenses, err := client.ListExpenses(cmd.Context(), api.Filter{
				StartDate: first.String(),
				EndDate:   last.String(),
			})
			if err != nil {
				return fmt.Errorf("failed to load dashboard data: %w", err)
			}

			dashboard := stats.Compute(expenses, year, time.Month(month))
			renderDashboard(cmd, dashboard)
			return nil
		},
	}

	cmd.Flags().IntVarP(&month, "month", "m", 0, "month 1-12 (default: current)")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "year (default: current)")

	return cmd
}

func renderDashboard(cmd *cobra.Command, d *stats.Dashboard) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Dashboard: %s %d", d.Month, d.Year)))

	if d.ExpenseCount == 0 {
		// Valid zero state: no error, just nothing spent this month.
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf(
			"No expenses for %s %d. Add your first one with 'spent add'.", d.Month, d.Year)))
		return
	}

	summary := lipgloss.JoinHorizontal(lipgloss.Top,
		cli.RenderBox("Total Spent", cli.AmountStyle.Render(fmt.Sprintf("%.2f", d.TotalExpenses))),
		cli.RenderBox("Average", fmt.Sprintf("%.2f", d.AverageExpense)),
		cli.RenderBox("Transactions", fmt.Sprintf("%d", d.ExpenseCount)),
		cli.RenderBox("Categories", fmt.Sprintf("%d", len(d.Breakdown))),
	)
	fmt.Fprintln(out, summary)

	fmt.Fprintln(out, cli.BoldStyle.Render("Category Breakdown"))
	for _, item := range d.Breakdown {
		bar := breakdownBar(item.Amount, d.TotalExpenses, 24)
		plural := "s"
		if item.Count == 1 {
			plural = ""
		}
		fmt.Fprintf(out, "  %-16s %s %8.2f  %s\n",
			cli.CategoryStyle(model.CategoryByValue(item.Value).Color).Render(item.Category),
			bar,
			item.Amount,
			cli.SubtleStyle.Render(fmt.Sprintf("%d transaction%s", item.Count, plural)))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.BoldStyle.Render("Recent Expenses"))
	for _, e := range d.Recent {
		notes := e.Notes
		if notes == "" {
			notes = "No description"
		}
		fmt.Fprintf(out, "  %s  %-16s %8.2f  %s\n",
			e.Date.String(),
			model.CategoryByValue(e.Category).Label,
			e.Amount,
			cli.SubtleStyle.Render(notes))
	}
}

// breakdownBar renders a proportional bar for one category's share.
func breakdownBar(amount, total float64, width int) string {
	if total <= 0 {
		return strings.Repeat(" ", width)
	}
	filled := int(amount / total * float64(width))
	if filled < 1 {
		filled = 1
	}
	if filled > width {
		filled = width
	}
	return cli.SuccessStyle.Render(strings.Repeat("█", filled)) +
		cli.SubtleStyle.Render(strings.Repeat("░", width-filled))
}
