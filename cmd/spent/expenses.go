package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/cli"
	"github.com/spentcli/spent/internal/forms"
	"github.com/spentcli/spent/internal/model"
	"github.com/spentcli/spent/internal/stats"
)

func listCmd() *cobra.Command {
	var filter api.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long:  `List expenses, optionally constrained by search text, category, and date range.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, err := openAuthenticated()
			if err != nil {
				return err
			}

			if filter.Category != "" && !model.ValidCategory(filter.Category) {
				return fmt.Errorf("unknown category %q (valid: %s)", filter.Category, strings.Join(model.CategoryValues(), ", "))
			}

			expenses, err := client.ListExpenses(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("failed to load expenses: %w", err)
			}

			if len(expenses) == 0 {
				if filter.IsZero() {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No expenses yet. Get started with 'spent add'."))
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("No expenses match your filters."))
				}
				return nil
			}

			renderExpenseTable(expenses)
			fmt.Println(cli.AmountStyle.Render(fmt.Sprintf("Total: %.2f", stats.Total(expenses))) +
				cli.SubtleStyle.Render(fmt.Sprintf("  (%d expenses)", len(expenses))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "free-text search")
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "", "category filter")
	cmd.Flags().StringVar(&filter.StartDate, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&filter.EndDate, "to", "", "end date (YYYY-MM-DD)")

	return cmd
}

func renderExpenseTable(expenses []model.Expense) {
	sorted := make([]model.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date.Time)
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.TableHeaderStyle.Render("ID"),
		cli.TableHeaderStyle.Render("Date"),
		cli.TableHeaderStyle.Render("Category"),
		cli.TableHeaderStyle.Render("Amount"),
		cli.TableHeaderStyle.Render("Notes"))

	for _, e := range sorted {
		cat := model.CategoryByValue(e.Category)
		notes := e.Notes
		if notes == "" {
			notes = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\n",
			cli.SubtleStyle.Render(e.ID),
			e.Date.String(),
			cli.CategoryStyle(cat.Color).Render(cat.Label),
			e.Amount,
			notes)
	}
}

// expenseFlags registers the shared add/edit form flags on cmd.
func expenseFlags(cmd *cobra.Command, in *forms.ExpenseInput) {
	cmd.Flags().StringVarP(&in.Amount, "amount", "a", in.Amount, "expense amount")
	cmd.Flags().StringVarP(&in.Category, "category", "c", in.Category, "category ("+strings.Join(model.CategoryValues(), ", ")+")")
	cmd.Flags().StringVarP(&in.Date, "date", "d", in.Date, "date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&in.Notes, "notes", "n", in.Notes, "optional notes (max 500 chars)")
}

// promptMissing fills in any form field not provided as a flag.
func promptMissing(cmd *cobra.Command, in *forms.ExpenseInput) error {
	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	var err error
	if in.Amount == "" {
		if in.Amount, err = prompter.Line("Amount"); err != nil {
			return err
		}
	}
	if in.Category == "" {
		if in.Category, err = prompter.LineDefault("Category", model.DefaultCategory); err != nil {
			return err
		}
	}
	if in.Date == "" {
		if in.Date, err = prompter.LineDefault("Date", time.Now().Format("2006-01-02")); err != nil {
			return err
		}
	}
	return nil
}

func reportFormErrors(cmd *cobra.Command, errs forms.Errors) error {
	for field, msg := range errs {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatError(fmt.Sprintf("%s: %s", field, msg)))
	}
	return fmt.Errorf("validation failed")
}

func addCmd() *cobra.Command {
	in := forms.NewExpenseInput()

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new expense",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, err := openAuthenticated()
			if err != nil {
				return err
			}

			if err := promptMissing(cmd, &in); err != nil {
				return err
			}

			if errs := in.Validate(); !errs.Valid() {
				return reportFormErrors(cmd, errs)
			}

			expense, err := client.CreateExpense(cmd.Context(), in.Payload())
			if err != nil {
				return fmt.Errorf("failed to add expense: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Expense added successfully! (%.2f on %s, id %s)",
				expense.Amount, expense.Date.String(), expense.ID)))
			return nil
		},
	}

	expenseFlags(cmd, &in)

	return cmd
}

func editCmd() *cobra.Command {
	var in forms.ExpenseInput

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing expense",
		Long: `Edit an expense by id. Fields not passed as flags keep their current
values; the server's response replaces the record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := openAuthenticated()
			if err != nil {
				return err
			}

			id := args[0]

			// There is no single-record endpoint; find the current values in
			// the unfiltered list.
			expenses, err := client.ListExpenses(cmd.Context(), api.Filter{})
			if err != nil {
				return fmt.Errorf("failed to load expenses: %w", err)
			}

			var current *model.Expense
			for i := range expenses {
				if expenses[i].ID == id {
					current = &expenses[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("no expense with id %s", id)
			}

			merged := forms.ExpenseInputFrom(*current)
			if cmd.Flags().Changed("amount") {
				merged.Amount = in.Amount
			}
			if cmd.Flags().Changed("category") {
				merged.Category = in.Category
			}
			if cmd.Flags().Changed("date") {
				merged.Date = in.Date
			}
			if cmd.Flags().Changed("notes") {
				merged.Notes = in.Notes
			}

			if errs := merged.Validate(); !errs.Valid() {
				return reportFormErrors(cmd, errs)
			}

			updated, err := client.UpdateExpense(cmd.Context(), id, merged.Payload())
			if err != nil {
				return fmt.Errorf("failed to update expense: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Expense updated successfully! (%.2f on %s)",
				updated.Amount, updated.Date.String())))
			return nil
		},
	}

	expenseFlags(cmd, &in)

	return cmd
}

func deleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := openAuthenticated()
			if err != nil {
				return err
			}

			if !yes {
				prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				confirmed, err := prompter.Confirm("Are you sure you want to delete this expense?")
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("Aborted."))
					return nil
				}
			}

			if err := client.DeleteExpense(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete expense: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Expense deleted successfully!"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")

	return cmd
}
