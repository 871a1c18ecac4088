// Package stats computes dashboard aggregates from a fetched expense list.
// Everything here is a single pass over in-memory records; nothing is cached
// across month windows.
package stats

import (
	"sort"
	"time"

	"github.com/spentcli/spent/internal/model"
)

// RecentLimit caps the recency-ranked subset shown on the dashboard.
const RecentLimit = 5

// CategoryBreakdown aggregates amount and count for one category.
type CategoryBreakdown struct {
	Category string
	Value    string
	Amount   float64
	Count    int
}

// Dashboard holds the derived stats for one month window.
type Dashboard struct {
	Month          string
	Breakdown      []CategoryBreakdown
	Recent         []model.Expense
	TotalExpenses  float64
	AverageExpense float64
	ExpenseCount   int
	Year           int
}

// MonthWindow returns the inclusive [first day, last day] range of a
// calendar month, for the backend's startDate/endDate filters.
func MonthWindow(year int, month time.Month) (model.Date, model.Date) {
	first := model.NewDate(year, month, 1)
	last := model.Date{Time: first.AddDate(0, 1, -1)}
	return first, last
}

// Compute derives dashboard stats from expenses already scoped to the given
// month window. An empty list is a valid zero state, not an error.
func Compute(expenses []model.Expense, year int, month time.Month) *Dashboard {
	d := &Dashboard{
		Month:        model.MonthNames[int(month)-1],
		Year:         year,
		ExpenseCount: len(expenses),
	}

	for _, e := range expenses {
		d.TotalExpenses += e.Amount
	}
	if d.ExpenseCount > 0 {
		d.AverageExpense = d.TotalExpenses / float64(d.ExpenseCount)
	}

	// Breakdown follows the fixed category declaration order and only emits
	// categories that were actually spent in.
	for _, cat := range model.Categories {
		var amount float64
		var count int
		for _, e := range expenses {
			if e.Category == cat.Value {
				amount += e.Amount
				count++
			}
		}
		if amount > 0 {
			d.Breakdown = append(d.Breakdown, CategoryBreakdown{
				Category: cat.Label,
				Value:    cat.Value,
				Amount:   amount,
				Count:    count,
			})
		}
	}

	d.Recent = Recent(expenses, RecentLimit)

	return d
}

// Recent returns up to limit expenses sorted by date descending. The sort is
// stable, so same-day records keep their fetched order.
func Recent(expenses []model.Expense, limit int) []model.Expense {
	sorted := make([]model.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date.Time)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Total sums all amounts regardless of category.
func Total(expenses []model.Expense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}
