package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/toast"
)

// fetchExpenses loads expenses matching the filter. Responses are applied in
// arrival order; when fetches overlap, the last one to resolve wins.
func (m Model) fetchExpenses(filter api.Filter) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		expenses, err := client.ListExpenses(ctx, filter)
		return expensesLoadedMsg{expenses: expenses, filter: filter, err: err}
	}
}

// deleteExpense removes one expense on the backend.
func (m Model) deleteExpense(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := client.DeleteExpense(ctx, id)
		return expenseDeletedMsg{id: id, err: err}
	}
}

// notify queues a toast and schedules its expiry tick.
func (m *Model) notify(message string, severity toast.Severity) tea.Cmd {
	id := m.toasts.Add(message, severity)
	return tea.Tick(toast.DefaultTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
