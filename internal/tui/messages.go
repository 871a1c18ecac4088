package tui

import (
	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/model"
)

// Data loading messages.
type expensesLoadedMsg struct {
	err      error
	expenses []model.Expense
	filter   api.Filter
}

// Mutation results.
type expenseDeletedMsg struct {
	err error
	id  string
}

// Toast lifecycle.
type toastExpiredMsg struct {
	id string
}
