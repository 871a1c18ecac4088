// Package forms validates user input before it is sent to the backend.
// Validation runs on submit, not per keystroke; editing a field clears only
// that field's error.
package forms

import (
	"fmt"
	"strconv"

	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/model"
)

// Errors maps field names to validation messages. Submission is blocked
// while any entry is non-empty.
type Errors map[string]string

// Valid reports whether no field has an error.
func (e Errors) Valid() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Clear removes the error for one field, leaving the rest intact.
func (e Errors) Clear(field string) {
	delete(e, field)
}

// ExpenseInput is the raw expense form state. Amount stays a string until
// validation so "abc" fails cleanly instead of silently becoming zero.
type ExpenseInput struct {
	Amount   string
	Category string
	Date     string
	Notes    string
}

// NewExpenseInput returns a form with the default category preselected.
func NewExpenseInput() ExpenseInput {
	return ExpenseInput{Category: model.DefaultCategory}
}

// ExpenseInputFrom pre-fills the form from an existing record, for edits.
func ExpenseInputFrom(e model.Expense) ExpenseInput {
	return ExpenseInput{
		Amount:   strconv.FormatFloat(e.Amount, 'f', -1, 64),
		Category: e.Category,
		Date:     e.Date.String(),
		Notes:    e.Notes,
	}
}

// Validate checks every field and returns the full field-to-message mapping.
func (in ExpenseInput) Validate() Errors {
	errs := Errors{}

	amount, err := strconv.ParseFloat(in.Amount, 64)
	if in.Amount == "" || err != nil || amount <= 0 {
		errs["amount"] = "Amount must be greater than 0"
	}

	if in.Category == "" {
		errs["category"] = "Category is required"
	} else if !model.ValidCategory(in.Category) {
		errs["category"] = fmt.Sprintf("Unknown category: %s", in.Category)
	}

	if in.Date == "" {
		errs["date"] = "Date is required"
	} else if _, err := model.ParseDate(in.Date); err != nil {
		errs["date"] = "Date must be in YYYY-MM-DD format"
	}

	if len(in.Notes) > model.MaxNotesLength {
		errs["notes"] = fmt.Sprintf("Notes cannot exceed %d characters", model.MaxNotesLength)
	}

	return errs
}

// Payload converts a validated form into the wire payload. Call Validate
// first; Payload panics on an unparsable amount.
func (in ExpenseInput) Payload() api.ExpensePayload {
	amount, err := strconv.ParseFloat(in.Amount, 64)
	if err != nil {
		panic(fmt.Sprintf("forms: Payload called on unvalidated input: %v", err))
	}
	return api.ExpensePayload{
		Amount:   amount,
		Category: in.Category,
		Date:     in.Date,
		Notes:    in.Notes,
	}
}
