package forms

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spentcli/spent/internal/model"
)

func TestNewExpenseInputDefaults(t *testing.T) {
	in := NewExpenseInput()
	assert.Equal(t, model.DefaultCategory, in.Category)
	assert.Empty(t, in.Amount)
	assert.Empty(t, in.Date)
	assert.Empty(t, in.Notes)
}

func TestExpenseInputFrom(t *testing.T) {
	e := model.Expense{
		ID:       "e1",
		Amount:   12.5,
		Category: "food",
		Date:     model.NewDate(2024, time.January, 15),
		Notes:    "lunch",
	}

	in := ExpenseInputFrom(e)
	assert.Equal(t, "12.5", in.Amount)
	assert.Equal(t, "food", in.Category)
	assert.Equal(t, "2024-01-15", in.Date)
	assert.Equal(t, "lunch", in.Notes)
}

func TestExpenseInputValidate(t *testing.T) {
	valid := ExpenseInput{
		Amount:   "12.50",
		Category: "food",
		Date:     "2024-01-15",
		Notes:    "lunch",
	}

	tests := []struct {
		want   Errors
		mutate func(*ExpenseInput)
		name   string
	}{
		{
			name:   "valid input",
			mutate: func(_ *ExpenseInput) {},
			want:   Errors{},
		},
		{
			name:   "empty amount",
			mutate: func(in *ExpenseInput) { in.Amount = "" },
			want:   Errors{"amount": "Amount must be greater than 0"},
		},
		{
			name:   "non-numeric amount",
			mutate: func(in *ExpenseInput) { in.Amount = "abc" },
			want:   Errors{"amount": "Amount must be greater than 0"},
		},
		{
			name:   "zero amount",
			mutate: func(in *ExpenseInput) { in.Amount = "0" },
			want:   Errors{"amount": "Amount must be greater than 0"},
		},
		{
			name:   "negative amount",
			mutate: func(in *ExpenseInput) { in.Amount = "-3" },
			want:   Errors{"amount": "Amount must be greater than 0"},
		},
		{
			name:   "missing category",
			mutate: func(in *ExpenseInput) { in.Category = "" },
			want:   Errors{"category": "Category is required"},
		},
		{
			name:   "unknown category",
			mutate: func(in *ExpenseInput) { in.Category = "groceries" },
			want:   Errors{"category": "Unknown category: groceries"},
		},
		{
			name:   "missing date",
			mutate: func(in *ExpenseInput) { in.Date = "" },
			want:   Errors{"date": "Date is required"},
		},
		{
			name:   "malformed date",
			mutate: func(in *ExpenseInput) { in.Date = "01/15/2024" },
			want:   Errors{"date": "Date must be in YYYY-MM-DD format"},
		},
		{
			name:   "notes too long",
			mutate: func(in *ExpenseInput) { in.Notes = strings.Repeat("x", model.MaxNotesLength+1) },
			want:   Errors{"notes": "Notes cannot exceed 500 characters"},
		},
		{
			name: "multiple failures reported together",
			mutate: func(in *ExpenseInput) {
				in.Amount = ""
				in.Date = ""
			},
			want: Errors{
				"amount": "Amount must be greater than 0",
				"date":   "Date is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			errs := in.Validate()
			assert.Equal(t, tt.want, errs)
			assert.Equal(t, len(tt.want) == 0, errs.Valid())
		})
	}
}

func TestErrorsClear(t *testing.T) {
	errs := Errors{
		"amount": "Amount must be greater than 0",
		"date":   "Date is required",
	}

	errs.Clear("amount")

	assert.Equal(t, Errors{"date": "Date is required"}, errs)
	assert.False(t, errs.Valid())

	errs.Clear("date")
	assert.True(t, errs.Valid())

	// Clearing a field with no error is fine.
	errs.Clear("notes")
	assert.True(t, errs.Valid())
}

func TestExpenseInputPayload(t *testing.T) {
	in := ExpenseInput{
		Amount:   "42.75",
		Category: "travel",
		Date:     "2024-02-01",
		Notes:    "train",
	}
	require.True(t, in.Validate().Valid())

	payload := in.Payload()
	assert.Equal(t, 42.75, payload.Amount)
	assert.Equal(t, "travel", payload.Category)
	assert.Equal(t, "2024-02-01", payload.Date)
	assert.Equal(t, "train", payload.Notes)
}

func TestExpenseInputPayloadPanicsOnBadAmount(t *testing.T) {
	in := ExpenseInput{Amount: "abc", Category: "food", Date: "2024-01-01"}
	assert.Panics(t, func() { in.Payload() })
}
