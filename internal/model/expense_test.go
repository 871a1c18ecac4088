package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		ID:       "abc123",
		Amount:   12.50,
		Category: "food",
		Date:     NewDate(2024, time.January, 15),
		Notes:    "lunch",
	}

	tests := []struct {
		mutate  func(*Expense)
		name    string
		wantErr string
	}{
		{
			name:   "valid expense",
			mutate: func(_ *Expense) {},
		},
		{
			name:    "zero amount",
			mutate:  func(e *Expense) { e.Amount = 0 },
			wantErr: "amount must be greater than 0",
		},
		{
			name:    "negative amount",
			mutate:  func(e *Expense) { e.Amount = -5 },
			wantErr: "amount must be greater than 0",
		},
		{
			name:    "unknown category",
			mutate:  func(e *Expense) { e.Category = "groceries" },
			wantErr: "unknown category",
		},
		{
			name:    "missing date",
			mutate:  func(e *Expense) { e.Date = Date{} },
			wantErr: "date is required",
		},
		{
			name:    "notes too long",
			mutate:  func(e *Expense) { e.Notes = strings.Repeat("x", MaxNotesLength+1) },
			wantErr: "notes cannot exceed 500 characters",
		},
		{
			name:   "notes at the limit",
			mutate: func(e *Expense) { e.Notes = strings.Repeat("x", MaxNotesLength) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDateUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare date",
			input: `"2024-01-15"`,
			want:  "2024-01-15",
		},
		{
			name:  "rfc3339 timestamp",
			input: `"2024-01-15T09:30:00Z"`,
			want:  "2024-01-15",
		},
		{
			name:  "timestamp with milliseconds",
			input: `"2024-01-15T09:30:00.000Z"`,
			want:  "2024-01-15",
		},
		{
			name:  "null",
			input: `null`,
			want:  "0001-01-01",
		},
		{
			name:    "garbage",
			input:   `"not-a-date"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDateMarshalJSON(t *testing.T) {
	d := NewDate(2024, time.March, 7)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-07"`, string(data))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", d.String())

	_, err = ParseDate("12/31/2024")
	assert.Error(t, err)
}

func TestExpenseJSONRoundTrip(t *testing.T) {
	raw := `{"_id":"65a1","amount":42.5,"category":"travel","date":"2024-02-01T00:00:00.000Z","notes":"train"}`

	var e Expense
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, "65a1", e.ID)
	assert.Equal(t, 42.5, e.Amount)
	assert.Equal(t, "travel", e.Category)
	assert.Equal(t, "2024-02-01", e.Date.String())
	assert.Equal(t, "train", e.Notes)
}
