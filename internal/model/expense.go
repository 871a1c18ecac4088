package model

import (
	"fmt"
	"strings"
	"time"
)

// MaxNotesLength is the backend's limit on the notes field.
const MaxNotesLength = 500

// Expense represents a single expense record as stored by the backend. The
// client never fabricates or mutates one locally; every change is a round
// trip and the server's copy replaces ours.
type Expense struct {
	ID       string  `json:"_id"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     Date    `json:"date"`
	Notes    string  `json:"notes,omitempty"`
}

// Validate checks the invariants the backend enforces on a record.
func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return fmt.Errorf("amount must be greater than 0, got %.2f", e.Amount)
	}
	if !ValidCategory(e.Category) {
		return fmt.Errorf("unknown category: %s", e.Category)
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if len(e.Notes) > MaxNotesLength {
		return fmt.Errorf("notes cannot exceed %d characters", MaxNotesLength)
	}
	return nil
}

// Date is a calendar date with no time component. The backend accepts
// 2006-01-02 strings and may respond with full RFC 3339 timestamps, so
// unmarshaling tolerates both.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a 2006-01-02 string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// String formats the date as 2006-01-02.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MarshalJSON encodes the date as a 2006-01-02 string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes either a bare date or a full timestamp, keeping only
// the calendar-date part.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05.000Z0700"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return nil
		}
	}
	return fmt.Errorf("unrecognized date format: %q", s)
}
