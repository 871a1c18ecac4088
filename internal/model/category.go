package model

// Category identifies one of the fixed expense categories understood by the
// backend. The set is static; users cannot add to it.
type Category struct {
	Value string
	Label string
	Color string
}

// Categories is the fixed category set in display order. Breakdown output and
// selector UIs both follow this order.
var Categories = []Category{
	{Value: "food", Label: "Food", Color: "#ef4444"},
	{Value: "transportation", Label: "Transportation", Color: "#3b82f6"},
	{Value: "entertainment", Label: "Entertainment", Color: "#10b981"},
	{Value: "utilities", Label: "Utilities", Color: "#f59e0b"},
	{Value: "healthcare", Label: "Healthcare", Color: "#8b5cf6"},
	{Value: "shopping", Label: "Shopping", Color: "#ec4899"},
	{Value: "education", Label: "Education", Color: "#06b6d4"},
	{Value: "travel", Label: "Travel", Color: "#f97316"},
	{Value: "other", Label: "Other", Color: "#64748b"},
}

// DefaultCategory is used when no category is chosen.
const DefaultCategory = "other"

// CategoryByValue returns the category for a backend value. Unknown values
// map to the trailing "other" category rather than failing.
func CategoryByValue(value string) Category {
	for _, c := range Categories {
		if c.Value == value {
			return c
		}
	}
	return Categories[len(Categories)-1]
}

// ValidCategory reports whether value names a category in the fixed set.
func ValidCategory(value string) bool {
	for _, c := range Categories {
		if c.Value == value {
			return true
		}
	}
	return false
}

// CategoryValues returns the backend values in declaration order.
func CategoryValues() []string {
	values := make([]string, len(Categories))
	for i, c := range Categories {
		values[i] = c.Value
	}
	return values
}

// MonthNames maps time.Month-1 to the display name used in dashboard headers.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}
