package api

import "net/url"

// Filter constrains which expense records the backend returns. Zero-value
// fields are left out of the query entirely; the zero Filter is the initial
// unfiltered load, so clearing filters and fetching with a zero Filter
// reproduces it exactly.
type Filter struct {
	Search    string
	Category  string
	StartDate string
	EndDate   string
}

// IsZero reports whether no filter fields are set.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Category == "" && f.StartDate == "" && f.EndDate == ""
}

// Values encodes the non-empty fields as query parameters.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.StartDate != "" {
		v.Set("startDate", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("endDate", f.EndDate)
	}
	return v
}
