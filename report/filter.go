// Package report computes the dashboard views over a record snapshot:
// filtering, summary statistics, the day x pharmacy pivot, chart series and
// the detail table. Every function is pure and leaves its input untouched.
package report

import "github.com/giygas/kits-report-api/kitsparser/entities"

// AllPharmacies selects every pharmacy in a FilterState
const AllPharmacies = "__ALL__"

// FilterState is the user selection applied to the snapshot.
// Empty date keys mean no bound.
type FilterState struct {
	FromDateKey string `json:"fromDateKey"`
	ToDateKey   string `json:"toDateKey"`
	Pharmacy    string `json:"pharmacy"`
}

// NewFilterState builds a state, mapping an empty pharmacy to AllPharmacies
func NewFilterState(from, to, pharmacy string) FilterState {
	if pharmacy == "" {
		pharmacy = AllPharmacies
	}
	return FilterState{FromDateKey: from, ToDateKey: to, Pharmacy: pharmacy}
}

// Matches reports whether a record passes the filter.
// Date keys are fixed width so string comparison orders them by date.
func (f FilterState) Matches(r entities.Record) bool {
	if f.Pharmacy != AllPharmacies && f.Pharmacy != "" && r.Pharmacy != f.Pharmacy {
		return false
	}
	if f.FromDateKey != "" && r.SurgeryDateKey < f.FromDateKey {
		return false
	}
	if f.ToDateKey != "" && r.SurgeryDateKey > f.ToDateKey {
		return false
	}
	return true
}

// Filter returns the records passing the filter in their original order
func Filter(records []entities.Record, state FilterState) []entities.Record {
	out := make([]entities.Record, 0, len(records))
	for _, r := range records {
		if state.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
