package report

import (
	"slices"
	"time"

	"github.com/giygas/kits-report-api/kitsparser/entities"
)

// SummaryStats are the KPIs of a record set
type SummaryStats struct {
	RecordCount           int        `json:"recordCount"`
	UnitTotal             float64    `json:"unitTotal"`
	DistinctPharmacyCount int        `json:"distinctPharmacyCount"`
	MinDate               *time.Time `json:"minDate"`
	MaxDate               *time.Time `json:"maxDate"`
	RecordsPerDayAverage  float64    `json:"recordsPerDayAverage"`
}

// PivotCell aggregates the records of one (date, pharmacy) pair
type PivotCell struct {
	DateKey  string  `json:"dateKey"`
	Pharmacy string  `json:"pharmacy"`
	Count    int     `json:"count"`
	UnitSum  float64 `json:"unitSum"`
}

// Summarize computes the KPIs of records
func Summarize(records []entities.Record) SummaryStats {
	stats := SummaryStats{RecordCount: len(records)}

	pharmacies := make(map[string]struct{})
	days := make(map[string]struct{})
	for _, r := range records {
		stats.UnitTotal += r.Quantity
		pharmacies[r.Pharmacy] = struct{}{}
		days[r.SurgeryDateKey] = struct{}{}

		if r.SurgeryDate == nil || r.SurgeryDate.IsZero() {
			continue
		}
		if stats.MinDate == nil || r.SurgeryDate.Before(*stats.MinDate) {
			d := *r.SurgeryDate
			stats.MinDate = &d
		}
		if stats.MaxDate == nil || r.SurgeryDate.After(*stats.MaxDate) {
			d := *r.SurgeryDate
			stats.MaxDate = &d
		}
	}

	stats.DistinctPharmacyCount = len(pharmacies)
	stats.RecordsPerDayAverage = float64(stats.RecordCount) / float64(max(1, len(days)))
	return stats
}

type pivotKey struct {
	dateKey  string
	pharmacy string
}

// PivotByDayAndPharmacy groups records by (date key, pharmacy), ordered by
// date key then pharmacy
func PivotByDayAndPharmacy(records []entities.Record) []PivotCell {
	cells := make(map[pivotKey]*PivotCell)
	for _, r := range records {
		if r.SurgeryDateKey == "" || r.Pharmacy == "" {
			continue
		}
		key := pivotKey{r.SurgeryDateKey, r.Pharmacy}
		cell, ok := cells[key]
		if !ok {
			cell = &PivotCell{DateKey: r.SurgeryDateKey, Pharmacy: r.Pharmacy}
			cells[key] = cell
		}
		cell.Count++
		cell.UnitSum += r.Quantity
	}

	out := make([]PivotCell, 0, len(cells))
	for _, cell := range cells {
		out = append(out, *cell)
	}
	slices.SortFunc(out, func(a, b PivotCell) int {
		if a.DateKey != b.DateKey {
			if a.DateKey < b.DateKey {
				return -1
			}
			return 1
		}
		switch {
		case a.Pharmacy < b.Pharmacy:
			return -1
		case a.Pharmacy > b.Pharmacy:
			return 1
		}
		return 0
	})
	return out
}
