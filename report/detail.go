package report

import (
	"slices"

	"github.com/giygas/kits-report-api/kitsparser"
	"github.com/giygas/kits-report-api/kitsparser/entities"
)

// DefaultDetailLimit caps the detail table
const DefaultDetailLimit = 100

// DetailRow is a record with the display strings of the audit table
type DetailRow struct {
	entities.Record
	DisplayDate      string `json:"displayDate"`
	DisplayTimestamp string `json:"displayTimestamp"`
}

// SortByTimestampDesc returns a copy ordered newest first. Records without a
// timestamp sort as the Unix epoch; ties keep their input order.
func SortByTimestampDesc(records []entities.Record) []entities.Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b entities.Record) int {
		ta, tb := timestampMillis(a), timestampMillis(b)
		switch {
		case ta > tb:
			return -1
		case ta < tb:
			return 1
		}
		return 0
	})
	return sorted
}

func timestampMillis(r entities.Record) int64 {
	if r.Timestamp == nil || r.Timestamp.IsZero() {
		return 0
	}
	return r.Timestamp.UnixMilli()
}

// DetailRows returns at most limit rows, newest first. A non-positive limit
// uses DefaultDetailLimit.
func DetailRows(records []entities.Record, limit int) []DetailRow {
	if limit <= 0 {
		limit = DefaultDetailLimit
	}

	sorted := SortByTimestampDesc(records)
	n := min(limit, len(sorted))

	rows := make([]DetailRow, n)
	for i := 0; i < n; i++ {
		r := sorted[i]
		rows[i] = DetailRow{Record: r, DisplayTimestamp: r.TimestampRaw}
		if r.SurgeryDate != nil {
			rows[i].DisplayDate = kitsparser.ToDisplayDate(*r.SurgeryDate)
		}
		if r.Timestamp != nil {
			rows[i].DisplayTimestamp = kitsparser.ToDisplayTimestamp(*r.Timestamp)
		}
	}
	return rows
}

// Pharmacies lists the distinct pharmacy names in ascending order
func Pharmacies(records []entities.Record) []string {
	set := make(map[string]struct{})
	for _, r := range records {
		if r.Pharmacy != "" {
			set[r.Pharmacy] = struct{}{}
		}
	}
	return sortedKeys(set)
}
