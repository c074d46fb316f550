package kitsparser

import (
	"time"

	"github.com/giygas/kits-report-api/kitsparser/entities"
)

// Sheet column names
const (
	ColumnDate          = "Fecha"
	ColumnPharmacy      = "Farmacia"
	ColumnShift         = "Turno"
	ColumnKind          = "Tipo"
	ColumnName          = "Nombre"
	ColumnOperatingRoom = "Quirófano Nro"
	ColumnKitCode       = "Codigo_kit"
	ColumnKitName       = "Nombre_kit"
	ColumnQuantity      = "Cantidad"
	ColumnNotes         = "Observaciones"
	ColumnUser          = "Usuario"
	ColumnTimestamp     = "Timestamp"
)

// ExpectedColumns lists every column the record mapping reads
var ExpectedColumns = []string{
	ColumnDate, ColumnPharmacy, ColumnShift, ColumnKind, ColumnName, ColumnOperatingRoom,
	ColumnKitCode, ColumnKitName, ColumnQuantity, ColumnNotes, ColumnUser, ColumnTimestamp,
}

// BuildStats counts what happened to the body rows during BuildRecords
type BuildStats struct {
	RowsRead               int
	Kept                   int
	DiscardedNoDate        int
	DiscardedNoPharmacy    int
	MissingExpectedColumns []string
}

// BuildRecords maps body rows to records using the header names.
// Rows without a valid surgery date or without a pharmacy are dropped;
// the remaining rows keep their input order.
func BuildRecords(header []string, rows [][]string) []entities.Record {
	records, _ := BuildRecordsWithStats(header, rows)
	return records
}

// BuildRecordsWithStats is BuildRecords plus discard counters
func BuildRecordsWithStats(header []string, rows [][]string) ([]entities.Record, BuildStats) {
	names := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		names[i] = NormalizeString(h)
		present[names[i]] = true
	}

	stats := BuildStats{RowsRead: len(rows)}
	for _, col := range ExpectedColumns {
		if !present[col] {
			stats.MissingExpectedColumns = append(stats.MissingExpectedColumns, col)
		}
	}

	records := make([]entities.Record, 0, len(rows))
	for _, row := range rows {
		raw := make(map[string]string, len(names))
		for j, name := range names {
			if j < len(row) {
				raw[name] = row[j]
			} else {
				raw[name] = ""
			}
		}

		record := recordFromRaw(raw)
		switch {
		case record.SurgeryDateKey == "":
			stats.DiscardedNoDate++
			continue
		case record.Pharmacy == "":
			stats.DiscardedNoPharmacy++
			continue
		}
		records = append(records, record)
	}

	stats.Kept = len(records)
	return records, stats
}

// recordFromRaw is the total mapping from header-named cells to a record
func recordFromRaw(raw map[string]string) entities.Record {
	dateRaw := NormalizeString(raw[ColumnDate])
	tsRaw := NormalizeString(raw[ColumnTimestamp])

	record := entities.Record{
		SurgeryDateRaw:  dateRaw,
		Pharmacy:        NormalizeString(raw[ColumnPharmacy]),
		Shift:           NormalizeString(raw[ColumnShift]),
		Kind:            NormalizeString(raw[ColumnKind]),
		PersonName:      NormalizeString(raw[ColumnName]),
		OperatingRoomNo: NormalizeString(raw[ColumnOperatingRoom]),
		KitCode:         NormalizeString(raw[ColumnKitCode]),
		KitName:         NormalizeString(raw[ColumnKitName]),
		Quantity:        ParseNumber(raw[ColumnQuantity]),
		Notes:           NormalizeString(raw[ColumnNotes]),
		User:            NormalizeString(raw[ColumnUser]),
		TimestampRaw:    tsRaw,
	}

	if d, ok := ParseDayDate(dateRaw); ok {
		record.SurgeryDate = timePtr(d)
		record.SurgeryDateKey = ToDateKey(d)
	}
	if ts, ok := ParseTimestamp(tsRaw); ok {
		record.Timestamp = timePtr(ts)
	}

	return record
}

func timePtr(t time.Time) *time.Time {
	return &t
}
