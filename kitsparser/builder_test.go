package kitsparser

import (
	"testing"
	"time"
)

var sheetHeader = []string{
	"Fecha", "Farmacia", "Turno", "Tipo", "Nombre", "Quirófano Nro",
	"Codigo_kit", "Nombre_kit", "Cantidad", "Observaciones", "Usuario", "Timestamp",
}

func TestBuildRecordsMapsEveryColumn(t *testing.T) {
	rows := [][]string{{
		" 15/06/2024 ", " Central ", "Mañana", "Cirugía", "Ana Pérez", "3",
		"K-01", "Kit parto", "2,5", "urgente", "jdoe", "15/06/2024 09:30:00",
	}}

	records := BuildRecords(sheetHeader, rows)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.SurgeryDate == nil || !r.SurgeryDate.Equal(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected surgery date %v", r.SurgeryDate)
	}
	if r.SurgeryDateRaw != "15/06/2024" || r.SurgeryDateKey != "2024-06-15" {
		t.Errorf("Unexpected date raw/key %q %q", r.SurgeryDateRaw, r.SurgeryDateKey)
	}
	if r.Pharmacy != "Central" || r.Shift != "Mañana" || r.Kind != "Cirugía" || r.PersonName != "Ana Pérez" {
		t.Errorf("Unexpected text fields %+v", r)
	}
	if r.OperatingRoomNo != "3" || r.KitCode != "K-01" || r.KitName != "Kit parto" {
		t.Errorf("Unexpected kit fields %+v", r)
	}
	if r.Quantity != 2.5 {
		t.Errorf("Expected quantity 2.5, got %v", r.Quantity)
	}
	if r.Notes != "urgente" || r.User != "jdoe" {
		t.Errorf("Unexpected notes/user %+v", r)
	}
	if r.Timestamp == nil || r.Timestamp.Hour() != 9 || r.Timestamp.Minute() != 30 {
		t.Errorf("Unexpected timestamp %v", r.Timestamp)
	}
	if r.TimestampRaw != "15/06/2024 09:30:00" {
		t.Errorf("Unexpected timestamp raw %q", r.TimestampRaw)
	}
}

func TestBuildRecordsDiscardsInvalidRows(t *testing.T) {
	header := []string{"Fecha", "Farmacia", "Cantidad"}
	rows := [][]string{
		{"01/01/2024", "A", "1"},
		{"", "A", "1"},
		{"31/02/2024", "A", "1"},
		{"02/01/2024", "  ", "1"},
		{"03/01/2024", "B"},
		{"04/01/2024"},
	}

	records, stats := BuildRecordsWithStats(header, rows)

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].SurgeryDateKey != "2024-01-01" || records[1].SurgeryDateKey != "2024-01-03" {
		t.Errorf("Order not preserved: %s, %s", records[0].SurgeryDateKey, records[1].SurgeryDateKey)
	}
	if records[1].Quantity != 0 {
		t.Errorf("Missing trailing cell should give 0 quantity, got %v", records[1].Quantity)
	}
	if stats.RowsRead != 6 || stats.Kept != 2 || stats.DiscardedNoDate != 2 || stats.DiscardedNoPharmacy != 2 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if len(stats.MissingExpectedColumns) != len(ExpectedColumns)-3 {
		t.Errorf("Expected %d missing columns, got %v", len(ExpectedColumns)-3, stats.MissingExpectedColumns)
	}
}

func TestBuildRecordsAllValidKeepsCount(t *testing.T) {
	header := []string{" Farmacia ", "Extra", "Fecha"}
	rows := [][]string{
		{"A", "x", "01/01/2024"},
		{"B", "y", "02/01/2024", "ignored"},
	}

	records := BuildRecords(header, rows)
	if len(records) != len(rows) {
		t.Fatalf("Expected %d records, got %d", len(rows), len(records))
	}
	if records[0].Pharmacy != "A" || records[1].Pharmacy != "B" {
		t.Errorf("Header names should be trimmed before mapping: %+v", records)
	}
	if records[0].Timestamp != nil {
		t.Errorf("Missing Timestamp column should give nil timestamp")
	}
}

func TestBuildRecordsEmptyInput(t *testing.T) {
	records := BuildRecords(sheetHeader, nil)
	if records == nil || len(records) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", records)
	}
}
