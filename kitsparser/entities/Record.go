package entities

import "time"

// Record is one kit dispensing row of the published sheet.
// SurgeryDateKey is never empty and Pharmacy is never empty for records
// produced by the parser.
type Record struct {
	SurgeryDate     *time.Time `json:"surgeryDate"`
	SurgeryDateRaw  string     `json:"surgeryDateRaw"`
	SurgeryDateKey  string     `json:"surgeryDateKey"`
	Pharmacy        string     `json:"pharmacy"`
	Shift           string     `json:"shift"`
	Kind            string     `json:"kind"`
	PersonName      string     `json:"personName"`
	OperatingRoomNo string     `json:"operatingRoomNo"`
	KitCode         string     `json:"kitCode"`
	KitName         string     `json:"kitName"`
	Quantity        float64    `json:"quantity"`
	Notes           string     `json:"notes"`
	User            string     `json:"user"`
	Timestamp       *time.Time `json:"timestamp"`
	TimestampRaw    string     `json:"timestampRaw"`
}
