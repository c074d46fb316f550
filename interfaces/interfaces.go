// Package interfaces defines the core abstractions of the kits report API
// so that storage, parsing, scheduling and HTTP can be tested in isolation.
package interfaces

import (
	"context"
	"net/http"
	"time"

	"github.com/giygas/kits-report-api/kitsparser/entities"
)

// DataQualityReport summarizes soft data issues found in a loaded record set
type DataQualityReport struct {
	TotalRecords            int      `json:"totalRecords"`
	RecordsWithoutTimestamp int      `json:"recordsWithoutTimestamp"`
	RecordsWithZeroQuantity int      `json:"recordsWithZeroQuantity"`
	RecordsWithNegativeQty  int      `json:"recordsWithNegativeQuantity"`
	RecordsWithoutKitCode   int      `json:"recordsWithoutKitCode"`
	TimestampBeforeSurgery  int      `json:"timestampBeforeSurgery"`
	Pharmacies              []string `json:"pharmacies"`
	FirstDateKey            string   `json:"firstDateKey"`
	LastDateKey             string   `json:"lastDateKey"`
}

// DataStore defines the contract for the in-memory record snapshot.
// Snapshots are replaced wholesale, never mutated in place.
type DataStore interface {
	GetRecords() []entities.Record
	GetPharmacies() []string
	GetQualityReport() *DataQualityReport
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	UpdateData(records []entities.Record, pharmacies []string, report *DataQualityReport)
	BeginUpdate() bool
	EndUpdate()
}

// Parser fetches the published sheet and turns it into records
type Parser interface {
	ParseRecords(ctx context.Context) ([]entities.Record, error)
}

// Reloader refreshes the data store from the source
type Reloader interface {
	Reload(ctx context.Context) error
}

// Scheduler manages periodic reloads
type Scheduler interface {
	Start() error
	Stop()
}

// HTTPHandler defines the API endpoints
type HTTPHandler interface {
	ServeDashboard(w http.ResponseWriter, r *http.Request)
	ServeSummary(w http.ResponseWriter, r *http.Request)
	ServePivot(w http.ResponseWriter, r *http.Request)
	ServeChart(w http.ResponseWriter, r *http.Request)
	ServeRecords(w http.ResponseWriter, r *http.Request)
	ServePharmacies(w http.ResponseWriter, r *http.Request)
	ServeQuality(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker reports service health
type HealthChecker interface {
	HealthCheck() (status string, data map[string]any, httpStatus int)
}

// DataValidator validates user input and reports data quality
type DataValidator interface {
	ValidateInput(input string) error
	ValidateDateKey(input string) error
	ValidateLimit(input string, max int) (int, error)
	ReportDataQuality(records []entities.Record) *DataQualityReport
}
