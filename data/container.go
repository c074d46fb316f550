// Package data provides the thread-safe in-memory snapshot of dispensing
// records. Snapshots are swapped atomically so readers never see a partial
// reload.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/kits-report-api/interfaces"
	"github.com/giygas/kits-report-api/kitsparser/entities"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// snapshot is everything produced by one successful reload
type snapshot struct {
	records     []entities.Record
	pharmacies  []string
	report      *interfaces.DataQualityReport
	lastUpdated time.Time
}

// DataContainer holds the current snapshot behind an atomic pointer
type DataContainer struct {
	current         atomic.Pointer[snapshot]
	updating        atomic.Bool
	serverStartTime atomic.Pointer[time.Time]
}

// NewDataContainer creates a container with an empty snapshot
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.current.Store(&snapshot{
		records:    []entities.Record{},
		pharmacies: []string{},
		report:     &interfaces.DataQualityReport{Pharmacies: []string{}},
	})
	now := time.Now()
	dc.serverStartTime.Store(&now)
	return dc
}

func (dc *DataContainer) load() *snapshot {
	if s := dc.current.Load(); s != nil {
		return s
	}
	return &snapshot{}
}

// GetRecords returns the full record set. Callers must not modify it.
func (dc *DataContainer) GetRecords() []entities.Record {
	return dc.load().records
}

// GetPharmacies returns the sorted distinct pharmacy names
func (dc *DataContainer) GetPharmacies() []string {
	return dc.load().pharmacies
}

// GetQualityReport returns the data quality report of the current snapshot
func (dc *DataContainer) GetQualityReport() *interfaces.DataQualityReport {
	return dc.load().report
}

// GetLastUpdated returns the time of the last successful reload
func (dc *DataContainer) GetLastUpdated() time.Time {
	return dc.load().lastUpdated
}

// IsUpdating returns true if a reload is in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(&startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if t := dc.serverStartTime.Load(); t != nil {
		return *t
	}
	return time.Time{}
}

// UpdateData atomically replaces the snapshot
func (dc *DataContainer) UpdateData(records []entities.Record, pharmacies []string, report *interfaces.DataQualityReport) {
	if records == nil {
		records = []entities.Record{}
	}
	if pharmacies == nil {
		pharmacies = []string{}
	}
	if report == nil {
		report = &interfaces.DataQualityReport{Pharmacies: pharmacies}
	}

	dc.current.Store(&snapshot{
		records:     records,
		pharmacies:  pharmacies,
		report:      report,
		lastUpdated: time.Now(),
	})
}

// BeginUpdate marks the start of a reload.
// Returns false if another reload is in progress.
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a reload
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
