// Package health provides health checking functionality for the kits report API.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/kits-report-api/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

const (
	// maxDataAge is the age past which the snapshot is unusable
	maxDataAge = 24 * time.Hour
	// staleRefreshes is how many missed refreshes degrade the service
	staleRefreshes = 3
)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore       interfaces.DataStore
	refreshInterval time.Duration
}

// NewHealthChecker creates a new health checker with injected dependencies
func NewHealthChecker(dataStore interfaces.DataStore, refreshInterval time.Duration) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		dataStore:       dataStore,
		refreshInterval: refreshInterval,
	}
}

// HealthCheck returns HTTP-specific health data.
// Used by /health HTTP endpoint
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	records := h.dataStore.GetRecords()
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()

	dataAge := time.Since(lastUpdate)

	switch {
	case lastUpdate.IsZero() && isUpdating:
		// initial load still running
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	case len(records) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > maxDataAge:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case h.refreshInterval > 0 && dataAge > staleRefreshes*h.refreshInterval:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"records":          len(records),
		"pharmacies":       len(h.dataStore.GetPharmacies()),
		"is_updating":      isUpdating,
		"uptime_seconds":   math.Round(time.Since(h.dataStore.GetServerStartTime()).Seconds()),
		"refresh_interval": h.refreshInterval.String(),
	}
	if !lastUpdate.IsZero() {
		data["last_update"] = lastUpdate.Format(time.RFC3339)
		data["data_age_minutes"] = math.Round(dataAge.Minutes()*10) / 10
		data["next_update"] = h.NextUpdate().Format(time.RFC3339)
	}

	return status, data, httpStatus
}

// NextUpdate returns when the next scheduled reload is due
func (h *HealthCheckerImpl) NextUpdate() time.Time {
	lastUpdate := h.dataStore.GetLastUpdated()
	if lastUpdate.IsZero() || h.refreshInterval <= 0 {
		return time.Now()
	}

	next := lastUpdate.Add(h.refreshInterval)
	for next.Before(time.Now()) {
		next = next.Add(h.refreshInterval)
	}
	return next
}
