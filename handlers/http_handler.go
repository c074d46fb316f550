// Package handlers provides HTTP request handlers for the kits report API endpoints.
// Every endpoint reads the current snapshot through the dashboard controller, so
// a reload running concurrently never produces a partial view.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/giygas/kits-report-api/dashboard"
	"github.com/giygas/kits-report-api/interfaces"
	"github.com/giygas/kits-report-api/logging"
	"github.com/giygas/kits-report-api/report"
)

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

const (
	// maxDetailLimit caps the limit query parameter
	maxDetailLimit = 10000
	// maxPharmacyLength caps pharmacy names that are not in the snapshot
	maxPharmacyLength = 100
)

// Dashboard computes every view of the current snapshot for a filter
type Dashboard interface {
	ApplyFilter(state report.FilterState, detailLimit int) dashboard.View
}

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	dataStore     interfaces.DataStore
	validator     interfaces.DataValidator
	dashboard     Dashboard
	healthChecker interfaces.HealthChecker
	detailLimit   int
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies.
// detailLimit is the number of detail rows returned when no limit is given.
func NewHTTPHandler(dataStore interfaces.DataStore, validator interfaces.DataValidator, dash Dashboard, healthChecker interfaces.HealthChecker, detailLimit int) *HTTPHandlerImpl {
	if detailLimit <= 0 {
		detailLimit = report.DefaultDetailLimit
	}
	return &HTTPHandlerImpl{
		dataStore:     dataStore,
		validator:     validator,
		dashboard:     dash,
		healthChecker: healthChecker,
		detailLimit:   detailLimit,
	}
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status string         `json:"status"`
	Data   map[string]any `json:"data"`
}

// RespondWithJSON writes a JSON response. Last-Modified follows the snapshot.
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if h.dataStore != nil {
		if lastUpdated := h.dataStore.GetLastUpdated(); !lastUpdated.IsZero() {
			w.Header().Set("Last-Modified", lastUpdated.UTC().Format(http.TimeFormat))
		}
	}
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, message string) {
	errorResponse := map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
	}
	h.RespondWithJSON(w, code, errorResponse)
}

// parseFilter reads from, to, pharmacy and limit from the query string
func (h *HTTPHandlerImpl) parseFilter(r *http.Request) (report.FilterState, int, error) {
	query := r.URL.Query()
	from := query.Get("from")
	to := query.Get("to")
	pharmacy := query.Get("pharmacy")

	if from != "" {
		if err := h.validator.ValidateDateKey(from); err != nil {
			return report.FilterState{}, 0, fmt.Errorf("invalid from: %w", err)
		}
	}
	if to != "" {
		if err := h.validator.ValidateDateKey(to); err != nil {
			return report.FilterState{}, 0, fmt.Errorf("invalid to: %w", err)
		}
	}
	if pharmacy != "" && pharmacy != report.AllPharmacies && !slices.Contains(h.dataStore.GetPharmacies(), pharmacy) {
		// unknown names match nothing; only oversized ones are refused
		if utf8.RuneCountInString(pharmacy) > maxPharmacyLength {
			return report.FilterState{}, 0, fmt.Errorf("invalid pharmacy: longer than %d characters", maxPharmacyLength)
		}
		if err := h.validator.ValidateInput(pharmacy); err != nil {
			logging.Warn("Unusual user input", "pharmacy", pharmacy, "error", err)
		}
	}

	limit := h.detailLimit
	if raw := query.Get("limit"); raw != "" {
		n, err := h.validator.ValidateLimit(raw, maxDetailLimit)
		if err != nil {
			return report.FilterState{}, 0, err
		}
		limit = n
	}

	return report.NewFilterState(from, to, pharmacy), limit, nil
}

// view parses the filter and computes the dashboard. It writes the 400 itself
// and returns false when the query is invalid.
func (h *HTTPHandlerImpl) view(w http.ResponseWriter, r *http.Request) (dashboard.View, bool) {
	state, limit, err := h.parseFilter(r)
	if err != nil {
		logging.Warn("Unusual user input", "query", r.URL.RawQuery, "error", err)
		h.RespondWithError(w, http.StatusBadRequest, err.Error())
		return dashboard.View{}, false
	}
	return h.dashboard.ApplyFilter(state, limit), true
}

// ServeDashboard returns every view for the filter
func (h *HTTPHandlerImpl) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}
	h.RespondWithJSON(w, http.StatusOK, v)
}

// ServeSummary returns the KPIs with their localized display strings
func (h *HTTPHandlerImpl) ServeSummary(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}
	h.RespondWithJSON(w, http.StatusOK, map[string]any{
		"filter":  v.Filter,
		"summary": v.Summary,
		"display": v.Display,
	})
}

// ServePivot returns the (date, pharmacy) aggregation
func (h *HTTPHandlerImpl) ServePivot(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}
	h.RespondWithJSON(w, http.StatusOK, map[string]any{
		"filter": v.Filter,
		"cells":  v.Pivot,
	})
}

// ServeChart returns the chart series; metric selects count (default) or units
func (h *HTTPHandlerImpl) ServeChart(w http.ResponseWriter, r *http.Request) {
	metric := report.ValueKind(r.URL.Query().Get("metric"))
	if metric != "" && metric != report.ValueCount && metric != report.ValueUnits {
		h.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("metric must be %q or %q", report.ValueCount, report.ValueUnits))
		return
	}

	v, ok := h.view(w, r)
	if !ok {
		return
	}

	chart := v.Chart
	if metric == report.ValueUnits {
		chart = v.UnitsChart
	}
	h.RespondWithJSON(w, http.StatusOK, chart)
}

// ServeRecords returns the newest detail rows for the filter
func (h *HTTPHandlerImpl) ServeRecords(w http.ResponseWriter, r *http.Request) {
	v, ok := h.view(w, r)
	if !ok {
		return
	}
	h.RespondWithJSON(w, http.StatusOK, map[string]any{
		"filter":  v.Filter,
		"total":   v.MatchedCount,
		"shown":   len(v.Records),
		"records": v.Records,
	})
}

// ServePharmacies returns the pharmacy filter options
func (h *HTTPHandlerImpl) ServePharmacies(w http.ResponseWriter, r *http.Request) {
	h.RespondWithJSON(w, http.StatusOK, map[string]any{
		"all":        report.AllPharmacies,
		"pharmacies": h.dataStore.GetPharmacies(),
	})
}

// ServeQuality returns the data quality report of the last reload
func (h *HTTPHandlerImpl) ServeQuality(w http.ResponseWriter, r *http.Request) {
	lastUpdated := h.dataStore.GetLastUpdated()

	response := map[string]any{
		"report":      h.dataStore.GetQualityReport(),
		"lastUpdated": nil,
	}
	if !lastUpdated.IsZero() {
		response["lastUpdated"] = lastUpdated.Format(time.RFC3339)
	}
	h.RespondWithJSON(w, http.StatusOK, response)
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, data, httpStatus := h.healthChecker.HealthCheck()
	h.RespondWithJSON(w, httpStatus, HealthResponse{
		Status: status,
		Data:   data,
	})
}
