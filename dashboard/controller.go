// Package dashboard owns the dashboard state: it reloads the record snapshot
// from the sheet and recomputes every view from that snapshot on demand.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/giygas/kits-report-api/interfaces"
	"github.com/giygas/kits-report-api/logging"
	"github.com/giygas/kits-report-api/metrics"
	"github.com/giygas/kits-report-api/report"
)

// Compile-time check to ensure Controller implements Reloader
var _ interfaces.Reloader = (*Controller)(nil)

// View is everything the dashboard renders for one filter state
type View struct {
	Filter       report.FilterState    `json:"filter"`
	Summary      report.SummaryStats   `json:"summary"`
	Display      report.SummaryDisplay `json:"display"`
	Pivot        []report.PivotCell    `json:"pivot"`
	Chart        report.ChartSeries    `json:"chart"`
	UnitsChart   report.ChartSeries    `json:"unitsChart"`
	Records      []report.DetailRow    `json:"records"`
	MatchedCount int                   `json:"matchedCount"`
	Pharmacies   []string              `json:"pharmacies"`
	LastUpdated  time.Time             `json:"lastUpdated"`
}

// Controller wires the parser, the data store and the validator together
type Controller struct {
	dataStore interfaces.DataStore
	parser    interfaces.Parser
	validator interfaces.DataValidator
}

// NewController creates a controller with injected dependencies
func NewController(dataStore interfaces.DataStore, parser interfaces.Parser, validator interfaces.DataValidator) *Controller {
	return &Controller{
		dataStore: dataStore,
		parser:    parser,
		validator: validator,
	}
}

// Reload fetches the sheet once and swaps the snapshot. On failure the
// previous snapshot is kept and the error is returned; no retry is made.
func (c *Controller) Reload(ctx context.Context) error {
	if !c.dataStore.BeginUpdate() {
		logging.Info("Reload already in progress, skipping...")
		return nil
	}
	defer c.dataStore.EndUpdate()

	start := time.Now()
	logging.Info("Starting sheet reload")

	records, err := c.parser.ParseRecords(ctx)
	metrics.ReloadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ReloadTotal.WithLabelValues("error").Inc()
		logging.Error("Failed to reload sheet", "error", err)
		return fmt.Errorf("failed to reload records: %w", err)
	}

	quality := c.validator.ReportDataQuality(records)
	if quality.RecordsWithNegativeQty > 0 {
		logging.Warn("Records with negative quantity", "count", quality.RecordsWithNegativeQty)
	}
	if quality.RecordsWithoutTimestamp > 0 {
		logging.Warn("Records without a parseable timestamp", "count", quality.RecordsWithoutTimestamp)
	}

	c.dataStore.UpdateData(records, report.Pharmacies(records), quality)

	metrics.ReloadTotal.WithLabelValues("success").Inc()
	metrics.RecordsLoaded.Set(float64(len(records)))
	logging.Info("Sheet reload completed", "duration", time.Since(start).String(), "record_count", len(records))

	return nil
}

// ApplyFilter recomputes every view from the current snapshot
func (c *Controller) ApplyFilter(state report.FilterState, detailLimit int) View {
	filtered := report.Filter(c.dataStore.GetRecords(), state)
	summary := report.Summarize(filtered)
	pivot := report.PivotByDayAndPharmacy(filtered)

	return View{
		Filter:       state,
		Summary:      summary,
		Display:      report.FormatSummary(summary),
		Pivot:        pivot,
		Chart:        report.ToChartSeries(pivot),
		UnitsChart:   report.ToChartSeriesBy(pivot, report.ValueUnits),
		Records:      report.DetailRows(filtered, detailLimit),
		MatchedCount: len(filtered),
		Pharmacies:   c.dataStore.GetPharmacies(),
		LastUpdated:  c.dataStore.GetLastUpdated(),
	}
}
