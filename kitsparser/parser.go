package kitsparser

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/giygas/kits-report-api/interfaces"
	"github.com/giygas/kits-report-api/kitsparser/entities"
	"github.com/giygas/kits-report-api/logging"
	"github.com/giygas/kits-report-api/metrics"
)

// Compile-time check to ensure KitsParser implements Parser interface
var _ interfaces.Parser = (*KitsParser)(nil)

// KitsParser fetches the sheet over HTTP and builds records from it
type KitsParser struct {
	url    string
	client *http.Client
}

// NewKitsParser creates a parser for the given CSV export URL
func NewKitsParser(url string, timeout time.Duration) *KitsParser {
	return &KitsParser{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// ParseRecords downloads the sheet once and returns its valid records.
// Only transport failures are returned as errors.
func (p *KitsParser) ParseRecords(ctx context.Context) ([]entities.Record, error) {
	text, err := fetchCSV(ctx, p.client, p.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}

	metrics.PayloadBytes.Set(float64(len(text)))
	return ParseRecordsText(text), nil
}

// ParseRecordsText tokenizes CSV text and builds records from it.
// The first row is the header; no rows gives an empty record set.
func ParseRecordsText(text string) []entities.Record {
	rows := ParseCSV(text)
	if len(rows) == 0 {
		logging.Error("CSV is empty or not accessible")
		return []entities.Record{}
	}

	records, stats := BuildRecordsWithStats(rows[0], rows[1:])

	if len(stats.MissingExpectedColumns) > 0 {
		logging.Warn("Sheet is missing expected columns", "columns", stats.MissingExpectedColumns)
	}
	if stats.DiscardedNoDate > 0 || stats.DiscardedNoPharmacy > 0 {
		logging.Info("Skipped incomplete rows",
			"rows_read", stats.RowsRead,
			"without_date", stats.DiscardedNoDate,
			"without_pharmacy", stats.DiscardedNoPharmacy,
		)
	}

	metrics.RowsDiscarded.WithLabelValues("missing_date").Add(float64(stats.DiscardedNoDate))
	metrics.RowsDiscarded.WithLabelValues("missing_pharmacy").Add(float64(stats.DiscardedNoPharmacy))
	logging.Debug(fmt.Sprintf("%d of %d rows parsed into records", stats.Kept, stats.RowsRead))

	return records
}
