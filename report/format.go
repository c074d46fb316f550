package report

import (
	"fmt"

	"github.com/giygas/kits-report-api/kitsparser"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DisplayLocale is the locale used for KPI strings
var DisplayLocale = language.MustParse("es-PY")

// SummaryDisplay holds the KPI strings shown by the dashboard
type SummaryDisplay struct {
	RecordCount           string `json:"recordCount"`
	UnitTotal             string `json:"unitTotal"`
	DistinctPharmacyCount string `json:"distinctPharmacyCount"`
	RecordsPerDayAverage  string `json:"recordsPerDayAverage"`
	DateRange             string `json:"dateRange"`
}

// FormatSummary renders the KPIs with locale grouping for counts and units
// and two fixed decimals for the daily average
func FormatSummary(stats SummaryStats) SummaryDisplay {
	p := message.NewPrinter(DisplayLocale)

	display := SummaryDisplay{
		RecordCount:           p.Sprintf("%d", stats.RecordCount),
		UnitTotal:             p.Sprint(number.Decimal(stats.UnitTotal)),
		DistinctPharmacyCount: p.Sprintf("%d", stats.DistinctPharmacyCount),
		RecordsPerDayAverage:  fmt.Sprintf("%.2f", stats.RecordsPerDayAverage),
	}
	if stats.MinDate != nil && stats.MaxDate != nil {
		display.DateRange = kitsparser.ToDisplayDate(*stats.MinDate) + " - " + kitsparser.ToDisplayDate(*stats.MaxDate)
	}
	return display
}
