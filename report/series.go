package report

import (
	"slices"

	"github.com/giygas/kits-report-api/kitsparser"
)

// ValueKind selects which pivot value feeds a chart series
type ValueKind string

const (
	ValueCount ValueKind = "count"
	ValueUnits ValueKind = "units"
)

// Series is one line of the chart
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ChartSeries holds the x axis labels and one aligned series per pharmacy
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Series []Series  `json:"series"`
	Value  ValueKind `json:"value"`
}

// ToChartSeries builds record count series from a pivot
func ToChartSeries(pivot []PivotCell) ChartSeries {
	return ToChartSeriesBy(pivot, ValueCount)
}

// ToChartSeriesBy builds dense series aligned on the sorted date keys.
// Missing (date, pharmacy) pairs become 0.
func ToChartSeriesBy(pivot []PivotCell, kind ValueKind) ChartSeries {
	dateSet := make(map[string]struct{})
	pharmacySet := make(map[string]struct{})
	lookup := make(map[pivotKey]PivotCell, len(pivot))
	for _, cell := range pivot {
		dateSet[cell.DateKey] = struct{}{}
		pharmacySet[cell.Pharmacy] = struct{}{}
		lookup[pivotKey{cell.DateKey, cell.Pharmacy}] = cell
	}

	dates := sortedKeys(dateSet)
	pharmacies := sortedKeys(pharmacySet)

	chart := ChartSeries{
		Labels: make([]string, len(dates)),
		Series: make([]Series, 0, len(pharmacies)),
		Value:  kind,
	}
	for i, d := range dates {
		chart.Labels[i] = kitsparser.DateKeyToDisplay(d)
	}

	for _, p := range pharmacies {
		values := make([]float64, len(dates))
		for i, d := range dates {
			cell, ok := lookup[pivotKey{d, p}]
			if !ok {
				continue
			}
			if kind == ValueUnits {
				values[i] = cell.UnitSum
			} else {
				values[i] = float64(cell.Count)
			}
		}
		chart.Series = append(chart.Series, Series{Name: p, Values: values})
	}

	return chart
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
