package kitsparser

import (
	"testing"
	"time"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"3,5", 3.5},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"12", 12},
		{" 7 ", 7},
		{"-2", -2},
		{"1.5", 1.5},
		{"1,234,5", 0},
		{"Inf", 0},
		{"NaN", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseNumber(tt.input); got != tt.expected {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeString(t *testing.T) {
	if got := NormalizeString("  Central \t"); got != "Central" {
		t.Errorf("NormalizeString = %q", got)
	}
	if got := NormalizeString(""); got != "" {
		t.Errorf("NormalizeString(\"\") = %q", got)
	}
}

func TestParseDayDate(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  time.Time
	}{
		{"15/06/2024", true, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{" 5/1/2025 ", true, time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{"29/02/2024", true, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{"31/02/2024", false, time.Time{}},
		{"29/02/2023", false, time.Time{}},
		{"00/01/2024", false, time.Time{}},
		{"10/13/2024", false, time.Time{}},
		{"aa/bb/cccc", false, time.Time{}},
		{"2024-06-15", false, time.Time{}},
		{"15/06", false, time.Time{}},
		{"15/06/2024/1", false, time.Time{}},
		{"05/01/25", false, time.Time{}},
		{"05/01/0025", false, time.Time{}},
		{"", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDayDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDayDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDayDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
		want  time.Time
	}{
		{"15/06/2024 13:45:10", true, time.Date(2024, time.June, 15, 13, 45, 10, 0, time.UTC)},
		{"15/06/2024", true, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{"15/06/2024 13:45", true, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{"15/06/2024 aa:bb:cc", true, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)},
		{"31/02/2024 10:00:00", false, time.Time{}},
		{"05/01/25 10:00:00", false, time.Time{}},
		{"", false, time.Time{}},
		{"garbage", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDateKeyRoundTrip(t *testing.T) {
	d, ok := ParseDayDate("05/01/2025")
	if !ok {
		t.Fatal("Expected valid date")
	}
	if got := ToDateKey(d); got != "2025-01-05" {
		t.Errorf("ToDateKey = %q, want 2025-01-05", got)
	}
	if got := ToDisplayDate(d); got != "05/01/2025" {
		t.Errorf("ToDisplayDate = %q, want 05/01/2025", got)
	}
	if got := DateKeyToDisplay(ToDateKey(d)); got != "05/01/2025" {
		t.Errorf("DateKeyToDisplay = %q, want 05/01/2025", got)
	}
}

func TestZeroTimeFormatting(t *testing.T) {
	if got := ToDateKey(time.Time{}); got != "" {
		t.Errorf("ToDateKey(zero) = %q", got)
	}
	if got := ToDisplayDate(time.Time{}); got != "" {
		t.Errorf("ToDisplayDate(zero) = %q", got)
	}
	if got := ToDisplayTimestamp(time.Time{}); got != "" {
		t.Errorf("ToDisplayTimestamp(zero) = %q", got)
	}
}

func TestToDisplayTimestamp(t *testing.T) {
	ts := time.Date(2024, time.March, 2, 8, 5, 9, 0, time.UTC)
	if got := ToDisplayTimestamp(ts); got != "02/03/2024 08:05:09" {
		t.Errorf("ToDisplayTimestamp = %q", got)
	}
}
