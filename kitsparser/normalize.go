package kitsparser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// NormalizeString trims surrounding whitespace
func NormalizeString(s string) string {
	return strings.TrimSpace(s)
}

// ParseNumber parses a quantity that may use a decimal comma.
// Only the first comma is replaced; empty or unparseable input yields 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	n, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// leadingInt reads an optionally signed run of leading digits, ignoring
// anything after it ("07abc" is 7). ok is false when no digit is found.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseDayDate parses a "dd/mm/yyyy" calendar date.
// Dates that do not exist on the calendar (31/02/2024) are rejected, and so
// are two-digit years ("05/01/25"), which have no unambiguous century.
func ParseDayDate(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, okDay := leadingInt(parts[0])
	month, okMonth := leadingInt(parts[1])
	year, okYear := leadingInt(parts[2])
	if !okDay || !okMonth || !okYear {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || year < 100 || year > 9999 {
		return time.Time{}, false
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, false
	}
	return d, true
}

// ParseTimestamp parses "dd/mm/yyyy hh:mm:ss". The time part is optional;
// when any of its three components is not a number the result stays at
// midnight of the parsed date.
func ParseTimestamp(s string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(s), " ")
	if parts[0] == "" {
		return time.Time{}, false
	}

	base, ok := ParseDayDate(parts[0])
	if !ok {
		return time.Time{}, false
	}
	if len(parts) < 2 || parts[1] == "" {
		return base, true
	}

	clock := strings.Split(parts[1], ":")
	if len(clock) < 3 {
		return base, true
	}
	hh, okH := leadingInt(clock[0])
	mi, okM := leadingInt(clock[1])
	ss, okS := leadingInt(clock[2])
	if !okH || !okM || !okS {
		return base, true
	}

	return time.Date(base.Year(), base.Month(), base.Day(), hh, mi, ss, 0, base.Location()), true
}

// ToDateKey formats a date as "YYYY-MM-DD"; the zero time gives ""
func ToDateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ToDisplayDate formats a date as "DD/MM/YYYY"; the zero time gives ""
func ToDisplayDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%04d", t.Day(), int(t.Month()), t.Year())
}

// ToDisplayTimestamp formats a time as "DD/MM/YYYY hh:mm:ss"; the zero time gives ""
func ToDisplayTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %02d:%02d:%02d", ToDisplayDate(t), t.Hour(), t.Minute(), t.Second())
}

// DateKeyToDisplay converts a "YYYY-MM-DD" key into "DD/MM/YYYY"
func DateKeyToDisplay(key string) string {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return key
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
