// Package validation validates API input and reports data quality issues
// of a loaded record set.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/giygas/kits-report-api/interfaces"
	"github.com/giygas/kits-report-api/kitsparser/entities"
)

const maxInputLength = 100

var (
	// Letters in any script, digits, spaces and the punctuation found in pharmacy names
	inputRegex = regexp.MustCompile(`^[\p{L}\p{N}\s\-\.\+'/_#()°]+$`)

	dateKeyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// Checked with strings.Contains on the lower-cased input
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"eval(", "expression(", "url(", "@import",
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"--", "/*", "*/", "exec(",
		"; ", "| ", "& ", "`", "$(", "${",
		"../", "..\\", "%2e%2e", "file://",
	}
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateInput checks a free text filter value such as a pharmacy name
func (v *DataValidatorImpl) ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}
	if len(input) > maxInputLength {
		return fmt.Errorf("input too long: %d characters (max %d)", len(input), maxInputLength)
	}

	lower := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("input contains dangerous pattern")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters")
	}

	return nil
}

// ValidateDateKey checks that input is an existing "YYYY-MM-DD" date
func (v *DataValidatorImpl) ValidateDateKey(input string) error {
	if !dateKeyRegex.MatchString(input) {
		return fmt.Errorf("date must use the YYYY-MM-DD format, got: %q", input)
	}
	if _, err := time.Parse(time.DateOnly, input); err != nil {
		return fmt.Errorf("invalid date %q: %w", input, err)
	}
	return nil
}

// ValidateLimit parses a positive row limit no greater than max
func (v *DataValidatorImpl) ValidateLimit(input string, max int) (int, error) {
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("limit must be a number: %w", err)
	}
	if n < 1 || n > max {
		return 0, fmt.Errorf("limit must be between 1 and %d, got: %d", max, n)
	}
	return n, nil
}

// ReportDataQuality collects soft issues of records that were kept
func (v *DataValidatorImpl) ReportDataQuality(records []entities.Record) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{
		TotalRecords: len(records),
		Pharmacies:   []string{},
	}

	seen := make(map[string]bool)
	for _, r := range records {
		if r.Timestamp == nil {
			report.RecordsWithoutTimestamp++
		} else if r.SurgeryDate != nil && r.Timestamp.Before(*r.SurgeryDate) {
			report.TimestampBeforeSurgery++
		}

		switch {
		case r.Quantity == 0:
			report.RecordsWithZeroQuantity++
		case r.Quantity < 0:
			report.RecordsWithNegativeQty++
		}

		if r.KitCode == "" {
			report.RecordsWithoutKitCode++
		}

		if !seen[r.Pharmacy] {
			seen[r.Pharmacy] = true
			report.Pharmacies = append(report.Pharmacies, r.Pharmacy)
		}

		if report.FirstDateKey == "" || r.SurgeryDateKey < report.FirstDateKey {
			report.FirstDateKey = r.SurgeryDateKey
		}
		if r.SurgeryDateKey > report.LastDateKey {
			report.LastDateKey = r.SurgeryDateKey
		}
	}

	return report
}
