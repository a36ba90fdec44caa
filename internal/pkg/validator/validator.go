package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Clock-time validation, 24-hour "HH:mm"
func IsValidClockTime(timeStr string) (time.Time, bool) {
	t, err := time.Parse("15:04", timeStr)
	return t, err == nil
}

var monthYearRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// MonthYear validation, "YYYY-MM"
func IsValidMonthYear(monthYear string) bool {
	return monthYearRegex.MatchString(monthYear)
}

// IsDateInMonth reports whether an ISO date key belongs to the given month.
// Record maps are keyed by "YYYY-MM-DD" and must share the aggregate's
// "YYYY-MM" prefix.
func IsDateInMonth(dateStr, monthYear string) bool {
	if _, ok := IsValidDate(dateStr); !ok {
		return false
	}
	return strings.HasPrefix(dateStr, monthYear+"-")
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
