package domain

import (
	"strings"
	"time"
)

// DateTimeLayout is the wire format for date-bearing XER columns
// (spec.md section 6): "YYYY-MM-DD HH:MM".
const DateTimeLayout = "2006-01-02 15:04"

// ParseDateTime parses a column value into a time, returning false if the
// value is empty (null) or unparseable. Unparseable non-empty values are
// the caller's responsibility to report as a diagnostic.
func ParseDateTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateTimeLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDateTime renders a time using the wire format, or "" for a null.
func FormatDateTime(t time.Time, ok bool) string {
	if !ok {
		return ""
	}
	return t.Format(DateTimeLayout)
}

// DateOnly truncates a timestamp to the calendar date, timezone-free per
// spec.md section 4.4 ("the vendor format is implicitly local").
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
