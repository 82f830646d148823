package dateutils

import (
	"strings"
	"time"
)

// Layout is the calendar date format accepted from forms and written to views.
const Layout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into midnight UTC of that day.
// A blank string means "no date" and yields nil without error.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(Layout, value, time.UTC)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// FormatDate renders a date as YYYY-MM-DD, or "" for nil.
func FormatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(Layout)
}

// Today returns midnight UTC of the current day.
func Today(now time.Time) time.Time {
	year, month, day := now.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
