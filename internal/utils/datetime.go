package utils

import (
	"time"
)

const (
	// DateLayout is the wire format for calendar dates (ISO 8601).
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format for times of day.
	TimeLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD string into a date truncated to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// ParseTime validates an HH:MM string and returns it normalized. Times of day
// are stored as strings so they sort and compare lexicographically.
func ParseTime(s string) (string, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return "", err
	}
	return t.Format(TimeLayout), nil
}

// Today returns the current date truncated to midnight UTC, comparable with
// values produced by ParseDate.
func Today() time.Time {
	y, m, d := time.Now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
