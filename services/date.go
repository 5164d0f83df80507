package services

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout is the storage format of calendar dates
	DateLayout = "2006-01-02"
	// DateTimeLayout is the storage format of timestamps
	DateTimeLayout = "2006-01-02 15:04:05"
	// ClockLayout is the storage format of hearing times
	ClockLayout = "15:04"
)

// ParseDate parses a date string in typical formats (YYYY-MM-DD)
func ParseDate(dateStr string) (time.Time, error) {
	parsedTime, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}

	return parsedTime, nil
}

// NormalizeDueDate accepts YYYY-MM-DD HH:MM:SS or YYYY-MM-DD and returns the
// date part. The time of day of a due date is discarded.
func NormalizeDueDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateTimeLayout, value); err == nil {
		return t.Format(DateLayout), nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return "", fmt.Errorf("invalid due date %q: expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS", value)
	}
	return t.Format(DateLayout), nil
}

// startOfDay returns local midnight of t's day in t's location
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayOffset returns an SQLite date modifier such as "+30 day" or "-1 day"
func dayOffset(days int) string {
	return fmt.Sprintf("%+d day", days)
}
