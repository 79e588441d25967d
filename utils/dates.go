package utils

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire format for arrival/departure dates.
const DateLayout = "2006-01-02"

// ErrBadDate is returned when an incoming date string cannot be parsed.
var ErrBadDate = errors.New("invalid date format, expected YYYY-MM-DD")

// Day truncates t to a timezone-naive calendar date in UTC. All interval
// logic compares values produced here, never raw datetimes.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today is the current calendar date.
func Today() time.Time {
	return Day(time.Now().UTC())
}

// ParseDate accepts "2006-01-02" or a full RFC3339 timestamp and normalizes
// to a calendar date immediately at the boundary.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrBadDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Day(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Day(t), nil
	}
	return time.Time{}, ErrBadDate
}

// FormatDate renders a calendar date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Nights counts whole days in the half-open window [arrival, departure).
func Nights(arrival, departure time.Time) int {
	n := int(Day(departure).Sub(Day(arrival)).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
