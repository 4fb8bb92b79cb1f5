package types

import (
	"fmt"
	"time"
)

// DateRange represents a relative date window for note filtering
type DateRange string

const (
	DateRangeAll   DateRange = "all"
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
)

// AllDateRanges returns all valid date ranges
func AllDateRanges() []DateRange {
	return []DateRange{
		DateRangeAll,
		DateRangeToday,
		DateRangeWeek,
		DateRangeMonth,
	}
}

// IsValid checks if the date range is valid
func (r DateRange) IsValid() bool {
	switch r {
	case DateRangeAll,
		DateRangeToday,
		DateRangeWeek,
		DateRangeMonth:
		return true
	default:
		return false
	}
}

// Normalize returns the range, treating empty as DateRangeAll
func (r DateRange) Normalize() DateRange {
	if r == "" {
		return DateRangeAll
	}
	return r
}

// String returns the string representation of the date range
func (r DateRange) String() string {
	return string(r)
}

// Cutoff returns the lower bound implied by the range relative to now.
// The second return value is false when the range does not filter (all).
func (r DateRange) Cutoff(now time.Time) (time.Time, bool) {
	switch r {
	case DateRangeToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case DateRangeWeek:
		return now.AddDate(0, 0, -7), true
	case DateRangeMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}

// ParseDateRange parses a string into a DateRange
func ParseDateRange(s string) (DateRange, error) {
	r := DateRange(s).Normalize()
	if !r.IsValid() {
		return "", fmt.Errorf("invalid date range: %s", s)
	}
	return r, nil
}
