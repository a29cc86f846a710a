// Package dates holds the calendar-day math shared by the dashboard and
// analytics aggregations. Day boundaries are taken in the location of the
// reference time passed in.
package dates

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves by calendar days, so DST shifts do not leak into day keys.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// Parse reads a date-only value as midnight in loc. Full RFC 3339
// timestamps are accepted too and converted to loc.
func Parse(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(DateLayout, value, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return t.In(loc), nil
}

// Within reports whether t lies in [start, end], both inclusive.
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ApprovalHours is the review latency in hours, clamped at zero.
// It returns false when either timestamp is missing.
func ApprovalHours(submittedAt, reviewedAt *time.Time) (float64, bool) {
	if submittedAt == nil || reviewedAt == nil {
		return 0, false
	}
	diff := reviewedAt.Sub(*submittedAt)
	if diff <= 0 {
		return 0, true
	}
	return diff.Hours(), true
}

// LoadLocation resolves an IANA zone name, falling back to fallback
// (or UTC) for empty or unknown names.
func LoadLocation(name string, fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.UTC
	}
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
