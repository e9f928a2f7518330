// ABOUTME: Time utility functions for date range calculations relative to a given now
// ABOUTME: Backs the today/yesterday/week/month views and the mark-read --before cutoff

package timeutil

import (
	"strings"
	"time"
)

// DateLayout is the accepted explicit date format.
const DateLayout = "2006-01-02"

// StartOfDay returns midnight (00:00:00) of now's day in now's location
func StartOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// StartOfYesterday returns midnight of the day before now
func StartOfYesterday(now time.Time) time.Time {
	return StartOfDay(now).AddDate(0, 0, -1)
}

// StartOfWeek returns midnight of the most recent Sunday
// Note: Week starts on Sunday
func StartOfWeek(now time.Time) time.Time {
	today := StartOfDay(now)
	return today.AddDate(0, 0, -int(today.Weekday()))
}

// StartOfMonth returns midnight of the first day of now's month
func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// Range is a half-open interval [Since, Until). A zero Until is unbounded.
type Range struct {
	Since time.Time
	Until time.Time
}

// Contains reports whether t falls inside r.
func (r Range) Contains(t time.Time) bool {
	if t.Before(r.Since) {
		return false
	}
	return r.Until.IsZero() || t.Before(r.Until)
}

// ParseView converts a view name to the range it covers.
// Supported values: "today", "yesterday", "week", "month"
func ParseView(view string, now time.Time) (Range, bool) {
	switch strings.ToLower(view) {
	case "today":
		return Range{Since: StartOfDay(now)}, true
	case "yesterday":
		return Range{Since: StartOfYesterday(now), Until: StartOfDay(now)}, true
	case "week":
		return Range{Since: StartOfWeek(now)}, true
	case "month":
		return Range{Since: StartOfMonth(now)}, true
	default:
		return Range{}, false
	}
}

// ParsePeriod converts a period string to a time.Time representing the cutoff
// Supported values: "today", "yesterday", "week", "month", or a YYYY-MM-DD date
// Returns the start of that period (articles before this time would be marked)
func ParsePeriod(period string, now time.Time) (time.Time, bool) {
	if r, ok := ParseView(period, now); ok {
		return r.Since, true
	}
	if t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(period), now.Location()); err == nil {
		return t, true
	}
	return time.Time{}, false
}
