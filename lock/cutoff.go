package lock

import (
	"fmt"
	"time"
)

// Date formats accepted for the week-ending cell, tried in order. The order
// matters for ambiguous strings - the first matching format wins.
var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"01/02/06",
}

// Cutoff returns the end of the current week: the upcoming Sunday at
// 23:59:59 local civil time in loc. If 'now' already falls on a Sunday the
// cutoff is that same day.
func Cutoff(now time.Time, loc *time.Location) time.Time {
	t := now.In(loc)
	days := (7 - int(t.Weekday())) % 7

	sunday := t.AddDate(0, 0, days)

	return time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, loc)
}

// ParseDate parses a week-ending cell value, trying each accepted format in
// priority order.
func ParseDate(s string) (time.Time, error) {
	for _, format := range dateFormats {
		if date, err := time.Parse(format, s); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date '%s'", s)
}

// onOrBefore compares calendar dates only, ignoring time of day and zone
// offsets.
func onOrBefore(date, cutoff time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := cutoff.Date()

	if y1 != y2 {
		return y1 < y2
	}

	if m1 != m2 {
		return m1 < m2
	}

	return d1 <= d2
}
