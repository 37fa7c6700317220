// Package dates provides calendar-day helpers for the tracker.
//
// The store keeps every calendar date as a timezone-naive YYYY-MM-DD string.
// All helpers here build those strings from local year/month/day components
// rather than truncating serialized instants, which shifts the day near
// midnight in non-UTC zones.
package dates

import (
	"fmt"
	"time"
)

// Layout is the wire format for calendar days.
const Layout = "2006-01-02"

// Day formats t as a local calendar-day string.
func Day(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// Today returns the current local calendar day.
func Today() string {
	return Day(time.Now())
}

// Parse converts a YYYY-MM-DD string into a local-midnight time.
func Parse(day string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, day, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day %q: %w", day, err)
	}
	return t, nil
}

// Valid reports whether day is a well-formed YYYY-MM-DD string.
func Valid(day string) bool {
	_, err := time.Parse(Layout, day)
	return err == nil && len(day) == len(Layout)
}

// AddDays returns the calendar day n days after day (n may be negative).
func AddDays(day string, n int) (string, error) {
	t, err := Parse(day)
	if err != nil {
		return "", err
	}
	return Day(t.AddDate(0, 0, n)), nil
}

// Window returns the consecutive calendar days [start, start+days), in order.
func Window(start string, days int) ([]string, error) {
	t, err := Parse(start)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, Day(t.AddDate(0, 0, i)))
	}
	return out, nil
}

// YearProgress reports whole days elapsed since Jan 1 (with Jan 1 counting as
// day 1), days remaining until Dec 31 inclusive, and the total days in the
// current year. Remaining is never negative.
func YearProgress(t time.Time) (elapsed, remaining, total int) {
	elapsed = t.YearDay()
	total = 365
	if isLeap(t.Year()) {
		total = 366
	}
	remaining = total - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return elapsed, remaining, total
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
