package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Attendance times are stored as bare "HH:MM" wall-clock strings, so every
// duration computation has to rebuild an absolute instant from an externally
// supplied anchor date (the owning record's creation timestamp). All math is
// UTC; no timezone conversion happens anywhere in this file.

// ClockTime pairs a wall-clock string with the calendar-date anchor it must be
// interpreted against.
type ClockTime struct {
	Anchor time.Time
	HHMM   string
}

// Instant resolves the clock time to an absolute UTC instant.
func (ct ClockTime) Instant() (time.Time, error) {
	return ResolveInstant(ct.Anchor, ct.HHMM)
}

// ResolveInstant interprets hhmm as UTC wall-clock hours/minutes on anchor's
// UTC calendar date, with seconds and below zeroed.
func ResolveInstant(anchor time.Time, hhmm string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(hhmm), ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid time %q: want HH:MM", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, fmt.Errorf("invalid hour in %q", hhmm)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid minute in %q", hhmm)
	}
	a := anchor.UTC()
	return time.Date(a.Year(), a.Month(), a.Day(), hour, minute, 0, 0, time.UTC), nil
}

// HoursBetween returns end minus start in fractional hours. It performs no
// rollover adjustment; callers must ensure end >= start first.
func HoursBetween(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// RollOverIfNeeded shifts end to the next calendar day when it does not come
// after start. This captures overnight shifts and overnight breaks.
func RollOverIfNeeded(start, end time.Time) time.Time {
	if !end.After(start) {
		return end.Add(24 * time.Hour)
	}
	return end
}

// CalendarDateOf extracts the UTC calendar date as "YYYY-MM-DD".
func CalendarDateOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
