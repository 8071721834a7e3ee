package utils

import (
	"fmt"
	"strings"
	"time"
)

// Stay boundaries are calendar dates in UTC with the time of day stripped.
// Check-out is exclusive: [checkIn, checkOut).

// NormalizeDay truncates t to midnight UTC.
func NormalizeDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NightsBetween returns the number of nights in [checkIn, checkOut),
// clamped to a 1-night minimum.
func NightsBetween(checkIn, checkOut time.Time) int {
	nights := int(NormalizeDay(checkOut).Sub(NormalizeDay(checkIn)).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}

// EachNight walks every calendar date in [checkIn, checkOut) and calls fn.
// A zero-or-negative range still yields the single night of checkIn.
func EachNight(checkIn, checkOut time.Time, fn func(date time.Time) error) error {
	start := NormalizeDay(checkIn)
	end := start.AddDate(0, 0, NightsBetween(checkIn, checkOut))
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}

// ParseDate accepts "2006-01-02" or RFC3339 and returns the day in UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return NormalizeDay(t), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return NormalizeDay(t), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC3339)", raw)
}
