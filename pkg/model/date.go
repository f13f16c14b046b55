package model

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var ErrMalformedDate = errors.New("date must be in YYYY-MM-DD format")

// ParseDate validates a calendar date string and returns its canonical form.
// Dates are local calendar days; no timezone conversion is applied.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	canonical := t.Format(DateLayout)
	if canonical != s {
		return "", fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return canonical, nil
}

// EventEnd returns the moment a booking on the given date is over: the end
// of its time window, or the end of the day for all-day bookings.
func EventEnd(date string, window *TimeRange) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, date)
	}
	if window == nil {
		return day.Add(MinutesPerDay * time.Minute), nil
	}
	return day.Add(time.Duration(window.EndMinute) * time.Minute), nil
}
