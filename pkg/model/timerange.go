package model

import (
	"errors"
	"fmt"
	"sort"
)

const MinutesPerDay = 1440

var ErrInvalidRange = errors.New("time range start must be before end, within a single day")

// TimeRange is a half-open [start, end) interval within one calendar day,
// expressed in minutes from midnight.
type TimeRange struct {
	StartMinute int `json:"start_minute" bson:"start_minute"`
	EndMinute   int `json:"end_minute" bson:"end_minute"`
}

func NewTimeRange(startMinute, endMinute int) (TimeRange, error) {
	if startMinute < 0 || startMinute >= MinutesPerDay || endMinute < 0 || endMinute > MinutesPerDay {
		return TimeRange{}, fmt.Errorf("%w: got [%d, %d)", ErrInvalidRange, startMinute, endMinute)
	}
	if startMinute >= endMinute {
		return TimeRange{}, fmt.Errorf("%w: got [%d, %d)", ErrInvalidRange, startMinute, endMinute)
	}
	return TimeRange{StartMinute: startMinute, EndMinute: endMinute}, nil
}

// ParseTimeRange builds a range from two HH:MM clock strings.
func ParseTimeRange(start, end string) (TimeRange, error) {
	startMinute, err := ParseClock(start)
	if err != nil {
		return TimeRange{}, err
	}
	endMinute, err := ParseClock(end)
	if err != nil {
		return TimeRange{}, err
	}
	return NewTimeRange(startMinute, endMinute)
}

// ParseClock converts an HH:MM 24-hour clock string to minutes from
// midnight. Exactly five characters, zero-padded; nothing is coerced.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q is not in HH:MM format", ErrInvalidRange, s)
	}
	for _, i := range [...]int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q is not in HH:MM format", ErrInvalidRange, s)
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q is out of clock bounds", ErrInvalidRange, s)
	}
	return hour*60 + minute, nil
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.StartMinute < other.EndMinute && other.StartMinute < r.EndMinute
}

func (r TimeRange) Contains(minute int) bool {
	return minute >= r.StartMinute && minute < r.EndMinute
}

func (r TimeRange) StartClock() string {
	return clockString(r.StartMinute)
}

func (r TimeRange) EndClock() string {
	return clockString(r.EndMinute)
}

func (r TimeRange) String() string {
	return r.StartClock() + "-" + r.EndClock()
}

func clockString(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// MergeRanges returns the ranges sorted by start with overlapping and
// adjacent intervals coalesced. The stored entries are kept as written;
// merging happens only when presenting or evaluating availability.
func MergeRanges(ranges []TimeRange) []TimeRange {
	if len(ranges) <= 1 {
		return append([]TimeRange(nil), ranges...)
	}

	sorted := append([]TimeRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].StartMinute != sorted[j].StartMinute {
			return sorted[i].StartMinute < sorted[j].StartMinute
		}
		return sorted[i].EndMinute < sorted[j].EndMinute
	})

	merged := []TimeRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.StartMinute <= last.EndMinute {
			if r.EndMinute > last.EndMinute {
				last.EndMinute = r.EndMinute
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
