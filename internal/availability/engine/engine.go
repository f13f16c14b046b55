// Package engine holds the pure availability decision logic: given the
// stored unavailability entries for one (owner, date), is a requested
// window bookable? It knows nothing about storage or bookings.
package engine

import (
	apperrors "stagetime/pkg/errors"
	"stagetime/pkg/model"
)

// CheckEntries adjudicates a request against unavailability entries.
// Returns nil when the owner is available. An all-day entry blocks
// everything; a request without a window is treated as full-day, so any
// partial entry blocks it (conservative).
func CheckEntries(ownerID, date string, window *model.TimeRange, entries []*model.UnavailabilityEntry) error {
	for _, e := range entries {
		if e.AllDay {
			return apperrors.OwnerUnavailableAllDay(ownerID, date)
		}
	}

	for _, e := range entries {
		blocked, err := e.Window()
		if err != nil {
			// A stored range that no longer parses cannot be adjudicated;
			// treat the owner as unavailable rather than guess.
			return apperrors.OwnerUnavailableTimeRange(ownerID, date, e.StartTime+"-"+e.EndTime)
		}
		if blocked == nil {
			continue
		}
		if window == nil || window.Overlaps(*blocked) {
			return apperrors.OwnerUnavailableTimeRange(ownerID, date, blocked.String())
		}
	}

	return nil
}

// MergedWindows normalizes the stored partial-day entries into sorted,
// non-overlapping ranges for presentation. Entries with unparsable times
// are skipped. An all-day entry yields the full day.
func MergedWindows(entries []*model.UnavailabilityEntry) []model.TimeRange {
	var ranges []model.TimeRange
	for _, e := range entries {
		if e.AllDay {
			return []model.TimeRange{{StartMinute: 0, EndMinute: model.MinutesPerDay}}
		}
		w, err := e.Window()
		if err != nil || w == nil {
			continue
		}
		ranges = append(ranges, *w)
	}
	return model.MergeRanges(ranges)
}
