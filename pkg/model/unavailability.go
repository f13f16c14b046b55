package model

import (
	"time"
)

// UnavailabilityEntry marks an owner unreachable for booking on part or all
// of one calendar date. For a given (owner, date) either a single all-day
// entry exists, or any number of partial-day entries; the write path
// replaces the whole date at once so the two kinds never mix.
type UnavailabilityEntry struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OwnerID   string    `json:"owner_id" bson:"owner_id" validate:"required,min=1,max=100"`
	Date      string    `json:"date" bson:"date" validate:"required,calendar_date"`
	AllDay    bool      `json:"all_day" bson:"all_day"`
	StartTime string    `json:"start_time,omitempty" bson:"start_time,omitempty" validate:"required_if=AllDay false,omitempty,clock_time"`
	EndTime   string    `json:"end_time,omitempty" bson:"end_time,omitempty" validate:"required_if=AllDay false,omitempty,clock_time"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Window parses the entry's clock strings. All-day entries have no window.
func (e *UnavailabilityEntry) Window() (*TimeRange, error) {
	if e.AllDay {
		return nil, nil
	}
	r, err := ParseTimeRange(e.StartTime, e.EndTime)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ClockRange is the wire form of a partial-day exclusion.
type ClockRange struct {
	StartTime string `json:"start_time" validate:"required,clock_time"`
	EndTime   string `json:"end_time" validate:"required,clock_time"`
}

// UnavailabilitySpec is the tagged replace-for-date write: either the whole
// day is blocked, or the listed ranges are. AllDay false with no ranges
// clears the date.
type UnavailabilitySpec struct {
	AllDay bool         `json:"all_day"`
	Ranges []ClockRange `json:"ranges,omitempty" validate:"omitempty,max=48,dive"`
}

// Entries expands the write into store rows for one owner and date.
// Ranges are validated but not deduplicated; overlapping ranges are stored
// as written.
func (s *UnavailabilitySpec) Entries(ownerID, date string) ([]*UnavailabilityEntry, error) {
	if s.AllDay {
		return []*UnavailabilityEntry{{
			OwnerID: ownerID,
			Date:    date,
			AllDay:  true,
		}}, nil
	}

	entries := make([]*UnavailabilityEntry, 0, len(s.Ranges))
	for _, cr := range s.Ranges {
		if _, err := ParseTimeRange(cr.StartTime, cr.EndTime); err != nil {
			return nil, err
		}
		entries = append(entries, &UnavailabilityEntry{
			OwnerID:   ownerID,
			Date:      date,
			StartTime: cr.StartTime,
			EndTime:   cr.EndTime,
		})
	}
	return entries, nil
}
