package model

// DayUnavailability is the read view of one (owner, date): the raw stored
// entries plus the merged blocked windows for display.
type DayUnavailability struct {
	OwnerID string                 `json:"owner_id"`
	Date    string                 `json:"date"`
	AllDay  bool                   `json:"all_day"`
	Blocked []ClockRange           `json:"blocked,omitempty"`
	Entries []*UnavailabilityEntry `json:"entries"`
}

// AvailabilityCheck is an informational verdict: what the engine would say
// about this window right now. Reason carries the verdict code when the
// window is blocked.
type AvailabilityCheck struct {
	OwnerID   string         `json:"owner_id"`
	Date      string         `json:"date"`
	StartTime string         `json:"start_time,omitempty"`
	EndTime   string         `json:"end_time,omitempty"`
	Available bool           `json:"available"`
	Reason    string         `json:"reason,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}
