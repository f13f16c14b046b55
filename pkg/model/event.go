package model

import "time"

// TransitionEvent is emitted after every successful booking status change.
// Emission is fire-and-forget; core correctness never depends on it.
type TransitionEvent struct {
	ID         string        `json:"id"`
	BookingID  string        `json:"booking_id"`
	OwnerID    string        `json:"owner_id"`
	FromStatus BookingStatus `json:"from_status"`
	ToStatus   BookingStatus `json:"to_status"`
	Timestamp  time.Time     `json:"timestamp"`
}
