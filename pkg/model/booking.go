package model

import (
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusDeclined  BookingStatus = "declined"
	StatusCompleted BookingStatus = "completed"
)

// allowedTransitions is the whole state machine: pending splits into
// confirmed or declined, confirmed completes after the event. Declined and
// completed are terminal; nothing re-enters pending.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusDeclined},
	StatusConfirmed: {StatusCompleted},
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDeclined, StatusCompleted:
		return true
	}
	return false
}

// Booking is a request by a counterparty (venue) for an owner's (artist's)
// date, optionally narrowed to a time window. Bookings are never deleted,
// only status-mutated.
type Booking struct {
	ID             string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OwnerID        string        `json:"owner_id" bson:"owner_id" validate:"required,min=1,max=100"`
	CounterpartyID string        `json:"counterparty_id" bson:"counterparty_id" validate:"required,min=1,max=100"`
	EventDate      string        `json:"event_date" bson:"event_date" validate:"required,calendar_date"`
	StartTime      string        `json:"start_time,omitempty" bson:"start_time,omitempty" validate:"required_with=EndTime,omitempty,clock_time"`
	EndTime        string        `json:"end_time,omitempty" bson:"end_time,omitempty" validate:"required_with=StartTime,omitempty,clock_time"`
	EventTitle     string        `json:"event_title" bson:"event_title" validate:"required,min=2,max=100"`
	Note           string        `json:"note,omitempty" bson:"note,omitempty" validate:"omitempty,max=500"`
	Status         BookingStatus `json:"status" bson:"status" validate:"omitempty,oneof=pending confirmed declined completed"`
	CreatedAt      time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Window returns the booking's time range, or nil for an all-day request.
func (b *Booking) Window() (*TimeRange, error) {
	if b.StartTime == "" && b.EndTime == "" {
		return nil, nil
	}
	r, err := ParseTimeRange(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
