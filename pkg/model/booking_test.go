package model

import "testing"

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{name: "pending to confirmed", from: StatusPending, to: StatusConfirmed, want: true},
		{name: "pending to declined", from: StatusPending, to: StatusDeclined, want: true},
		{name: "confirmed to completed", from: StatusConfirmed, to: StatusCompleted, want: true},
		{name: "pending to completed skips confirmation", from: StatusPending, to: StatusCompleted, want: false},
		{name: "confirmed to declined", from: StatusConfirmed, to: StatusDeclined, want: false},
		{name: "declined is terminal", from: StatusDeclined, to: StatusConfirmed, want: false},
		{name: "completed is terminal", from: StatusCompleted, to: StatusPending, want: false},
		{name: "no re-entry to pending", from: StatusConfirmed, to: StatusPending, want: false},
		{name: "self transition", from: StatusPending, to: StatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("%s.CanTransitionTo(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestBookingStatusValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed, StatusDeclined, StatusCompleted} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if BookingStatus("cancelled").Valid() {
		t.Error("unknown status should not be valid")
	}
	if BookingStatus("").Valid() {
		t.Error("empty status should not be valid")
	}
}

func TestBookingWindow(t *testing.T) {
	b := &Booking{StartTime: "14:00", EndTime: "17:00"}
	w, err := b.Window()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w == nil || w.StartMinute != 840 || w.EndMinute != 1020 {
		t.Errorf("Window() = %v, want [840, 1020)", w)
	}

	allDay := &Booking{}
	w, err = allDay.Window()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != nil {
		t.Errorf("all-day booking Window() = %v, want nil", w)
	}

	bad := &Booking{StartTime: "17:00", EndTime: "14:00"}
	if _, err := bad.Window(); err == nil {
		t.Error("inverted window should fail")
	}
}

func TestUnavailabilitySpecEntries(t *testing.T) {
	allDay := &UnavailabilitySpec{AllDay: true}
	entries, err := allDay.Entries("artist-1", "2026-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || !entries[0].AllDay {
		t.Fatalf("all-day spec should expand to one all-day entry, got %v", entries)
	}

	ranges := &UnavailabilitySpec{
		Ranges: []ClockRange{
			{StartTime: "09:00", EndTime: "12:00"},
			{StartTime: "14:00", EndTime: "17:00"},
		},
	}
	entries, err = ranges.Entries("artist-1", "2026-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.OwnerID != "artist-1" || e.Date != "2026-03-15" || e.AllDay {
			t.Errorf("entry not keyed to owner and date: %+v", e)
		}
	}

	empty := &UnavailabilitySpec{}
	entries, err = empty.Entries("artist-1", "2026-03-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("empty spec should expand to no entries, got %v", entries)
	}

	inverted := &UnavailabilitySpec{
		Ranges: []ClockRange{{StartTime: "12:00", EndTime: "09:00"}},
	}
	if _, err := inverted.Entries("artist-1", "2026-03-15"); err == nil {
		t.Error("inverted range should fail")
	}
}
