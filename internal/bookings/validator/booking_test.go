package validator

import (
	"testing"

	"stagetime/pkg/logger"
	"stagetime/pkg/model"
)

func newValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewBookingValidator(log)
}

func validBooking() *model.Booking {
	return &model.Booking{
		OwnerID:        "artist-1",
		CounterpartyID: "venue-1",
		EventDate:      "2026-03-15",
		StartTime:      "14:00",
		EndTime:        "17:00",
		EventTitle:     "Acoustic Night",
		Status:         model.StatusPending,
	}
}

func TestValidate(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		mutate  func(b *model.Booking)
		wantErr bool
	}{
		{
			name:   "valid ranged booking",
			mutate: func(b *model.Booking) {},
		},
		{
			name: "valid all-day booking",
			mutate: func(b *model.Booking) {
				b.StartTime = ""
				b.EndTime = ""
			},
		},
		{
			name: "valid with note",
			mutate: func(b *model.Booking) {
				b.Note = "Load-in at noon"
			},
		},
		{
			name:    "missing owner",
			mutate:  func(b *model.Booking) { b.OwnerID = "" },
			wantErr: true,
		},
		{
			name:    "missing counterparty",
			mutate:  func(b *model.Booking) { b.CounterpartyID = "" },
			wantErr: true,
		},
		{
			name:    "self booking",
			mutate:  func(b *model.Booking) { b.CounterpartyID = b.OwnerID },
			wantErr: true,
		},
		{
			name:    "bad date",
			mutate:  func(b *model.Booking) { b.EventDate = "March 15" },
			wantErr: true,
		},
		{
			name:    "start without end",
			mutate:  func(b *model.Booking) { b.EndTime = "" },
			wantErr: true,
		},
		{
			name:    "end without start",
			mutate:  func(b *model.Booking) { b.StartTime = "" },
			wantErr: true,
		},
		{
			name: "inverted window",
			mutate: func(b *model.Booking) {
				b.StartTime = "17:00"
				b.EndTime = "14:00"
			},
			wantErr: true,
		},
		{
			name:    "title too short",
			mutate:  func(b *model.Booking) { b.EventTitle = "A" },
			wantErr: true,
		},
		{
			name:    "unknown status",
			mutate:  func(b *model.Booking) { b.Status = "cancelled" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			err := v.Validate(b)
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
