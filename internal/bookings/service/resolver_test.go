package service

import (
	"context"
	"testing"

	apperrors "stagetime/pkg/errors"
	"stagetime/pkg/model"
)

func TestResolver_BookingNeverConflictsWithItself(t *testing.T) {
	booking := pendingBooking()
	booking.Status = model.StatusConfirmed

	repo := &mockBookingRepository{
		findByOwnerAndDateFunc: func(ctx context.Context, ownerID, date string, statuses []model.BookingStatus) ([]*model.Booking, error) {
			// The transaction re-read returns the booking being confirmed.
			return []*model.Booking{booking}, nil
		},
	}
	resolver := NewConflictResolver(&mockUnavailabilityReader{}, repo)

	if err := resolver.Evaluate(context.Background(), booking, booking.ID); err != nil {
		t.Errorf("booking must not conflict with itself, got %v", err)
	}
}

func TestResolver_OwnerBlockOutranksDoubleBooking(t *testing.T) {
	booking := pendingBooking()
	other := pendingBooking()
	other.ID = "66b1f0a2c3d4e5f6a7b8c9d1"
	other.Status = model.StatusConfirmed

	repo := &mockBookingRepository{
		findByOwnerAndDateFunc: func(ctx context.Context, ownerID, date string, statuses []model.BookingStatus) ([]*model.Booking, error) {
			return []*model.Booking{other}, nil
		},
	}
	unav := &mockUnavailabilityReader{
		findFunc: func(ctx context.Context, ownerID, date string) ([]*model.UnavailabilityEntry, error) {
			return []*model.UnavailabilityEntry{{OwnerID: ownerID, Date: date, AllDay: true}}, nil
		},
	}
	resolver := NewConflictResolver(unav, repo)

	err := resolver.Evaluate(context.Background(), booking, booking.ID)
	if !apperrors.HasCode(err, apperrors.CodeOwnerUnavailableAllDay) {
		t.Errorf("owner block should be reported before double booking, got %v", err)
	}
}

func TestResolver_AllDayRequestAgainstConfirmedWindow(t *testing.T) {
	booking := pendingBooking()
	booking.StartTime = ""
	booking.EndTime = ""

	other := pendingBooking()
	other.ID = "66b1f0a2c3d4e5f6a7b8c9d1"
	other.Status = model.StatusConfirmed

	repo := &mockBookingRepository{
		findByOwnerAndDateFunc: func(ctx context.Context, ownerID, date string, statuses []model.BookingStatus) ([]*model.Booking, error) {
			return []*model.Booking{other}, nil
		},
	}
	resolver := NewConflictResolver(&mockUnavailabilityReader{}, repo)

	err := resolver.Evaluate(context.Background(), booking, booking.ID)
	if !apperrors.HasCode(err, apperrors.CodeDoubleBooking) {
		t.Errorf("all-day request must conflict with any confirmed booking, got %v", err)
	}
}

func TestResolver_OnlyConfirmedBookingsConsulted(t *testing.T) {
	booking := pendingBooking()

	var requested []model.BookingStatus
	repo := &mockBookingRepository{
		findByOwnerAndDateFunc: func(ctx context.Context, ownerID, date string, statuses []model.BookingStatus) ([]*model.Booking, error) {
			requested = statuses
			return []*model.Booking{}, nil
		},
	}
	resolver := NewConflictResolver(&mockUnavailabilityReader{}, repo)

	if err := resolver.Evaluate(context.Background(), booking, booking.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(requested) != 1 || requested[0] != model.StatusConfirmed {
		t.Errorf("resolver should only load confirmed bookings, asked for %v", requested)
	}
}
