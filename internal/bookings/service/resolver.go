package service

import (
	"context"

	"stagetime/internal/availability/engine"
	"stagetime/internal/bookings/repository"
	apperrors "stagetime/pkg/errors"
	"stagetime/pkg/model"
)

// UnavailabilityReader is the slice of the availability store the resolver
// needs. The concrete repository satisfies it, so a confirm re-check can
// run inside the same Mongo transaction as the status write.
type UnavailabilityReader interface {
	FindByOwnerAndDate(ctx context.Context, ownerID, date string) ([]*model.UnavailabilityEntry, error)
}

// ConflictResolver decides whether a booking window can be honored right
// now. Order matters: owner blocks outrank double-booking, so the caller
// gets the strongest verdict first.
type ConflictResolver struct {
	unavailability UnavailabilityReader
	bookings       repository.BookingRepository
}

func NewConflictResolver(unavailability UnavailabilityReader, bookings repository.BookingRepository) *ConflictResolver {
	return &ConflictResolver{
		unavailability: unavailability,
		bookings:       bookings,
	}
}

// Evaluate returns nil when the window is clear, or the verdict AppError.
// excludeID skips the booking being transitioned so it never conflicts
// with itself. Run under a transaction when the result gates a write.
func (cr *ConflictResolver) Evaluate(ctx context.Context, booking *model.Booking, excludeID string) error {
	window, err := booking.Window()
	if err != nil {
		return apperrors.InvalidInput("start_time must be before end_time, both HH:MM within one day")
	}

	entries, err := cr.unavailability.FindByOwnerAndDate(ctx, booking.OwnerID, booking.EventDate)
	if err != nil {
		return apperrors.Internal("Failed to load owner unavailability", err)
	}
	if err := engine.CheckEntries(booking.OwnerID, booking.EventDate, window, entries); err != nil {
		return err
	}

	confirmed, err := cr.bookings.FindByOwnerAndDate(ctx, booking.OwnerID, booking.EventDate, []model.BookingStatus{model.StatusConfirmed})
	if err != nil {
		return apperrors.Internal("Failed to load confirmed bookings", err)
	}

	for _, other := range confirmed {
		if other.ID == excludeID {
			continue
		}
		if bookingsOverlap(window, other) {
			return apperrors.DoubleBooking(booking.OwnerID, booking.EventDate, other.ID)
		}
	}

	return nil
}

// bookingsOverlap treats a missing window on either side as the full day.
func bookingsOverlap(window *model.TimeRange, other *model.Booking) bool {
	otherWindow, err := other.Window()
	if err != nil {
		// Unparsable stored window: conservatively treat as full-day.
		return true
	}
	if window == nil || otherWindow == nil {
		return true
	}
	return window.Overlaps(*otherWindow)
}
