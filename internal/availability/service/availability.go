package service

import (
	"context"

	"stagetime/internal/availability/engine"
	"stagetime/internal/availability/repository"
	"stagetime/internal/availability/validator"
	"stagetime/pkg/config"
	apperrors "stagetime/pkg/errors"
	"stagetime/pkg/model"
)

// ConfirmedBookingReader lets the availability service warn when a new
// block lands on top of an already-confirmed booking. Blocking wins; the
// overlap is logged, never rejected.
type ConfirmedBookingReader interface {
	FindConfirmedByOwnerAndDate(ctx context.Context, ownerID, date string) ([]*model.Booking, error)
}

type AvailabilityService interface {
	SetUnavailability(ctx context.Context, ownerID, date string, spec *model.UnavailabilitySpec) ([]*model.UnavailabilityEntry, error)
	ClearDate(ctx context.Context, ownerID, date string) (int64, error)
	GetUnavailability(ctx context.Context, ownerID, date string) (*model.DayUnavailability, error)
	ListUnavailableDates(ctx context.Context, ownerID, from, to string) ([]string, error)
	CheckAvailability(ctx context.Context, ownerID, date string, startTime, endTime string) (*model.AvailabilityCheck, error)
}

type availabilityService struct {
	repo      repository.UnavailabilityRepository
	bookings  ConfirmedBookingReader
	validator *validator.AvailabilityValidator
	cfg       *config.Config
}

// NewAvailabilityService wires the unavailability store. The bookings
// reader is optional; pass nil to skip the confirmed-overlap warning.
func NewAvailabilityService(
	repo repository.UnavailabilityRepository,
	bookings ConfirmedBookingReader,
	validator *validator.AvailabilityValidator,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		cfg:       cfg,
	}
}

// SetUnavailability replaces the owner's whole schedule for one date with
// the given spec. An empty partial-day spec clears the date.
func (s *availabilityService) SetUnavailability(ctx context.Context, ownerID, date string, spec *model.UnavailabilitySpec) ([]*model.UnavailabilityEntry, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}
	if _, err := model.ParseDate(date); err != nil {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}
	if err := s.validator.ValidateSpec(spec); err != nil {
		s.cfg.Log.Warn("Unavailability validation failed", "owner_id", ownerID, "date", date, "error", err)
		return nil, apperrors.Validation("Invalid unavailability input", map[string]any{"error": err.Error()})
	}

	entries, err := spec.Entries(ownerID, date)
	if err != nil {
		return nil, apperrors.InvalidInput("Each range needs start_time before end_time")
	}
	// The expanded rows carry the owner and date; check them too so a bad
	// identifier never reaches the store.
	for _, e := range entries {
		if err := s.validator.ValidateEntry(e); err != nil {
			s.cfg.Log.Warn("Unavailability validation failed", "owner_id", ownerID, "date", date, "error", err)
			return nil, apperrors.Validation("Invalid unavailability input", map[string]any{"error": err.Error()})
		}
	}

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.ReplaceForDate(txCtx, ownerID, date, entries); err != nil {
			return apperrors.Internal("Failed to store unavailability", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to set unavailability", "owner_id", ownerID, "date", date, "error", err)
		return nil, err
	}

	s.warnConfirmedOverlaps(ctx, ownerID, date, entries)

	s.cfg.Log.Info("Unavailability set successfully",
		"owner_id", ownerID,
		"date", date,
		"all_day", spec.AllDay,
		"ranges", len(spec.Ranges),
	)
	return entries, nil
}

// ClearDate removes every block for the date. Clearing an empty date is
// not an error.
func (s *availabilityService) ClearDate(ctx context.Context, ownerID, date string) (int64, error) {
	if ownerID == "" {
		return 0, apperrors.InvalidInput("Owner ID cannot be empty")
	}
	if _, err := model.ParseDate(date); err != nil {
		return 0, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	deleted, err := s.repo.DeleteForDate(ctx, ownerID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to clear unavailability", "owner_id", ownerID, "date", date, "error", err)
		return 0, apperrors.Internal("Failed to clear unavailability", err)
	}

	s.cfg.Log.Info("Unavailability cleared", "owner_id", ownerID, "date", date, "deleted", deleted)
	return deleted, nil
}

func (s *availabilityService) GetUnavailability(ctx context.Context, ownerID, date string) (*model.DayUnavailability, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}
	if _, err := model.ParseDate(date); err != nil {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	entries, err := s.repo.FindByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve unavailability", err)
	}

	day := &model.DayUnavailability{
		OwnerID: ownerID,
		Date:    date,
		Entries: entries,
	}
	for _, e := range entries {
		if e.AllDay {
			day.AllDay = true
			break
		}
	}
	for _, r := range engine.MergedWindows(entries) {
		day.Blocked = append(day.Blocked, model.ClockRange{
			StartTime: r.StartClock(),
			EndTime:   r.EndClock(),
		})
	}

	return day, nil
}

func (s *availabilityService) ListUnavailableDates(ctx context.Context, ownerID, from, to string) ([]string, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}
	if _, err := model.ParseDate(from); err != nil {
		return nil, apperrors.InvalidInput("From date must be in YYYY-MM-DD format")
	}
	if _, err := model.ParseDate(to); err != nil {
		return nil, apperrors.InvalidInput("To date must be in YYYY-MM-DD format")
	}
	if from > to {
		return nil, apperrors.InvalidInput("From date must not be after to date")
	}

	dates, err := s.repo.ListDatesInRange(ctx, ownerID, from, to)
	if err != nil {
		return nil, apperrors.Internal("Failed to list unavailable dates", err)
	}

	return dates, nil
}

// CheckAvailability answers the read-only question a counterparty asks
// before submitting: would this window be blocked right now? The verdict
// is informational; confirmation re-checks under a transaction.
func (s *availabilityService) CheckAvailability(ctx context.Context, ownerID, date string, startTime, endTime string) (*model.AvailabilityCheck, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}
	if _, err := model.ParseDate(date); err != nil {
		return nil, apperrors.InvalidInput("Date must be in YYYY-MM-DD format")
	}

	var window *model.TimeRange
	if startTime != "" || endTime != "" {
		r, err := model.ParseTimeRange(startTime, endTime)
		if err != nil {
			return nil, apperrors.InvalidInput("start_time must be before end_time, both HH:MM within one day")
		}
		window = &r
	}

	entries, err := s.repo.FindByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve unavailability", err)
	}

	check := &model.AvailabilityCheck{
		OwnerID:   ownerID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Available: true,
	}
	if err := engine.CheckEntries(ownerID, date, window, entries); err != nil {
		appErr := apperrors.AsAppError(err)
		check.Available = false
		check.Reason = appErr.Code
		check.Details = appErr.Details
	}

	return check, nil
}

// warnConfirmedOverlaps logs when a fresh block covers a confirmed
// booking. The block stands; someone has to renegotiate the booking.
func (s *availabilityService) warnConfirmedOverlaps(ctx context.Context, ownerID, date string, entries []*model.UnavailabilityEntry) {
	if s.bookings == nil || len(entries) == 0 {
		return
	}

	confirmed, err := s.bookings.FindConfirmedByOwnerAndDate(ctx, ownerID, date)
	if err != nil {
		s.cfg.Log.Warn("Could not check confirmed bookings for overlap", "owner_id", ownerID, "date", date, "error", err)
		return
	}

	for _, b := range confirmed {
		if s.blockCovers(entries, b) {
			s.cfg.Log.Warn("Unavailability overlaps a confirmed booking",
				"owner_id", ownerID,
				"date", date,
				"booking_id", b.ID,
				"counterparty_id", b.CounterpartyID,
			)
		}
	}
}

func (s *availabilityService) blockCovers(entries []*model.UnavailabilityEntry, b *model.Booking) bool {
	window, err := b.Window()
	if err != nil {
		return false
	}
	return engine.CheckEntries(b.OwnerID, b.EventDate, window, entries) != nil
}
