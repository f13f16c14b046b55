package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "stagetime/internal/bookings/errors"
	"stagetime/internal/bookings/repository"
	"stagetime/internal/bookings/validator"
	"stagetime/pkg/config"
	apperrors "stagetime/pkg/errors"
	"stagetime/pkg/events"
	"stagetime/pkg/model"
	"stagetime/pkg/sanitizer"
)

type BookingService interface {
	Submit(ctx context.Context, booking *model.Booking) (*model.AvailabilityCheck, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	ListByOwner(ctx context.Context, ownerID string, statuses []model.BookingStatus, limit int, offset int64) ([]*model.Booking, int64, error)
	Confirm(ctx context.Context, id, actorID string) (*model.Booking, error)
	Decline(ctx context.Context, id, actorID string) (*model.Booking, error)
	Complete(ctx context.Context, id, actorID string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	resolver  *ConflictResolver
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	resolver *ConflictResolver,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		resolver:  resolver,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Submit records a booking request. Requests always enter pending, even
// when the window is already blocked; the returned advisory tells the
// counterparty what the owner's calendar says right now. The authoritative
// conflict check happens at confirmation.
func (s *bookingService) Submit(ctx context.Context, booking *model.Booking) (*model.AvailabilityCheck, error) {
	booking.Status = model.StatusPending
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	advisory := s.advisoryCheck(ctx, booking)

	s.cfg.Log.Info("Booking submitted",
		"id", booking.ID,
		"owner_id", booking.OwnerID,
		"counterparty_id", booking.CounterpartyID,
		"event_date", booking.EventDate,
		"available_now", advisory.Available,
	)
	return advisory, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) ListByOwner(ctx context.Context, ownerID string, statuses []model.BookingStatus, limit int, offset int64) ([]*model.Booking, int64, error) {
	if ownerID == "" {
		return nil, 0, apperrors.InvalidInput("Owner ID cannot be empty")
	}
	for _, st := range statuses {
		if !st.Valid() {
			return nil, 0, apperrors.InvalidInput(fmt.Sprintf("invalid status filter: %s", st))
		}
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByOwner(ctx, ownerID, statuses)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings by owner", "owner_id", ownerID, "error", err)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.FindByOwner(ctx, ownerID, statuses, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to list bookings by owner", "owner_id", ownerID, "error", err)
			errFind = apperrors.Internal("Failed to retrieve bookings", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// Confirm moves a pending booking to confirmed. The owner's calendar and
// the confirmed set are re-checked inside a transaction while a slot lock
// on (owner, date) keeps parallel confirms for the same day serialized.
func (s *bookingService) Confirm(ctx context.Context, id, actorID string) (*model.Booking, error) {
	booking, err := s.loadForTransition(ctx, id, actorID, model.StatusConfirmed)
	if err != nil {
		return nil, err
	}

	lockID, err := s.acquireSlotLock(ctx, booking.OwnerID, booking.EventDate)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		if err := s.resolver.Evaluate(txCtx, booking, booking.ID); err != nil {
			return err
		}
		return s.updateStatus(txCtx, booking, model.StatusPending, model.StatusConfirmed)
	})
	if err != nil {
		s.cfg.Log.Error("Failed to confirm booking", "id", id, "error", err)
		return nil, err
	}

	booking.Status = model.StatusConfirmed
	s.publisher.PublishTransition(booking, model.StatusPending, model.StatusConfirmed)

	s.cfg.Log.Info("Booking confirmed", "id", id, "owner_id", booking.OwnerID, "event_date", booking.EventDate)
	return booking, nil
}

// Decline needs no conflict check: refusing work never creates conflicts.
func (s *bookingService) Decline(ctx context.Context, id, actorID string) (*model.Booking, error) {
	booking, err := s.loadForTransition(ctx, id, actorID, model.StatusDeclined)
	if err != nil {
		return nil, err
	}

	if err := s.updateStatus(ctx, booking, model.StatusPending, model.StatusDeclined); err != nil {
		s.cfg.Log.Error("Failed to decline booking", "id", id, "error", err)
		return nil, err
	}

	booking.Status = model.StatusDeclined
	s.publisher.PublishTransition(booking, model.StatusPending, model.StatusDeclined)

	s.cfg.Log.Info("Booking declined", "id", id, "owner_id", booking.OwnerID)
	return booking, nil
}

// Complete closes out a confirmed booking once its event has ended.
func (s *bookingService) Complete(ctx context.Context, id, actorID string) (*model.Booking, error) {
	booking, err := s.loadForTransition(ctx, id, actorID, model.StatusCompleted)
	if err != nil {
		return nil, err
	}

	window, err := booking.Window()
	if err != nil {
		return nil, apperrors.Internal("Stored booking window is malformed", err)
	}
	end, err := model.EventEnd(booking.EventDate, window)
	if err != nil {
		return nil, apperrors.Internal("Stored booking date is malformed", err)
	}
	if s.now().UTC().Before(end) {
		return nil, apperrors.PrematureCompletion(booking.ID, booking.EventDate)
	}

	if err := s.updateStatus(ctx, booking, model.StatusConfirmed, model.StatusCompleted); err != nil {
		s.cfg.Log.Error("Failed to complete booking", "id", id, "error", err)
		return nil, err
	}

	booking.Status = model.StatusCompleted
	s.publisher.PublishTransition(booking, model.StatusConfirmed, model.StatusCompleted)

	s.cfg.Log.Info("Booking completed", "id", id, "owner_id", booking.OwnerID)
	return booking, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.EventTitle = sanitizer.SanitizeTitle(b.EventTitle)
	b.Note = sanitizer.SanitizeNote(b.Note)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// loadForTransition fetches the booking, checks the actor may perform the
// move and the state machine allows it.
func (s *bookingService) loadForTransition(ctx context.Context, id, actorID string, target model.BookingStatus) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actorMayTransition(booking, actorID, target) {
		if target == model.StatusCompleted {
			return nil, apperrors.Forbidden("Only a party to the booking may complete it")
		}
		return nil, apperrors.Forbidden("Only the booking's owner may change its status")
	}

	if !booking.Status.CanTransitionTo(target) {
		return nil, apperrors.InvalidTransition(booking.ID, string(booking.Status), string(target))
	}

	return booking, nil
}

// Confirm and decline are the owner's calls. Completion is bookkeeping that
// either party may perform once the event has passed.
func actorMayTransition(booking *model.Booking, actorID string, target model.BookingStatus) bool {
	if actorID == "" {
		return false
	}
	if target == model.StatusCompleted {
		return actorID == booking.OwnerID || actorID == booking.CounterpartyID
	}
	return actorID == booking.OwnerID
}

func (s *bookingService) updateStatus(ctx context.Context, booking *model.Booking, from, to model.BookingStatus) error {
	err := s.repo.UpdateStatus(ctx, booking.ID, from, to)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrStatusChanged) {
			return apperrors.ConcurrentModification(booking.OwnerID, booking.EventDate)
		}
		return apperrors.Internal("Failed to update booking status", err)
	}
	return nil
}

// advisoryCheck runs the resolver read-only after submission. Failures
// degrade to "unknown availability" rather than failing the submit.
func (s *bookingService) advisoryCheck(ctx context.Context, booking *model.Booking) *model.AvailabilityCheck {
	check := &model.AvailabilityCheck{
		OwnerID:   booking.OwnerID,
		Date:      booking.EventDate,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
		Available: true,
	}

	if err := s.resolver.Evaluate(ctx, booking, booking.ID); err != nil {
		appErr := apperrors.AsAppError(err)
		if appErr.Code == apperrors.CodeInternal {
			s.cfg.Log.Warn("Advisory availability check failed", "booking_id", booking.ID, "error", err)
			check.Reason = "UNKNOWN"
			return check
		}
		check.Available = false
		check.Reason = appErr.Code
		check.Details = appErr.Details
	}

	return check
}

func (s *bookingService) acquireSlotLock(ctx context.Context, ownerID, date string) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s", ownerID, date)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: s.now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This date is currently being confirmed by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
