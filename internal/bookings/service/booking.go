package service

import (
	"context"
	"errors"
	"fmt"
	bookingserrors "roost/internal/bookings/errors"
	"roost/internal/bookings/repository"
	"roost/internal/bookings/validator"
	"roost/internal/notifications"
	"roost/pkg/config"
	apperrors "roost/pkg/errors"
	"roost/pkg/model"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// PropertyStore is the slice of the properties repository the admission
// engine needs: resolving the listing and claiming auto-approval slots.
type PropertyStore interface {
	FindByID(ctx context.Context, id string) (*model.Property, error)
	ConsumeAutoApproval(ctx context.Context, id string) (bool, error)
}

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetByGuest(ctx context.Context, guestID string, limit int, offset int64) ([]*model.Booking, int64, error)
	GetByHost(ctx context.Context, hostID string, limit int, offset int64) ([]*model.Booking, int64, error)
	GetPastByGuest(ctx context.Context, guestID string, limit int, offset int64) ([]*model.Booking, error)
	SetStatus(ctx context.Context, id string, hostID string, status string) (*model.Booking, error)
	MarkReviewed(ctx context.Context, id string, guestID string) error
}

type bookingService struct {
	repo       repository.BookingRepository
	lockRepo   repository.BookingLockRepository
	properties PropertyStore
	validator  *validator.BookingValidator
	notifier   notifications.Notifier
	cfg        *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	properties PropertyStore,
	validator *validator.BookingValidator,
	notifier notifications.Notifier,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		lockRepo:   lockRepo,
		properties: properties,
		validator:  validator,
		notifier:   notifier,
		cfg:        cfg,
	}
}

// Create runs the full admission pipeline: validation, property resolution,
// per-property lock, conflict check, quote, admission decision, insert. The
// conflict check and the insert share one transaction so no booking can slip
// in between them.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	property, err := s.resolveProperty(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	lockID, err := s.acquireAdmissionLock(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseAdmissionLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release admission lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	var booking *model.Booking
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindOverlapping(sessCtx, req.PropertyID, req.CheckIn, req.CheckOut)
		if err != nil {
			return translateStoreError("Failed to check existing bookings", err)
		}
		if len(existing) > 0 {
			return apperrors.Conflict(fmt.Sprintf(
				"%s (%s - %s)",
				bookingserrors.ErrDateConflict.Error(),
				existing[0].CheckIn.Format(time.RFC3339),
				existing[0].CheckOut.Format(time.RFC3339),
			))
		}

		quote, err := ComputeQuote(property, req.CheckIn, req.CheckOut, req.Extras)
		if err != nil {
			return s.translatePricingError(err, property)
		}

		status, err := s.decideAdmission(sessCtx, property)
		if err != nil {
			return err
		}

		booking = s.assembleBooking(req, property, quote, status)
		if err := s.validator.ValidateBooking(booking); err != nil {
			s.cfg.Log.Warn("Booking validation failed",
				"property_id", req.PropertyID,
				"guest_id", req.GuestID,
				"error", err,
			)
			return apperrors.Validation("Booking validation failed", map[string]any{
				"error": err.Error(),
			})
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return translateStoreError("Failed to create booking", err)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"property_id", req.PropertyID,
			"guest_id", req.GuestID,
			"error", err,
		)
		return nil, err
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"property_id", booking.PropertyID,
		"guest_id", booking.GuestID,
		"status", booking.Status,
		"total_price", booking.TotalPrice,
	)

	s.notifier.BookingCreated(ctx, booking)

	return booking, nil
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
		return nil, translateStoreError("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetByGuest(ctx context.Context, guestID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if guestID == "" {
		return nil, 0, apperrors.InvalidInput("Guest ID cannot be empty")
	}
	return s.listWithCount(ctx,
		func(ctx context.Context) ([]*model.Booking, error) {
			return s.repo.FindByGuest(ctx, guestID, limit, offset)
		},
		func(ctx context.Context) (int64, error) {
			return s.repo.CountByGuest(ctx, guestID)
		},
	)
}

func (s *bookingService) GetByHost(ctx context.Context, hostID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if hostID == "" {
		return nil, 0, apperrors.InvalidInput("Host ID cannot be empty")
	}
	return s.listWithCount(ctx,
		func(ctx context.Context) ([]*model.Booking, error) {
			return s.repo.FindByHost(ctx, hostID, limit, offset)
		},
		func(ctx context.Context) (int64, error) {
			return s.repo.CountByHost(ctx, hostID)
		},
	)
}

func (s *bookingService) GetPastByGuest(ctx context.Context, guestID string, limit int, offset int64) ([]*model.Booking, error) {
	if guestID == "" {
		return nil, apperrors.InvalidInput("Guest ID cannot be empty")
	}

	bookings, err := s.repo.FindPastByGuest(ctx, guestID, time.Now(), limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list past bookings", "guest_id", guestID, "error", err)
		return nil, translateStoreError("Failed to retrieve past bookings", err)
	}

	return bookings, nil
}

// SetStatus applies a host decision to a pending booking. Confirming through
// the approve-first-five policy consumes an auto-approval slot in the same
// transaction as the status flip.
func (s *bookingService) SetStatus(ctx context.Context, id string, hostID string, status string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if hostID == "" {
		return nil, apperrors.InvalidInput("Host ID cannot be empty")
	}
	if status != model.StatusConfirmed && status != model.StatusDeclined {
		return nil, apperrors.Conflict(fmt.Sprintf("Target status must be %s or %s", model.StatusConfirmed, model.StatusDeclined))
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.HostID != hostID {
		return nil, apperrors.Forbidden(bookingserrors.ErrNotAuthorized.Error())
	}

	if booking.Status != model.StatusPending {
		return nil, apperrors.Conflict(fmt.Sprintf(
			"Booking is %s; only pending bookings can be confirmed or declined",
			booking.Status,
		))
	}

	// The pending check above is only a fast path; the pending->target flip
	// itself is a compare-and-swap, so a concurrent decision that got there
	// first makes this one fail instead of overwriting. The counter increment
	// comes after the flip in the same transaction, so a losing confirm never
	// consumes an auto-approval slot.
	previousStatus := booking.Status
	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.UpdateStatus(sessCtx, id, model.StatusPending, status); err != nil {
			if errors.Is(err, bookingserrors.ErrInvalidTransition) {
				return apperrors.Conflict("Booking is no longer pending; only pending bookings can be confirmed or declined")
			}
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return translateStoreError("Failed to update booking status", err)
		}
		if status == model.StatusConfirmed {
			if _, err := s.properties.ConsumeAutoApproval(sessCtx, booking.PropertyID); err != nil {
				return apperrors.Internal("Failed to update auto-approval counter", err)
			}
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to set booking status",
			"id", id,
			"status", status,
			"error", err,
		)
		return nil, err
	}

	booking.Status = status

	s.cfg.Log.Info("Booking status changed",
		"id", id,
		"previous_status", previousStatus,
		"new_status", status,
		"host_id", hostID,
	)

	s.notifier.BookingStatusChanged(ctx, booking, previousStatus)

	return booking, nil
}

func (s *bookingService) MarkReviewed(ctx context.Context, id string, guestID string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if guestID == "" {
		return apperrors.InvalidInput("Guest ID cannot be empty")
	}

	if err := s.repo.MarkReviewed(ctx, id, guestID); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid booking ID format")
		}
		s.cfg.Log.Error("Failed to mark booking reviewed", "id", id, "error", err)
		return translateStoreError("Failed to mark booking reviewed", err)
	}

	s.cfg.Log.Info("Booking marked reviewed", "id", id, "guest_id", guestID)

	return nil
}

// --- Helpers ---

func (s *bookingService) validateRequest(req *model.BookingRequest) error {
	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return apperrors.InvalidInput(bookingserrors.ErrInvalidDate.Error())
	}
	if !req.CheckOut.After(req.CheckIn) {
		return apperrors.InvalidInput(bookingserrors.ErrInvalidRange.Error())
	}
	if req.CheckOut.Before(time.Now()) {
		return apperrors.InvalidInput(bookingserrors.ErrPastBooking.Error())
	}

	if err := s.validator.ValidateRequest(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed",
			"property_id", req.PropertyID,
			"error", err,
		)
		return apperrors.Validation("Booking request validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	return nil
}

func (s *bookingService) resolveProperty(ctx context.Context, propertyID string) (*model.Property, error) {
	property, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		// Repository sentinels from the properties side both mean the
		// listing cannot be booked.
		return nil, apperrors.NotFoundWithID("Property", propertyID)
	}
	if !property.Active {
		return nil, apperrors.NotFoundWithID("Property", propertyID)
	}

	return property, nil
}

// decideAdmission maps the property's booking settings onto the initial
// status. Instant book without the first-five policy always confirms.
// Instant book with the policy confirms only while the conditional counter
// increment still matches; after the quota the booking falls back to pending
// host review.
func (s *bookingService) decideAdmission(ctx context.Context, property *model.Property) (string, error) {
	if !property.BookingSettings.InstantBook {
		return model.StatusPending, nil
	}

	if !property.BookingSettings.ApproveFirstFive {
		return model.StatusConfirmed, nil
	}

	consumed, err := s.properties.ConsumeAutoApproval(ctx, property.ID)
	if err != nil {
		return "", apperrors.Internal("Failed to update auto-approval counter", err)
	}
	if consumed {
		return model.StatusConfirmed, nil
	}
	return model.StatusPending, nil
}

func (s *bookingService) assembleBooking(req *model.BookingRequest, property *model.Property, quote *Quote, status string) *model.Booking {
	return &model.Booking{
		PropertyID:      req.PropertyID,
		GuestID:         req.GuestID,
		HostID:          property.HostID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          req.Guests,
		Extras:          quote.Extras,
		TotalPrice:      quote.Total,
		DiscountApplied: quote.Discount,
		TotalNights:     quote.Nights,
		TotalHours:      quote.Hours,
		Status:          status,
	}
}

// translateStoreError separates transient store failures from everything
// else so callers can retry on 503/504 instead of treating the booking as
// rejected.
func translateStoreError(message string, err error) error {
	switch {
	case mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded):
		return apperrors.Timeout(message)
	case mongo.IsNetworkError(err):
		return apperrors.Unavailable("Booking store")
	default:
		return apperrors.Internal(message, err)
	}
}

func (s *bookingService) translatePricingError(err error, property *model.Property) error {
	switch {
	case errors.Is(err, bookingserrors.ErrPriceNotConfigured):
		return apperrors.Validation(err.Error(), map[string]any{
			"pricing_type": property.Pricing.PricingType,
		})
	case errors.Is(err, bookingserrors.ErrMinimumDurationNotMet):
		return apperrors.Validation(err.Error(), map[string]any{
			"min_hours": property.Pricing.MinHours,
		})
	default:
		return apperrors.Internal("Failed to price booking", err)
	}
}

// acquireAdmissionLock serializes admission per property. The lock _id is
// derived from the property alone, so concurrent requests for any dates on
// the same property contend on the unique index.
func (s *bookingService) acquireAdmissionLock(ctx context.Context, propertyID string) (string, error) {
	lockID := fmt.Sprintf("property_lock_%s", propertyID)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.AdmissionLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This property is currently being booked by another request. Please try again.")
		}
		return "", translateStoreError("Failed to acquire admission lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseAdmissionLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}

func (s *bookingService) listWithCount(
	ctx context.Context,
	find func(ctx context.Context) ([]*model.Booking, error),
	count func(ctx context.Context) (int64, error),
) ([]*model.Booking, int64, error) {
	var total int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		total, errCount = count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = find(ctx)
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

	return bookings, total, nil
}
