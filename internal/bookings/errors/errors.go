package errors

import "errors"

// Rejection reasons surfaced by the admission engine. The service layer
// translates these into HTTP-mapped application errors.
var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrInvalidDate = errors.New("check-in and check-out must be valid timestamps")

	ErrInvalidRange = errors.New("check-out must be after check-in")

	ErrPastBooking = errors.New("booking window has already ended")

	ErrDateConflict = errors.New("requested dates conflict with an existing booking")

	ErrPriceNotConfigured = errors.New("property has no price configured for its pricing type")

	ErrMinimumDurationNotMet = errors.New("booking is shorter than the property's minimum hours")

	ErrNotAuthorized = errors.New("caller is not the booking's host")

	ErrInvalidTransition = errors.New("booking status does not allow this transition")
)
