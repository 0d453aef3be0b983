package reservation

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrNotFound         = errors.New("reservation not found")
	ErrPlaceNotFound    = errors.New("place not found")
	ErrForbidden        = errors.New("forbidden")
	ErrNotAvailable     = errors.New("place is not available for the selected dates")

	// ErrInvalidTransition covers both a guard violation and losing a
	// concurrent race: in either case the requested transition did not
	// apply and the stored status is unchanged.
	ErrInvalidTransition = errors.New("invalid status transition")
)
