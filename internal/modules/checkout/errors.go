package checkout

import "errors"

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrForbidden           = errors.New("forbidden")

	// ErrSessionCreation covers every reason a checkout session cannot
	// be minted: the reservation is not pending, or the provider call
	// failed. The reservation is never mutated in either case.
	ErrSessionCreation = errors.New("checkout session creation failed")

	ErrInvalidWebhook = errors.New("invalid webhook payload")
)
