package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v76"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
)

type reservationReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}

type paymentConfirmer interface {
	ConfirmFromPayment(ctx context.Context, id int64) error
}

// SessionCreator abstracts the provider call so tests can run without
// Stripe credentials.
type SessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}
