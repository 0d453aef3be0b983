package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/repository"
)

const metadataReservationID = "reservation_id"

// StripeSessionCreator is the production SessionCreator. The package
// level stripe.Key set at startup authenticates the call.
type StripeSessionCreator struct{}

func (StripeSessionCreator) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

type Service struct {
	reservations  reservationReader
	confirmer     paymentConfirmer
	sessions      SessionCreator
	webhookSecret string
	frontendURL   string
	log           *zap.Logger
}

func NewService(
	reservations reservationReader,
	confirmer paymentConfirmer,
	sessions SessionCreator,
	webhookSecret string,
	frontendURL string,
	log *zap.Logger,
) *Service {
	return &Service{
		reservations:  reservations,
		confirmer:     confirmer,
		sessions:      sessions,
		webhookSecret: webhookSecret,
		frontendURL:   frontendURL,
		log:           log,
	}
}

// CreateSession mints a provider checkout session for a pending
// reservation owned by the caller and returns its opaque id. The
// reservation itself is never touched; a failed or abandoned payment
// can retry with a fresh session against the same reservation.
func (s *Service) CreateSession(ctx context.Context, reservationID, userID int64) (string, error) {
	r, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrReservationNotFound
		}
		return "", err
	}

	if r.UserID != userID {
		return "", ErrForbidden
	}
	if r.Status != domain.ReservationPending {
		return "", fmt.Errorf("%w: reservation is %s, only pending reservations can be paid", ErrSessionCreation, r.Status)
	}

	name := "Reservation"
	if r.Place != nil {
		name = r.Place.Title
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyEUR)),
					UnitAmount: stripe.Int64(toCents(r.TotalPrice)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(fmt.Sprintf("%s/reservations/%d/success", s.frontendURL, r.ID)),
		CancelURL:  stripe.String(fmt.Sprintf("%s/reservations/%d/error", s.frontendURL, r.ID)),
	}
	params.AddMetadata(metadataReservationID, strconv.FormatInt(r.ID, 10))

	sess, err := s.sessions.New(params)
	if err != nil {
		s.log.Error("stripe session creation failed",
			zap.Int64("reservation_id", r.ID),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %v", ErrSessionCreation, err)
	}

	s.log.Info("checkout session created",
		zap.Int64("reservation_id", r.ID),
		zap.String("session_id", sess.ID),
		zap.Int64("amount_cents", toCents(r.TotalPrice)),
	)
	return sess.ID, nil
}

// HandleWebhook verifies the provider signature and reconciles the
// payment outcome into the reservation status. Only
// checkout.session.completed moves state; every other event type is
// acknowledged and dropped.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	if event.Type != "checkout.session.completed" {
		s.log.Debug("ignoring stripe event", zap.String("type", string(event.Type)))
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWebhook, err)
	}

	idStr, ok := sess.Metadata[metadataReservationID]
	if !ok {
		return fmt.Errorf("%w: missing %s metadata", ErrInvalidWebhook, metadataReservationID)
	}
	reservationID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad %s metadata %q", ErrInvalidWebhook, metadataReservationID, idStr)
	}

	s.log.Info("payment completed",
		zap.Int64("reservation_id", reservationID),
		zap.String("session_id", sess.ID),
	)
	return s.confirmer.ConfirmFromPayment(ctx, reservationID)
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
