package checkout

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/repository"
)

type MockReservationReader struct {
	mock.Mock
}

func (m *MockReservationReader) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

type MockPaymentConfirmer struct {
	mock.Mock
}

func (m *MockPaymentConfirmer) ConfirmFromPayment(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSessionCreator struct {
	mock.Mock
}

func (m *MockSessionCreator) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}

const testWebhookSecret = "whsec_test"

func newTestService(reservations *MockReservationReader, confirmer *MockPaymentConfirmer, sessions *MockSessionCreator) *Service {
	return NewService(reservations, confirmer, sessions, testWebhookSecret, "http://localhost:5173", zap.NewNop())
}

func pendingReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:         42,
		UserID:     7,
		PlaceID:    3,
		TotalPrice: 150.0,
		Status:     domain.ReservationPending,
		Place:      &domain.Place{ID: 3, Title: "Loft lumineux"},
	}
}

func TestCreateSession_Success(t *testing.T) {
	reservations := new(MockReservationReader)
	confirmer := new(MockPaymentConfirmer)
	sessions := new(MockSessionCreator)
	svc := newTestService(reservations, confirmer, sessions)

	reservations.On("GetByID", mock.Anything, int64(42)).Return(pendingReservation(), nil)
	sessions.On("New", mock.MatchedBy(func(params *stripe.CheckoutSessionParams) bool {
		if len(params.LineItems) != 1 {
			return false
		}
		item := params.LineItems[0]
		return *item.PriceData.UnitAmount == 15000 &&
			*item.PriceData.ProductData.Name == "Loft lumineux" &&
			params.Metadata["reservation_id"] == "42" &&
			*params.SuccessURL == "http://localhost:5173/reservations/42/success" &&
			*params.CancelURL == "http://localhost:5173/reservations/42/error"
	})).Return(&stripe.CheckoutSession{ID: "cs_test_123"}, nil)

	sessionID, err := svc.CreateSession(context.Background(), 42, 7)

	assert.NoError(t, err)
	assert.Equal(t, "cs_test_123", sessionID)
	sessions.AssertExpectations(t)
}

func TestCreateSession_ReservationNotFound(t *testing.T) {
	reservations := new(MockReservationReader)
	sessions := new(MockSessionCreator)
	svc := newTestService(reservations, new(MockPaymentConfirmer), sessions)

	reservations.On("GetByID", mock.Anything, int64(42)).Return(nil, repository.ErrNotFound)

	_, err := svc.CreateSession(context.Background(), 42, 7)

	assert.ErrorIs(t, err, ErrReservationNotFound)
	sessions.AssertNotCalled(t, "New", mock.Anything)
}

func TestCreateSession_WrongUser(t *testing.T) {
	reservations := new(MockReservationReader)
	sessions := new(MockSessionCreator)
	svc := newTestService(reservations, new(MockPaymentConfirmer), sessions)

	reservations.On("GetByID", mock.Anything, int64(42)).Return(pendingReservation(), nil)

	_, err := svc.CreateSession(context.Background(), 42, 999)

	assert.ErrorIs(t, err, ErrForbidden)
	sessions.AssertNotCalled(t, "New", mock.Anything)
}

func TestCreateSession_NotPending(t *testing.T) {
	for _, status := range []domain.ReservationStatus{
		domain.ReservationConfirmed,
		domain.ReservationCompleted,
		domain.ReservationCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			reservations := new(MockReservationReader)
			sessions := new(MockSessionCreator)
			svc := newTestService(reservations, new(MockPaymentConfirmer), sessions)

			r := pendingReservation()
			r.Status = status
			reservations.On("GetByID", mock.Anything, int64(42)).Return(r, nil)

			_, err := svc.CreateSession(context.Background(), 42, 7)

			assert.ErrorIs(t, err, ErrSessionCreation)
			sessions.AssertNotCalled(t, "New", mock.Anything)
		})
	}
}

func TestCreateSession_ProviderFailure(t *testing.T) {
	reservations := new(MockReservationReader)
	sessions := new(MockSessionCreator)
	svc := newTestService(reservations, new(MockPaymentConfirmer), sessions)

	reservations.On("GetByID", mock.Anything, int64(42)).Return(pendingReservation(), nil)
	sessions.On("New", mock.Anything).Return(nil, errors.New("stripe: api down"))

	_, err := svc.CreateSession(context.Background(), 42, 7)

	assert.ErrorIs(t, err, ErrSessionCreation)
}

// signPayload produces a Stripe-Signature header the verifier accepts.
func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestHandleWebhook_SessionCompleted(t *testing.T) {
	confirmer := new(MockPaymentConfirmer)
	svc := newTestService(new(MockReservationReader), confirmer, new(MockSessionCreator))

	payload := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_123", "metadata": {"reservation_id": "42"}}}
	}`)
	confirmer.On("ConfirmFromPayment", mock.Anything, int64(42)).Return(nil)

	err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))

	assert.NoError(t, err)
	confirmer.AssertExpectations(t)
}

func TestHandleWebhook_BadSignature(t *testing.T) {
	confirmer := new(MockPaymentConfirmer)
	svc := newTestService(new(MockReservationReader), confirmer, new(MockSessionCreator))

	payload := []byte(`{"id": "evt_1", "type": "checkout.session.completed"}`)

	err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, "whsec_other"))

	assert.ErrorIs(t, err, ErrInvalidWebhook)
	confirmer.AssertNotCalled(t, "ConfirmFromPayment", mock.Anything, mock.Anything)
}

func TestHandleWebhook_IgnoresOtherEvents(t *testing.T) {
	confirmer := new(MockPaymentConfirmer)
	svc := newTestService(new(MockReservationReader), confirmer, new(MockSessionCreator))

	payload := []byte(`{"id": "evt_2", "type": "payment_intent.created", "data": {"object": {}}}`)

	err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))

	assert.NoError(t, err)
	confirmer.AssertNotCalled(t, "ConfirmFromPayment", mock.Anything, mock.Anything)
}

func TestHandleWebhook_MissingMetadata(t *testing.T) {
	confirmer := new(MockPaymentConfirmer)
	svc := newTestService(new(MockReservationReader), confirmer, new(MockSessionCreator))

	payload := []byte(`{
		"id": "evt_3",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test_456"}}
	}`)

	err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))

	assert.ErrorIs(t, err, ErrInvalidWebhook)
	confirmer.AssertNotCalled(t, "ConfirmFromPayment", mock.Anything, mock.Anything)
}
