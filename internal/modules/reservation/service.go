package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/modules/notify"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/repository"
)

type Service struct {
	reservations ReservationRepository
	places       PlaceReader
	notifier     OwnerNotifier
	log          *zap.Logger
}

func NewService(reservations ReservationRepository, places PlaceReader, notifier OwnerNotifier, log *zap.Logger) *Service {
	return &Service{
		reservations: reservations,
		places:       places,
		notifier:     notifier,
		log:          log,
	}
}

// Create validates the request, computes the total price from the
// place's nightly rate and persists a pending reservation. The price
// is frozen here; later price changes on the place never touch it.
func (s *Service) Create(ctx context.Context, userID int64, req CreateReservationRequest) (*domain.Reservation, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", ErrValidation)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date", ErrValidation)
	}
	if req.NumberOfGuests < 1 {
		return nil, fmt.Errorf("%w: at least one guest is required", ErrValidation)
	}

	start, end = domain.DayStart(start), domain.DayStart(end)
	days := domain.DurationInDays(start, end)
	if days <= 0 {
		return nil, ErrInvalidDateRange
	}

	place, err := s.places.GetByID(ctx, int64(req.Place))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	overlapping, err := s.reservations.CountOverlapping(ctx, place.ID, start, end)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrNotAvailable
	}

	r := &domain.Reservation{
		PlaceID:        place.ID,
		UserID:         userID,
		StartDate:      start,
		EndDate:        end,
		NumberOfGuests: req.NumberOfGuests,
		TotalPrice:     domain.TotalPriceFor(start, end, place.Price),
		Status:         domain.ReservationPending,
	}

	if err := s.reservations.Create(ctx, r); err != nil {
		// the overlap pre-check can lose a race; postgres enforces it
		// with an exclusion constraint as the backstop
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505") {
			return nil, ErrNotAvailable
		}
		return nil, err
	}
	r.Place = place

	s.log.Info("reservation created",
		zap.Int64("reservation_id", r.ID),
		zap.Int64("place_id", place.ID),
		zap.Int64("user_id", userID),
		zap.Float64("total_price", r.TotalPrice),
		zap.Int("nights", days),
	)

	s.notifyOwner(place.HostID, notify.EventReservationCreated, r)
	return r, nil
}

func (s *Service) GetUserReservations(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	return s.reservations.GetByUserID(ctx, userID)
}

// Get returns a reservation to one of its participants: the booking
// user or the owner of the place.
func (s *Service) Get(ctx context.Context, id, actorID int64) (*domain.Reservation, error) {
	r, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != actorID && (r.Place == nil || r.Place.HostID != actorID) {
		return nil, ErrForbidden
	}
	return r, nil
}

// Transition applies a requested status change for the given actor.
// The domain rules decide whether the transition is legal; the
// conditional update makes it atomic against concurrent actors: the
// loser of a race observes ErrInvalidTransition and no change.
func (s *Service) Transition(ctx context.Context, id int64, action domain.ReservationAction, actorID int64, actorRole domain.Role) (*domain.Reservation, error) {
	r, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actorRole {
	case domain.RoleUser:
		if r.UserID != actorID {
			return nil, ErrForbidden
		}
	case domain.RoleOwner:
		if r.Place == nil || r.Place.HostID != actorID {
			return nil, ErrForbidden
		}
	case domain.RoleSystem:
		// trusted internal actor, no ownership check
	default:
		return nil, ErrForbidden
	}

	next, err := domain.Transition(r.Status, action, actorRole)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return nil, ErrForbidden
		}
		return nil, ErrInvalidTransition
	}

	applied, err := s.reservations.TransitionStatus(ctx, r.ID, r.Status, next)
	if err != nil {
		return nil, err
	}
	if !applied {
		// someone else moved the reservation first
		return nil, ErrInvalidTransition
	}

	s.log.Info("reservation transitioned",
		zap.Int64("reservation_id", r.ID),
		zap.String("from", string(r.Status)),
		zap.String("to", string(next)),
		zap.String("actor_role", string(actorRole)),
	)

	r.Status = next
	r.UpdatedAt = time.Now().UTC()
	if r.Place != nil {
		s.notifyOwner(r.Place.HostID, eventForStatus(next), r)
	}
	return r, nil
}

// ConfirmFromPayment is called by the payment webhook once the
// checkout session is paid. A reservation the owner confirmed while
// the payment was in flight is left as-is.
func (s *Service) ConfirmFromPayment(ctx context.Context, id int64) error {
	r, err := s.getByID(ctx, id)
	if err != nil {
		return err
	}

	if r.Status == domain.ReservationConfirmed {
		s.log.Info("payment confirmation for already confirmed reservation",
			zap.Int64("reservation_id", id))
		return nil
	}

	_, err = s.Transition(ctx, id, domain.ActionConfirm, 0, domain.RoleSystem)
	if errors.Is(err, ErrInvalidTransition) {
		// re-read: losing to a concurrent owner confirm is fine, any
		// other state is not
		current, rerr := s.getByID(ctx, id)
		if rerr == nil && current.Status == domain.ReservationConfirmed {
			return nil
		}
	}
	return err
}

// OwnerOverview returns every reservation on the owner's places along
// with the dashboard counters, both computed from persisted rows.
func (s *Service) OwnerOverview(ctx context.Context, ownerID int64) ([]domain.Reservation, *domain.ReservationStats, error) {
	rs, err := s.reservations.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.reservations.StatsByOwner(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return rs, stats, nil
}

func (s *Service) getByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *Service) notifyOwner(ownerID int64, eventType string, r *domain.Reservation) {
	if s.notifier == nil {
		return
	}
	delivered := s.notifier.Notify(ownerID, notify.Event{
		Type:          eventType,
		ReservationID: r.ID,
		PlaceID:       r.PlaceID,
		Status:        r.Status,
		TotalPrice:    r.TotalPrice,
		At:            time.Now().UTC(),
	})
	if !delivered {
		s.log.Debug("owner offline, event dropped",
			zap.Int64("owner_id", ownerID),
			zap.String("event", eventType),
		)
	}
}

func eventForStatus(status domain.ReservationStatus) string {
	switch status {
	case domain.ReservationConfirmed:
		return notify.EventReservationConfirmed
	case domain.ReservationCompleted:
		return notify.EventReservationCompleted
	case domain.ReservationCancelled:
		return notify.EventReservationCancelled
	default:
		return notify.EventReservationCreated
	}
}

// parseDate accepts RFC3339 timestamps (what the frontend's date
// picker produces) or plain dates; either way only the day matters.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", v)
}
