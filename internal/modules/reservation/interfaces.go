package reservation

import (
	"context"
	"time"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/modules/notify"
)

// ReservationRepository defines the storage the reservation service uses.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Reservation, error)
	GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Reservation, error)
	TransitionStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) (bool, error)
	CountOverlapping(ctx context.Context, placeID int64, start, end time.Time) (int64, error)
	StatsByOwner(ctx context.Context, ownerID int64) (*domain.ReservationStats, error)
}

// PlaceReader resolves the place a reservation is made against.
type PlaceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Place, error)
}

// OwnerNotifier pushes reservation events to the place owner.
// Implementations must never block the request path.
type OwnerNotifier interface {
	Notify(ownerID int64, ev notify.Event) bool
}
