package place

import (
	"context"
	"time"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/repository"
)

// PlaceRepository defines the storage the place service needs.
type PlaceRepository interface {
	Create(ctx context.Context, p *domain.Place) error
	GetByID(ctx context.Context, id int64) (*domain.Place, error)
	GetAll(ctx context.Context) ([]domain.Place, error)
}

// AvailabilityReader exposes the booked intervals of a place.
type AvailabilityReader interface {
	BookedRanges(ctx context.Context, placeID int64, from, to time.Time) ([]repository.DateRange, error)
}
