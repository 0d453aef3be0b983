package review

import (
	"context"
	"errors"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/repository"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByPlaceID(ctx context.Context, placeID int64) ([]domain.Review, error)
}

type placeReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Place, error)
}

type Service struct {
	reviews ReviewRepository
	places  placeReader
}

func NewService(reviews ReviewRepository, places placeReader) *Service {
	return &Service{reviews: reviews, places: places}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateReviewRequest) (*domain.Review, error) {
	if _, err := s.places.GetByID(ctx, req.Place); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}

	rv := &domain.Review{
		PlaceID: req.Place,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Service) GetByPlace(ctx context.Context, placeID int64) ([]domain.Review, error) {
	return s.reviews.GetByPlaceID(ctx, placeID)
}
