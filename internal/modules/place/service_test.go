package place

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/repository"
)

type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) Create(ctx context.Context, p *domain.Place) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 321 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, id int64) (*domain.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetAll(ctx context.Context) ([]domain.Place, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Place), args.Error(1)
}

type MockAvailabilityReader struct {
	mock.Mock
}

func (m *MockAvailabilityReader) BookedRanges(ctx context.Context, placeID int64, from, to time.Time) ([]repository.DateRange, error) {
	args := m.Called(ctx, placeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.DateRange), args.Error(1)
}

func TestCreate_Success(t *testing.T) {
	places := new(MockPlaceRepository)
	svc := NewService(places, new(MockAvailabilityReader), t.TempDir(), zap.NewNop())

	places.On("Create", mock.Anything, mock.Anything).Return(nil)

	form := CreatePlaceForm{
		Title:       "Loft lumineux",
		Description: "Grand loft avec verriere.",
		Address:     "12 rue de la Republique, Lyon",
		Latitude:    45.764,
		Longitude:   4.8357,
		Price:       85,
	}
	p, err := svc.Create(context.Background(), 5, form, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(321), p.ID)
	assert.Equal(t, int64(5), p.HostID)
	assert.Empty(t, p.ImageName)
	places.AssertExpectations(t)
}

func TestCreate_InvalidForm(t *testing.T) {
	places := new(MockPlaceRepository)
	svc := NewService(places, new(MockAvailabilityReader), t.TempDir(), zap.NewNop())

	_, err := svc.Create(context.Background(), 5, CreatePlaceForm{Title: ""}, nil)

	assert.ErrorIs(t, err, ErrValidation)
	places.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGetByID_NotFound(t *testing.T) {
	places := new(MockPlaceRepository)
	svc := NewService(places, new(MockAvailabilityReader), t.TempDir(), zap.NewNop())

	places.On("GetByID", mock.Anything, int64(77)).Return(nil, repository.ErrNotFound)

	_, err := svc.GetByID(context.Background(), 77)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAvailability_ExplicitWindow(t *testing.T) {
	places := new(MockPlaceRepository)
	reservations := new(MockAvailabilityReader)
	svc := NewService(places, reservations, t.TempDir(), zap.NewNop())

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	ranges := []repository.DateRange{
		{Start: from.AddDate(0, 0, 4), End: from.AddDate(0, 0, 7)},
	}

	places.On("GetByID", mock.Anything, int64(3)).Return(&domain.Place{ID: 3}, nil)
	reservations.On("BookedRanges", mock.Anything, int64(3), from, to).Return(ranges, nil)

	avail, err := svc.Availability(context.Background(), 3, from, to)

	assert.NoError(t, err)
	assert.Equal(t, "2026-09-01", avail.From)
	assert.Equal(t, "2026-09-30", avail.To)
	assert.Len(t, avail.Booked, 1)
}

func TestAvailability_DefaultWindowIsThreeMonths(t *testing.T) {
	places := new(MockPlaceRepository)
	reservations := new(MockAvailabilityReader)
	svc := NewService(places, reservations, t.TempDir(), zap.NewNop())

	places.On("GetByID", mock.Anything, int64(3)).Return(&domain.Place{ID: 3}, nil)
	reservations.On("BookedRanges", mock.Anything, int64(3),
		mock.MatchedBy(func(from time.Time) bool { return !from.IsZero() }),
		mock.MatchedBy(func(to time.Time) bool { return !to.IsZero() }),
	).Return([]repository.DateRange{}, nil)

	avail, err := svc.Availability(context.Background(), 3, time.Time{}, time.Time{})

	assert.NoError(t, err)
	assert.Empty(t, avail.Booked)
	reservations.AssertExpectations(t)
}

func TestAvailability_EmptyWindow(t *testing.T) {
	places := new(MockPlaceRepository)
	reservations := new(MockAvailabilityReader)
	svc := NewService(places, reservations, t.TempDir(), zap.NewNop())

	from := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	places.On("GetByID", mock.Anything, int64(3)).Return(&domain.Place{ID: 3}, nil)

	_, err := svc.Availability(context.Background(), 3, from, from)

	assert.ErrorIs(t, err, ErrValidation)
	reservations.AssertNotCalled(t, "BookedRanges", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAvailability_UnknownPlace(t *testing.T) {
	places := new(MockPlaceRepository)
	svc := NewService(places, new(MockAvailabilityReader), t.TempDir(), zap.NewNop())

	places.On("GetByID", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)

	_, err := svc.Availability(context.Background(), 404, time.Time{}, time.Time{})

	assert.ErrorIs(t, err, ErrNotFound)
}
