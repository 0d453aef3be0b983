package place

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/pkg/validator"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/repository"
)

type Service struct {
	places       PlaceRepository
	reservations AvailabilityReader
	imageDir     string
	log          *zap.Logger
}

func NewService(places PlaceRepository, reservations AvailabilityReader, imageDir string, log *zap.Logger) *Service {
	return &Service{
		places:       places,
		reservations: reservations,
		imageDir:     imageDir,
		log:          log,
	}
}

// Create validates the form, stores the listing image on disk and
// persists the place for the host.
func (s *Service) Create(ctx context.Context, hostID int64, form CreatePlaceForm, image *multipart.FileHeader) (*domain.Place, error) {
	if fields := validator.Validate(form); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fields)
	}

	imageName := ""
	if image != nil {
		name, err := s.saveImage(hostID, image)
		if err != nil {
			return nil, err
		}
		imageName = name
	}

	p := &domain.Place{
		HostID:      hostID,
		Title:       form.Title,
		Description: form.Description,
		Address:     form.Address,
		Latitude:    form.Latitude,
		Longitude:   form.Longitude,
		Price:       form.Price,
		ImageName:   imageName,
	}
	if err := s.places.Create(ctx, p); err != nil {
		return nil, err
	}

	s.log.Info("place created",
		zap.Int64("place_id", p.ID),
		zap.Int64("host_id", hostID),
		zap.Float64("price", p.Price),
	)
	return p, nil
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Place, error) {
	return s.places.GetAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Place, error) {
	p, err := s.places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Availability returns the booked intervals of a place inside the
// window. When the bounds are missing, the next three months are used.
func (s *Service) Availability(ctx context.Context, placeID int64, from, to time.Time) (*AvailabilityResponse, error) {
	if _, err := s.GetByID(ctx, placeID); err != nil {
		return nil, err
	}

	if from.IsZero() {
		from = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if to.IsZero() {
		to = from.AddDate(0, 3, 0)
	}
	if !to.After(from) {
		return nil, fmt.Errorf("%w: empty availability window", ErrValidation)
	}

	booked, err := s.reservations.BookedRanges(ctx, placeID, from, to)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResponse{
		PlaceID: placeID,
		From:    from.Format("2006-01-02"),
		To:      to.Format("2006-01-02"),
		Booked:  booked,
	}, nil
}

func (s *Service) saveImage(hostID int64, image *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(image.Filename)
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", fmt.Errorf("%w: unsupported image type %q", ErrValidation, ext)
	}

	if err := os.MkdirAll(s.imageDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("place_%d_%d%s", hostID, time.Now().UnixNano(), ext)

	src, err := image.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.imageDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}
