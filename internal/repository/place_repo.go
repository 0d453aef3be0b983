package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
)

type PlaceRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

func (r *PlaceRepository) Create(ctx context.Context, p *domain.Place) error {
	m := toPlaceModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainPlace(m)
	return nil
}

func (r *PlaceRepository) GetByID(ctx context.Context, id int64) (*domain.Place, error) {
	var m placeModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapGormErr(err)
	}
	return toDomainPlace(m), nil
}

func (r *PlaceRepository) GetAll(ctx context.Context) ([]domain.Place, error) {
	var ms []placeModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Place, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainPlace(m))
	}
	return out, nil
}
