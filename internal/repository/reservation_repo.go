package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// DateRange is a booked interval returned by the availability query.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	err := r.db.WithContext(ctx).
		Preload("Place").
		Preload("User").
		First(&m, id).Error
	if err != nil {
		return nil, mapGormErr(err)
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) GetByUserID(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	var ms []reservationModel
	err := r.db.WithContext(ctx).
		Preload("Place").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Reservation, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// GetByOwnerID returns every reservation on places hosted by the owner.
func (r *ReservationRepository) GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Reservation, error) {
	var ms []reservationModel
	err := r.db.WithContext(ctx).
		Preload("Place").
		Preload("User").
		Joins("JOIN places ON places.id = reservations.place_id").
		Where("places.host_id = ?", ownerID).
		Order("reservations.created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Reservation, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// TransitionStatus applies a status change as a single conditional
// update keyed on the expected prior status. It reports false when the
// row was not in `from` anymore (or does not exist); the caller lost
// the race and must not treat the transition as applied.
func (r *ReservationRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// CountOverlapping counts live reservations (pending or confirmed) on
// the place whose date range intersects [start, end).
func (r *ReservationRepository) CountOverlapping(ctx context.Context, placeID int64, start, end time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("place_id = ? AND status IN ? AND start_date < ? AND end_date > ?",
			placeID,
			[]string{string(domain.ReservationPending), string(domain.ReservationConfirmed)},
			end, start).
		Count(&cnt).Error
	return cnt, err
}

// BookedRanges lists the occupied intervals of a place inside [from, to).
func (r *ReservationRepository) BookedRanges(ctx context.Context, placeID int64, from, to time.Time) ([]DateRange, error) {
	var ms []reservationModel
	err := r.db.WithContext(ctx).
		Select("start_date", "end_date").
		Where("place_id = ? AND status IN ? AND start_date < ? AND end_date > ?",
			placeID,
			[]string{string(domain.ReservationPending), string(domain.ReservationConfirmed)},
			to, from).
		Order("start_date").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]DateRange, 0, len(ms))
	for _, m := range ms {
		out = append(out, DateRange{Start: m.StartDate, End: m.EndDate})
	}
	return out, nil
}

// StatsByOwner aggregates the dashboard counters from persisted rows.
// Revenue sums totalPrice over confirmed and completed reservations.
func (r *ReservationRepository) StatsByOwner(ctx context.Context, ownerID int64) (*domain.ReservationStats, error) {
	rows := []struct {
		Status string
		Cnt    int
		Sum    float64
	}{}
	err := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Select("reservations.status AS status, COUNT(1) AS cnt, COALESCE(SUM(reservations.total_price), 0) AS sum").
		Joins("JOIN places ON places.id = reservations.place_id").
		Where("places.host_id = ?", ownerID).
		Group("reservations.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &domain.ReservationStats{}
	for _, row := range rows {
		stats.Total += row.Cnt
		switch domain.ReservationStatus(row.Status) {
		case domain.ReservationPending:
			stats.Pending = row.Cnt
		case domain.ReservationConfirmed:
			stats.Confirmed = row.Cnt
			stats.TotalRevenue += row.Sum
		case domain.ReservationCompleted:
			stats.Completed = row.Cnt
			stats.TotalRevenue += row.Sum
		case domain.ReservationCancelled:
			stats.Cancelled = row.Cnt
		}
	}
	return stats, nil
}
