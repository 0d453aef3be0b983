package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
)

// ErrNotFound is returned by every repository when the row does not exist.
var ErrNotFound = errors.New("record not found")

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

type placeModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	HostID      int64     `gorm:"column:host_id;index"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description;type:text"`
	Address     string    `gorm:"column:address"`
	Latitude    float64   `gorm:"column:latitude"`
	Longitude   float64   `gorm:"column:longitude"`
	Price       float64   `gorm:"column:price"`
	ImageName   string    `gorm:"column:image_name"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (placeModel) TableName() string { return "places" }

type reviewModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	PlaceID   int64     `gorm:"column:place_id;index"`
	UserID    int64     `gorm:"column:user_id"`
	Rating    int       `gorm:"column:rating"`
	Comment   string    `gorm:"column:comment;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

type reservationModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	PlaceID        int64     `gorm:"column:place_id;index"`
	UserID         int64     `gorm:"column:user_id;index"`
	StartDate      time.Time `gorm:"column:start_date"`
	EndDate        time.Time `gorm:"column:end_date"`
	NumberOfGuests int       `gorm:"column:number_of_guests"`
	TotalPrice     float64   `gorm:"column:total_price"`
	Status         string    `gorm:"column:status;index"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`

	Place *placeModel `gorm:"foreignKey:PlaceID"`
	User  *userModel  `gorm:"foreignKey:UserID"`
}

func (reservationModel) TableName() string { return "reservations" }

// AutoMigrate creates or updates the schema for every persisted model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&placeModel{},
		&reviewModel{},
		&reservationModel{},
	)
}

// EnsureReservationOverlapConstraint installs the exclusion constraint
// that keeps two live reservations from sharing dates on a place. The
// service pre-checks availability, but only this constraint closes the
// race between two concurrent creates: the loser's insert fails with
// SQLSTATE 23P01. PostgreSQL only; sqlite development databases rely
// on the pre-check alone.
func EnsureReservationOverlapConstraint(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist").Error; err != nil {
		return err
	}
	return db.Exec(`
DO $$
BEGIN
	IF NOT EXISTS (
		SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap'
	) THEN
		ALTER TABLE reservations
			ADD CONSTRAINT reservations_no_overlap
			EXCLUDE USING gist (
				place_id WITH =,
				tstzrange(start_date, end_date) WITH &&
			)
			WHERE (status IN ('pending', 'confirmed'));
	END IF;
END
$$`).Error
}

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func toDomainPlace(m placeModel) *domain.Place {
	return &domain.Place{
		ID:          m.ID,
		HostID:      m.HostID,
		Title:       m.Title,
		Description: m.Description,
		Address:     m.Address,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		Price:       m.Price,
		ImageName:   m.ImageName,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toPlaceModel(p *domain.Place) placeModel {
	return placeModel{
		ID:          p.ID,
		HostID:      p.HostID,
		Title:       p.Title,
		Description: p.Description,
		Address:     p.Address,
		Latitude:    p.Latitude,
		Longitude:   p.Longitude,
		Price:       p.Price,
		ImageName:   p.ImageName,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toDomainReview(m reviewModel) *domain.Review {
	return &domain.Review{
		ID:        m.ID,
		PlaceID:   m.PlaceID,
		UserID:    m.UserID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}

func toDomainReservation(m reservationModel) *domain.Reservation {
	r := &domain.Reservation{
		ID:             m.ID,
		PlaceID:        m.PlaceID,
		UserID:         m.UserID,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		NumberOfGuests: m.NumberOfGuests,
		TotalPrice:     m.TotalPrice,
		Status:         domain.ReservationStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Place != nil {
		r.Place = toDomainPlace(*m.Place)
	}
	if m.User != nil {
		r.User = toDomainUser(*m.User)
	}
	return r
}

func toReservationModel(r *domain.Reservation) reservationModel {
	return reservationModel{
		ID:             r.ID,
		PlaceID:        r.PlaceID,
		UserID:         r.UserID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		NumberOfGuests: r.NumberOfGuests,
		TotalPrice:     r.TotalPrice,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func mapGormErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
