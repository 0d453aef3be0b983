package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/database"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
	"github.com/Virgile-Eratel/YDaysM1-api/internal/repository"
)

// Seeds a demo dataset: one owner with three places, two travellers
// and a reservation in every lifecycle status, so the owner dashboard
// has something to show on first run.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "ydays.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed:", err)
	}

	// cleanup in FK-safe order
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM places")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	places := repository.NewPlaceRepository(db)
	reviews := repository.NewReviewRepository(db)
	reservations := repository.NewReservationRepository(db)

	log.Println("Creating users...")
	owner := createUser(ctx, users, "owner@ydays.fr", "owner123", domain.RoleOwner)
	alice := createUser(ctx, users, "alice@ydays.fr", "user123", domain.RoleUser)
	bruno := createUser(ctx, users, "bruno@ydays.fr", "user123", domain.RoleUser)

	log.Println("Creating places...")
	seedPlaces := []domain.Place{
		{
			HostID:      owner.ID,
			Title:       "Loft lumineux au coeur de Lyon",
			Description: "Grand loft avec verriere, ideal pour un week-end en ville.",
			Address:     "12 rue de la Republique, Lyon",
			Latitude:    45.7640,
			Longitude:   4.8357,
			Price:       85,
		},
		{
			HostID:      owner.ID,
			Title:       "Maison de campagne avec jardin",
			Description: "Au calme, a 20 minutes de la gare. Jardin clos, barbecue.",
			Address:     "3 chemin des Vignes, Chaponost",
			Latitude:    45.7105,
			Longitude:   4.7426,
			Price:       120,
		},
		{
			HostID:      owner.ID,
			Title:       "Studio cosy proche des quais",
			Description: "Petit studio refait a neuf, parfait pour une personne.",
			Address:     "27 quai Saint-Vincent, Lyon",
			Latitude:    45.7681,
			Longitude:   4.8210,
			Price:       50,
		},
	}
	for i := range seedPlaces {
		if err := places.Create(ctx, &seedPlaces[i]); err != nil {
			log.Fatal("place creation failed:", err)
		}
	}

	log.Println("Creating reservations...")
	today := domain.DayStart(time.Now())
	createReservation(ctx, reservations, seedPlaces[0], alice, today.AddDate(0, 0, 7), today.AddDate(0, 0, 10), 2, domain.ReservationPending)
	createReservation(ctx, reservations, seedPlaces[1], alice, today.AddDate(0, 0, 14), today.AddDate(0, 0, 21), 4, domain.ReservationConfirmed)
	createReservation(ctx, reservations, seedPlaces[0], bruno, today.AddDate(0, 0, -30), today.AddDate(0, 0, -27), 1, domain.ReservationCompleted)
	createReservation(ctx, reservations, seedPlaces[2], bruno, today.AddDate(0, 0, 3), today.AddDate(0, 0, 5), 1, domain.ReservationCancelled)

	log.Println("Creating reviews...")
	seedReviews := []domain.Review{
		{PlaceID: seedPlaces[0].ID, UserID: bruno.ID, Rating: 5, Comment: "Superbe sejour, loft conforme aux photos."},
		{PlaceID: seedPlaces[1].ID, UserID: alice.ID, Rating: 4, Comment: "Maison agreable, jardin parfait pour les enfants."},
	}
	for i := range seedReviews {
		if err := reviews.Create(ctx, &seedReviews[i]); err != nil {
			log.Fatal("review creation failed:", err)
		}
	}

	log.Println("Seed completed!")
	log.Println("Owner: owner@ydays.fr / owner123")
	log.Println("Users: alice@ydays.fr, bruno@ydays.fr / user123")
}

func createUser(ctx context.Context, users *repository.UserRepository, email, password string, role domain.Role) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &domain.User{Email: email, PasswordHash: string(hash), Role: role}
	if err := users.Create(ctx, u); err != nil {
		log.Fatal("user creation failed:", err)
	}
	return u
}

func createReservation(
	ctx context.Context,
	reservations *repository.ReservationRepository,
	place domain.Place,
	user *domain.User,
	start, end time.Time,
	guests int,
	status domain.ReservationStatus,
) {
	r := &domain.Reservation{
		PlaceID:        place.ID,
		UserID:         user.ID,
		StartDate:      start,
		EndDate:        end,
		NumberOfGuests: guests,
		TotalPrice:     domain.TotalPriceFor(start, end, place.Price),
		Status:         domain.ReservationPending,
	}
	if err := reservations.Create(ctx, r); err != nil {
		log.Fatal("reservation creation failed:", err)
	}
	if status == domain.ReservationPending {
		return
	}

	// walk the lifecycle instead of writing the status directly
	steps := map[domain.ReservationStatus][]domain.ReservationStatus{
		domain.ReservationConfirmed: {domain.ReservationConfirmed},
		domain.ReservationCompleted: {domain.ReservationConfirmed, domain.ReservationCompleted},
		domain.ReservationCancelled: {domain.ReservationCancelled},
	}
	from := domain.ReservationPending
	for _, to := range steps[status] {
		if _, err := reservations.TransitionStatus(ctx, r.ID, from, to); err != nil {
			log.Fatal("reservation transition failed:", err)
		}
		from = to
	}
}
