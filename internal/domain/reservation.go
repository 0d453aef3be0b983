package domain

import (
	"errors"
	"time"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// IsTerminal reports whether no further transition is permitted.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled
}

// ReservationAction is a requested status change on a reservation.
type ReservationAction string

const (
	ActionConfirm  ReservationAction = "confirm"
	ActionComplete ReservationAction = "complete"
	ActionCancel   ReservationAction = "cancel"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("actor not permitted for this transition")
)

// Transition validates a requested action against the current status and
// the actor's role and returns the resulting status. The rules:
//
//	pending   --confirm (owner, system)-->  confirmed
//	pending   --cancel  (user, owner)--->   cancelled
//	confirmed --complete (owner)------->    completed
//	confirmed --cancel   (owner)------->    cancelled
//
// completed and cancelled are terminal. The caller is responsible for
// ownership checks; Transition only enforces role/state rules.
func Transition(current ReservationStatus, action ReservationAction, actor Role) (ReservationStatus, error) {
	if current.IsTerminal() {
		return current, ErrInvalidTransition
	}

	switch action {
	case ActionConfirm:
		if actor != RoleOwner && actor != RoleSystem {
			return current, ErrForbidden
		}
		if current != ReservationPending {
			return current, ErrInvalidTransition
		}
		return ReservationConfirmed, nil

	case ActionComplete:
		if actor != RoleOwner {
			return current, ErrForbidden
		}
		if current != ReservationConfirmed {
			return current, ErrInvalidTransition
		}
		return ReservationCompleted, nil

	case ActionCancel:
		switch actor {
		case RoleUser:
			if current != ReservationPending {
				return current, ErrInvalidTransition
			}
			return ReservationCancelled, nil
		case RoleOwner:
			if current != ReservationPending && current != ReservationConfirmed {
				return current, ErrInvalidTransition
			}
			return ReservationCancelled, nil
		default:
			return current, ErrForbidden
		}

	default:
		return current, ErrInvalidTransition
	}
}

type Reservation struct {
	ID             int64             `json:"id"`
	PlaceID        int64             `json:"-"`
	UserID         int64             `json:"-"`
	StartDate      time.Time         `json:"startDate"`
	EndDate        time.Time         `json:"endDate"`
	NumberOfGuests int               `json:"numberOfGuests"`
	TotalPrice     float64           `json:"totalPrice"`
	Status         ReservationStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`

	Place *Place `json:"place,omitempty"`
	User  *User  `json:"user,omitempty"`
}

// DurationInDays is the stay length in whole days, both dates taken as
// day boundaries. Zero or negative means the range is invalid.
func (r *Reservation) DurationInDays() int {
	return DurationInDays(r.StartDate, r.EndDate)
}

func DurationInDays(start, end time.Time) int {
	s := atMidnightUTC(start)
	e := atMidnightUTC(end)
	return int(e.Sub(s).Hours() / 24)
}

// TotalPriceFor computes the price of a stay from its duration and the
// place's nightly price. The result is frozen on the reservation at
// creation; later price changes on the place never touch it.
func TotalPriceFor(start, end time.Time, nightlyPrice float64) float64 {
	return float64(DurationInDays(start, end)) * nightlyPrice
}

// DayStart drops the time-of-day component; reservations deal in
// whole-day boundaries only.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func atMidnightUTC(t time.Time) time.Time { return DayStart(t) }

// ReservationStats are the owner dashboard counters. TotalRevenue sums
// totalPrice over confirmed and completed reservations.
type ReservationStats struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Confirmed    int     `json:"confirmed"`
	Completed    int     `json:"completed"`
	Cancelled    int     `json:"cancelled"`
	TotalRevenue float64 `json:"totalRevenue"`
}
