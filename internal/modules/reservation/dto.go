package reservation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Virgile-Eratel/YDaysM1-api/internal/domain"
)

// ResourceRef accepts either a numeric id or an IRI-style reference
// ("/get-one-place/3"); the frontend sends the latter.
type ResourceRef int64

func (r *ResourceRef) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*r = ResourceRef(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("resource reference must be a number or an IRI string")
	}
	s = strings.TrimSuffix(s, "/")
	idx := strings.LastIndex(s, "/")
	id, err := strconv.ParseInt(s[idx+1:], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid resource reference %q", s)
	}
	*r = ResourceRef(id)
	return nil
}

// CreateReservationRequest is the body of POST /reservations. The
// user reference the frontend includes is ignored: the authenticated
// session decides who books.
type CreateReservationRequest struct {
	Place          ResourceRef `json:"place" binding:"required"`
	User           ResourceRef `json:"user"`
	StartDate      string      `json:"startDate" binding:"required"`
	EndDate        string      `json:"endDate" binding:"required"`
	NumberOfGuests int         `json:"numberOfGuests" binding:"required,min=1"`
}

// ReservationResponse mirrors the resource shape the frontend consumes.
type ReservationResponse struct {
	ID             int64                    `json:"id"`
	Place          *domain.Place            `json:"place,omitempty"`
	User           *userView                `json:"user,omitempty"`
	StartDate      time.Time                `json:"startDate"`
	EndDate        time.Time                `json:"endDate"`
	NumberOfGuests int                      `json:"numberOfGuests"`
	TotalPrice     float64                  `json:"totalPrice"`
	Status         domain.ReservationStatus `json:"status"`
	DurationInDays int                      `json:"durationInDays"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

type userView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func toResponse(r *domain.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:             r.ID,
		Place:          r.Place,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		NumberOfGuests: r.NumberOfGuests,
		TotalPrice:     r.TotalPrice,
		Status:         r.Status,
		DurationInDays: r.DurationInDays(),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if r.User != nil {
		resp.User = &userView{ID: r.User.ID, Email: r.User.Email}
	}
	return resp
}

func toResponseList(rs []domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(rs))
	for i := range rs {
		out = append(out, toResponse(&rs[i]))
	}
	return out
}

// OwnerOverviewResponse is the body of GET /api/owner/reservations.
type OwnerOverviewResponse struct {
	Reservations []ReservationResponse    `json:"reservations"`
	Stats        *domain.ReservationStats `json:"stats"`
}
