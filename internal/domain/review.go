package domain

import "time"

type Review struct {
	ID        int64     `json:"id"`
	PlaceID   int64     `json:"place"`
	UserID    int64     `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
