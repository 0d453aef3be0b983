package domain

import "time"

type Place struct {
	ID          int64     `json:"id"`
	HostID      int64     `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Price       float64   `json:"price"`
	ImageName   string    `json:"imageName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
