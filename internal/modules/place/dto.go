package place

import "github.com/Virgile-Eratel/YDaysM1-api/internal/repository"

// CreatePlaceForm is the multipart payload of POST /places; the image
// arrives as a separate file part.
type CreatePlaceForm struct {
	Title       string  `form:"title" validate:"required,min=3,max=120"`
	Description string  `form:"description" validate:"required"`
	Address     string  `form:"address" validate:"required"`
	Latitude    float64 `form:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64 `form:"longitude" validate:"gte=-180,lte=180"`
	Price       float64 `form:"price" validate:"gte=0"`
}

type AvailabilityResponse struct {
	PlaceID int64                  `json:"placeId"`
	From    string                 `json:"from"`
	To      string                 `json:"to"`
	Booked  []repository.DateRange `json:"booked"`
}
