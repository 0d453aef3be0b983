package review

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrPlaceNotFound = errors.New("place not found")
)
