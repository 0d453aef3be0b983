package place

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("place not found")
)
