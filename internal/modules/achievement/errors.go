package achievement

import "errors"

var (
	ErrMissingFields = errors.New("title, description, date and category are required")
	ErrInvalidDate   = errors.New("invalid achievement date")
	ErrInvalidOrder  = errors.New("order must be an integer")
	ErrItemsNotArray = errors.New("items must be an array")
	ErrNotFound      = errors.New("achievement not found")
)
