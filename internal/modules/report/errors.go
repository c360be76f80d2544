package report

import "errors"

var (
	ErrMissingFields     = errors.New("title, description and category are required")
	ErrTitleLength       = errors.New("title must be between 5 and 100 characters")
	ErrDescriptionLength = errors.New("description must be between 20 and 1000 characters")
	ErrInvalidCategory   = errors.New("invalid report category")
	ErrMissingResponse   = errors.New("response and status are required")
	ErrInvalidStatus     = errors.New("invalid report status")
	ErrNotFound          = errors.New("report not found")
)
