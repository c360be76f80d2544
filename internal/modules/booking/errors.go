package booking

import "errors"

var (
	ErrLeadTime        = errors.New("booking must be made at least 3 days in advance")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidTime     = errors.New("invalid booking time")
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 5")
	ErrInvalidDate     = errors.New("invalid booking date")
	ErrInvalidStatus   = errors.New("invalid status filter")
	ErrSlotConflict    = errors.New("slot already booked")
	ErrNotFound        = errors.New("booking not found")
	ErrForbidden       = errors.New("booking belongs to another user")
	ErrImmutable       = errors.New("approved booking cannot be changed")
)
