package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrSlotTaken     = errors.New("booking slot already taken")
	ErrUsernameTaken = errors.New("username already taken")
	ErrBookingLocked = errors.New("booking is approved")
)

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
