package user

import "sportshub/internal/domain"

type AddressRequest struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	AddressLine3 string `json:"addressLine3"`
}

type UpdateUserRequest struct {
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     string          `json:"role"`
	Phone    string          `json:"phone"`
	Details  *AddressRequest `json:"details"`
}

type BookingStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

const (
	StatusActive      = "Active"
	StatusDeactivated = "Deactivated"
)

type Profile struct {
	ID           int64               `json:"id"`
	Username     string              `json:"username"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	Role         domain.UserRole     `json:"role"`
	Status       string              `json:"status"`
	Address      *domain.UserDetails `json:"address"`
	BookingStats BookingStats        `json:"bookingStats"`
	Bookings     []domain.Booking    `json:"bookings"`
}
