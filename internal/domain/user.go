package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           int64        `json:"id"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	Role         UserRole     `json:"role"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Details      *UserDetails `json:"details,omitempty"`
	IsDeleted    bool         `json:"isDeleted"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// UserDetails holds the postal address captured at registration.
type UserDetails struct {
	ID           int64  `json:"id"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	AddressLine3 string `json:"addressLine3"`
}

// UserSummary is the slice of a user shown next to bookings and reports.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID       int64
	Username string
	Role     UserRole
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
