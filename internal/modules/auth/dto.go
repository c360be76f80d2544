package auth

import "sportshub/internal/domain"

// Account holds the fields every account must carry, whoever writes them.
type Account struct {
	Username string `validate:"required,username"`
	Email    string `validate:"required,strictemail"`
	Phone    string `validate:"required,phone10"`
	Role     string
}

type RegisterRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	AddressLine3 string `json:"addressLine3"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
}

type UserPublic struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	Role     domain.UserRole `json:"role"`
}

type LoginResult struct {
	Token string     `json:"token"`
	User  UserPublic `json:"user"`
}
