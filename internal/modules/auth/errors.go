package auth

import "errors"

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidUsername    = errors.New("invalid username")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidPhone       = errors.New("invalid phone")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAdminSignup        = errors.New("admin self-signup disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account deactivated")
	ErrLoginLocked        = errors.New("too many failed logins")
)
