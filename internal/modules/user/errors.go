package user

import "errors"

var (
	ErrNotFound    = errors.New("user not found")
	ErrAdminTarget = errors.New("admin accounts cannot be changed here")
)
