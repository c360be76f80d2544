package auth

import (
	"context"

	"sportshub/internal/domain"
	"sportshub/internal/notification"
)

// UserRepository is the slice of the user store auth needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

type TokenIssuer interface {
	GenerateToken(userID int64, username, role string) (string, error)
}

type LoginGuard interface {
	Locked(ctx context.Context, username string) (bool, error)
	Fail(ctx context.Context, username string) (bool, error)
	Reset(ctx context.Context, username string) error
}

type Documents interface {
	RegistrationDetails(u domain.User) (string, error)
}

type TaskRunner interface {
	Submit(name string, task func(ctx context.Context) error)
}

type Mailer = notification.Sender
