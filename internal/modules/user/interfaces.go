package user

import (
	"context"

	"sportshub/internal/domain"
	"sportshub/internal/notification"
	"sportshub/internal/repository"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListActive(ctx context.Context) ([]domain.User, error)
	ListNonAdmin(ctx context.Context) ([]domain.User, error)
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	UpdateProfile(ctx context.Context, u *domain.User) error
	SetDeleted(ctx context.Context, id int64, deleted bool) error
}

type BookingReader interface {
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
}

type Documents interface {
	UserList(users []domain.User) (string, error)
}

type TaskRunner interface {
	Submit(name string, task func(ctx context.Context) error)
}

type Mailer = notification.Sender
