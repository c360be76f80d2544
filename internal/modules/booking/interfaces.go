package booking

import (
	"context"
	"time"

	"sportshub/internal/domain"
	"sportshub/internal/live"
	"sportshub/internal/notification"
	"sportshub/internal/repository"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SlotTaken(ctx context.Context, category string, date time.Time, slot string, excludeID int64) (bool, error)
	UpdateDetails(ctx context.Context, b *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, payment *domain.PaymentStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	ListActiveOnDate(ctx context.Context, date time.Time) ([]domain.Booking, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, userID int64) ([]repository.StatusCount, error)
	CountByCategory(ctx context.Context) ([]repository.CategoryCount, error)
	CountByDay(ctx context.Context) ([]repository.DayCount, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Documents interface {
	BookingReceipt(b domain.Booking, owner domain.UserSummary) (string, error)
	BookingReport(status string, bookings []domain.Booking) (string, error)
}

// TaskRunner runs work off the request path. Failures never reach the caller.
type TaskRunner interface {
	Submit(name string, task func(ctx context.Context) error)
}

type EventPublisher interface {
	Publish(e live.Event)
}

type Mailer = notification.Sender
