package report

import (
	"context"

	"sportshub/internal/domain"
	"sportshub/internal/notification"
)

type ReportRepository interface {
	Create(ctx context.Context, rep *domain.Report) error
	GetByID(ctx context.Context, id int64) (*domain.Report, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Report, error)
	List(ctx context.Context, status domain.ReportStatus) ([]domain.Report, error)
	Respond(ctx context.Context, id int64, response string, status domain.ReportStatus) error
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type TaskRunner interface {
	Submit(name string, task func(ctx context.Context) error)
}

type Mailer = notification.Sender
