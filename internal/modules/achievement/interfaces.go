package achievement

import (
	"context"
	"mime/multipart"

	"sportshub/internal/domain"
	"sportshub/internal/repository"
)

type AchievementRepository interface {
	List(ctx context.Context, f repository.AchievementFilter) ([]domain.Achievement, error)
	GetByID(ctx context.Context, id int64) (*domain.Achievement, error)
	Create(ctx context.Context, a *domain.Achievement) error
	Update(ctx context.Context, a *domain.Achievement) error
	Delete(ctx context.Context, id int64) error
	Reorder(ctx context.Context, ids []int64) error
}

type ImageStore interface {
	Save(fh *multipart.FileHeader, dir string) (string, error)
	Remove(url string) error
}
