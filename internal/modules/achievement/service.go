package achievement

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"sportshub/internal/domain"
	"sportshub/internal/repository"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	imageDir = "achievements"
)

type Service struct {
	achievements AchievementRepository
	images       ImageStore
}

func NewService(achievements AchievementRepository, images ImageStore) *Service {
	return &Service{achievements: achievements, images: images}
}

// ParseLimit falls back to DefaultLimit on junk and clamps to [1, MaxLimit].
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultLimit
	}
	return min(max(n, 1), MaxLimit)
}

func (s *Service) List(ctx context.Context, featuredOnly bool, category string, limit int) ([]domain.Achievement, error) {
	return s.achievements.List(ctx, repository.AchievementFilter{
		FeaturedOnly: featuredOnly,
		Category:     strings.TrimSpace(category),
		Limit:        limit,
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Achievement, error) {
	a, err := s.achievements.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func text(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

func parseOrder(p *string) (int, error) {
	n, err := strconv.Atoi(text(p))
	if err != nil {
		return 0, ErrInvalidOrder
	}
	return n, nil
}

func (s *Service) Create(ctx context.Context, in Input, image *multipart.FileHeader) (*domain.Achievement, error) {
	a := &domain.Achievement{
		Title:       text(in.Title),
		Description: text(in.Description),
		Category:    text(in.Category),
		Featured:    text(in.Featured) == "true",
	}
	rawDate := text(in.Date)
	if a.Title == "" || a.Description == "" || rawDate == "" || a.Category == "" {
		return nil, ErrMissingFields
	}

	date, err := parseDate(rawDate)
	if err != nil {
		return nil, err
	}
	a.Date = date

	if text(in.Order) != "" {
		if a.Order, err = parseOrder(in.Order); err != nil {
			return nil, err
		}
	}

	if image != nil {
		url, err := s.images.Save(image, imageDir)
		if err != nil {
			return nil, err
		}
		a.Image = url
	}

	if err := s.achievements.Create(ctx, a); err != nil {
		if a.Image != "" {
			_ = s.images.Remove(a.Image)
		}
		return nil, err
	}
	return a, nil
}

// Update applies the non-empty fields of in. A new image replaces the old file.
func (s *Service) Update(ctx context.Context, id int64, in Input, image *multipart.FileHeader) (*domain.Achievement, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := text(in.Title); v != "" {
		a.Title = v
	}
	if v := text(in.Description); v != "" {
		a.Description = v
	}
	if v := text(in.Category); v != "" {
		a.Category = v
	}
	if v := text(in.Date); v != "" {
		if a.Date, err = parseDate(v); err != nil {
			return nil, err
		}
	}
	if in.Featured != nil {
		a.Featured = text(in.Featured) == "true"
	}
	if in.Order != nil {
		if a.Order, err = parseOrder(in.Order); err != nil {
			return nil, err
		}
	}

	oldImage := ""
	if image != nil {
		url, err := s.images.Save(image, imageDir)
		if err != nil {
			return nil, err
		}
		oldImage, a.Image = a.Image, url
	}

	if err := s.achievements.Update(ctx, a); err != nil {
		if image != nil {
			_ = s.images.Remove(a.Image)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if oldImage != "" {
		_ = s.images.Remove(oldImage)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.achievements.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if a.Image != "" {
		return s.images.Remove(a.Image)
	}
	return nil
}

func (s *Service) Reorder(ctx context.Context, req ReorderRequest) error {
	if req.Items == nil {
		return ErrItemsNotArray
	}
	ids := make([]int64, 0, len(*req.Items))
	for _, item := range *req.Items {
		ids = append(ids, item.ID)
	}
	return s.achievements.Reorder(ctx, ids)
}
