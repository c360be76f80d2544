package repository

import (
	"context"
	"time"

	"sportshub/internal/domain"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{db: db}
}

type achievementModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	Date        time.Time `gorm:"column:date"`
	Category    string    `gorm:"column:category"`
	Image       string    `gorm:"column:image"`
	Featured    bool      `gorm:"column:featured"`
	SortOrder   int       `gorm:"column:sort_order"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (achievementModel) TableName() string { return "achievements" }

func toDomainAchievement(m achievementModel) *domain.Achievement {
	return &domain.Achievement{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Date:        m.Date,
		Category:    m.Category,
		Image:       m.Image,
		Featured:    m.Featured,
		Order:       m.SortOrder,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toAchievementModel(a *domain.Achievement) achievementModel {
	return achievementModel{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Date:        a.Date.UTC(),
		Category:    a.Category,
		Image:       a.Image,
		Featured:    a.Featured,
		SortOrder:   a.Order,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type AchievementFilter struct {
	FeaturedOnly bool
	Category     string
	Limit        int
}

func (r *AchievementRepository) List(ctx context.Context, f AchievementFilter) ([]domain.Achievement, error) {
	q := r.db.WithContext(ctx).Model(&achievementModel{})
	if f.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var models []achievementModel
	err := q.Order("featured DESC").Order("sort_order DESC").Order("date DESC").Order("id DESC").Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Achievement, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAchievement(m))
	}
	return out, nil
}

func (r *AchievementRepository) GetByID(ctx context.Context, id int64) (*domain.Achievement, error) {
	var m achievementModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return toDomainAchievement(m), nil
}

func (r *AchievementRepository) Create(ctx context.Context, a *domain.Achievement) error {
	m := toAchievementModel(a)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*a = *toDomainAchievement(m)
	return nil
}

// Update overwrites every editable column of a.
func (r *AchievementRepository) Update(ctx context.Context, a *domain.Achievement) error {
	m := toAchievementModel(a)
	res := r.db.WithContext(ctx).
		Model(&achievementModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"title":       m.Title,
			"description": m.Description,
			"date":        m.Date,
			"category":    m.Category,
			"image":       m.Image,
			"featured":    m.Featured,
			"sort_order":  m.SortOrder,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AchievementRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&achievementModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Reorder sets sort_order to each id's position in ids, atomically.
func (r *AchievementRepository) Reorder(ctx context.Context, ids []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			err := tx.Model(&achievementModel{}).
				Where("id = ?", id).
				Update("sort_order", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
