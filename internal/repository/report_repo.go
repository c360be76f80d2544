package repository

import (
	"context"
	"time"

	"sportshub/internal/domain"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type reportModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	UserID      int64      `gorm:"column:user_id"`
	User        *userModel `gorm:"foreignKey:UserID"`
	Title       string     `gorm:"column:title"`
	Description string     `gorm:"column:description"`
	Category    string     `gorm:"column:category"`
	Status      string     `gorm:"column:status"`
	Response    string     `gorm:"column:response"`
	Attachments []string   `gorm:"column:attachments;serializer:json"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (reportModel) TableName() string { return "reports" }

func toDomainReport(m reportModel) *domain.Report {
	r := &domain.Report{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Status:      domain.ReportStatus(m.Status),
		Response:    m.Response,
		Attachments: m.Attachments,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if r.Attachments == nil {
		r.Attachments = []string{}
	}
	if m.User != nil {
		r.User = &domain.UserSummary{ID: m.User.ID, Username: m.User.Username, Email: m.User.Email}
	}
	return r
}

func toDomainReports(models []reportModel) []domain.Report {
	out := make([]domain.Report, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainReport(m))
	}
	return out
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	attachments := rep.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	m := reportModel{
		UserID:      rep.UserID,
		Title:       rep.Title,
		Description: rep.Description,
		Category:    rep.Category,
		Status:      string(rep.Status),
		Response:    rep.Response,
		Attachments: attachments,
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(&m).Error; err != nil {
		return err
	}
	*rep = *toDomainReport(m)
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	var m reportModel
	if err := r.db.WithContext(ctx).Preload("User").First(&m, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return toDomainReport(m), nil
}

func (r *ReportRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Report, error) {
	var models []reportModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainReports(models), nil
}

// List returns every report with its author, optionally filtered by status.
func (r *ReportRepository) List(ctx context.Context, status domain.ReportStatus) ([]domain.Report, error) {
	q := r.db.WithContext(ctx).Preload("User")
	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var models []reportModel
	if err := q.Order("created_at DESC").Order("id DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainReports(models), nil
}

func (r *ReportRepository) Respond(ctx context.Context, id int64, response string, status domain.ReportStatus) error {
	res := r.db.WithContext(ctx).
		Model(&reportModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"response":   response,
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
