package repository

import (
	"context"
	"strings"
	"time"

	"sportshub/internal/database"
	"sportshub/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64             `gorm:"column:id;primaryKey"`
	Username     string            `gorm:"column:username"`
	PasswordHash string            `gorm:"column:password_hash"`
	Role         string            `gorm:"column:role"`
	Email        string            `gorm:"column:email"`
	Phone        string            `gorm:"column:phone"`
	DetailsID    *int64            `gorm:"column:details_id"`
	Details      *userDetailsModel `gorm:"foreignKey:DetailsID"`
	IsDeleted    bool              `gorm:"column:is_deleted"`
	CreatedAt    time.Time         `gorm:"column:created_at"`
	UpdatedAt    time.Time         `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type userDetailsModel struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	AddressLine1 string `gorm:"column:address_line1"`
	AddressLine2 string `gorm:"column:address_line2"`
	AddressLine3 string `gorm:"column:address_line3"`
}

func (userDetailsModel) TableName() string { return "user_details" }

func toDomainUser(m userModel) *domain.User {
	u := &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         domain.UserRole(m.Role),
		Email:        m.Email,
		Phone:        m.Phone,
		IsDeleted:    m.IsDeleted,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Details != nil {
		u.Details = &domain.UserDetails{
			ID:           m.Details.ID,
			AddressLine1: m.Details.AddressLine1,
			AddressLine2: m.Details.AddressLine2,
			AddressLine3: m.Details.AddressLine3,
		}
	}
	return u
}

func toUserModel(u *domain.User) userModel {
	m := userModel{
		ID:           u.ID,
		Username:     strings.TrimSpace(u.Username),
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Email:        strings.TrimSpace(u.Email),
		Phone:        strings.TrimSpace(u.Phone),
		IsDeleted:    u.IsDeleted,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.Details != nil {
		m.Details = &userDetailsModel{
			ID:           u.Details.ID,
			AddressLine1: u.Details.AddressLine1,
			AddressLine2: u.Details.AddressLine2,
			AddressLine3: u.Details.AddressLine3,
		}
	}
	return m
}

func toDomainUsers(models []userModel) []domain.User {
	out := make([]domain.User, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainUser(m))
	}
	return out
}

// Create stores the user and its details row in one transaction.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.Details != nil {
			if err := tx.Create(m.Details).Error; err != nil {
				return err
			}
			m.DetailsID = &m.Details.ID
		}
		return tx.Omit("Details").Create(&m).Error
	})
	if err != nil {
		if database.IsUniqueViolation(err, "idx_users_username") {
			return ErrUsernameTaken
		}
		return err
	}

	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Preload("Details").First(&m, id)
	if tx.Error != nil {
		return nil, mapNotFound(tx.Error)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Preload("Details").
		Where("username = ?", strings.TrimSpace(username)).
		First(&m)
	if tx.Error != nil {
		return nil, mapNotFound(tx.Error)
	}
	return toDomainUser(m), nil
}

// UsernameTaken reports whether another user already holds username.
func (r *UserRepository) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&userModel{}).Where("username = ?", strings.TrimSpace(username))
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) ListActive(ctx context.Context) ([]domain.User, error) {
	var models []userModel
	err := r.db.WithContext(ctx).
		Preload("Details").
		Where("is_deleted = ?", false).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainUsers(models), nil
}

func (r *UserRepository) ListNonAdmin(ctx context.Context) ([]domain.User, error) {
	var models []userModel
	err := r.db.WithContext(ctx).
		Preload("Details").
		Where("role <> ?", string(domain.RoleAdmin)).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainUsers(models), nil
}

// UpdateProfile writes the editable profile fields and upserts the address.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"username":   m.Username,
			"email":      m.Email,
			"role":       m.Role,
			"phone":      m.Phone,
			"updated_at": time.Now().UTC(),
		}

		if m.Details != nil {
			var current userModel
			if err := tx.Select("id", "details_id").First(&current, m.ID).Error; err != nil {
				return err
			}
			if current.DetailsID != nil {
				m.Details.ID = *current.DetailsID
				if err := tx.Save(m.Details).Error; err != nil {
					return err
				}
			} else {
				m.Details.ID = 0
				if err := tx.Create(m.Details).Error; err != nil {
					return err
				}
				updates["details_id"] = m.Details.ID
			}
		}

		res := tx.Model(&userModel{}).Where("id = ?", m.ID).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err, "idx_users_username") {
			return ErrUsernameTaken
		}
		return mapNotFound(err)
	}
	return nil
}

func (r *UserRepository) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	res := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_deleted": deleted, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	res := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"password_hash": hash, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
