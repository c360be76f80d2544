package repository

import (
	"context"
	"time"

	"sportshub/internal/database"
	"sportshub/internal/domain"

	"gorm.io/gorm"
)

// activeSlotIndex is the partial unique index over non-cancelled slots.
const activeSlotIndex = "idx_bookings_active_slot"

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	UserID        int64      `gorm:"column:user_id"`
	User          *userModel `gorm:"foreignKey:UserID"`
	Category      string     `gorm:"column:category"`
	BookingDate   time.Time  `gorm:"column:booking_date"`
	BookingTime   string     `gorm:"column:booking_time"`
	Quantity      int        `gorm:"column:quantity"`
	Status        string     `gorm:"column:status"`
	PaymentStatus string     `gorm:"column:payment_status"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:            m.ID,
		UserID:        m.UserID,
		Category:      m.Category,
		BookingDate:   domain.Day(m.BookingDate),
		BookingTime:   m.BookingTime,
		Quantity:      m.Quantity,
		Status:        domain.BookingStatus(m.Status),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.User != nil {
		b.User = &domain.UserSummary{ID: m.User.ID, Username: m.User.Username, Email: m.User.Email}
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:            b.ID,
		UserID:        b.UserID,
		Category:      b.Category,
		BookingDate:   domain.Day(b.BookingDate),
		BookingTime:   b.BookingTime,
		Quantity:      b.Quantity,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toDomainBookings(models []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainBooking(m))
	}
	return out
}

// Create inserts a booking. A concurrent insert on the same slot surfaces as ErrSlotTaken.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Omit("User").Create(&m).Error; err != nil {
		if database.IsUniqueViolation(err, activeSlotIndex) {
			return ErrSlotTaken
		}
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).Preload("User").First(&m, id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return toDomainBooking(m), nil
}

// SlotTaken reports whether a non-cancelled booking other than excludeID holds the slot.
func (r *BookingRepository) SlotTaken(ctx context.Context, category string, date time.Time, slot string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("category = ? AND booking_date = ? AND booking_time = ?", category, domain.Day(date), slot).
		Where("status <> ?", string(domain.BookingCancelled))
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateDetails writes the owner-editable fields of b unless the booking has been approved.
func (r *BookingRepository) UpdateDetails(ctx context.Context, b *domain.Booking) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status <> ?", b.ID, string(domain.BookingApproved)).
		Updates(map[string]any{
			"category":     b.Category,
			"booking_date": domain.Day(b.BookingDate),
			"booking_time": b.BookingTime,
			"quantity":     b.Quantity,
			"updated_at":   now,
		})
	if res.Error != nil {
		if database.IsUniqueViolation(res.Error, activeSlotIndex) {
			return ErrSlotTaken
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missOrLocked(ctx, b.ID)
	}
	b.UpdatedAt = now
	return nil
}

// UpdateStatus sets the status and, when payment is non-nil, the payment status.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, payment *domain.PaymentStatus) (*domain.Booking, error) {
	updates := map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	if payment != nil {
		updates["payment_status"] = string(*payment)
	}

	res := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		if database.IsUniqueViolation(res.Error, activeSlotIndex) {
			return nil, ErrSlotTaken
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes the booking unless it has been approved.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status <> ?", id, string(domain.BookingApproved)).
		Delete(&bookingModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.missOrLocked(ctx, id)
	}
	return nil
}

// missOrLocked explains a guarded write that touched no row.
func (r *BookingRepository) missOrLocked(ctx context.Context, id int64) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrBookingLocked
}

func (r *BookingRepository) ListActiveOnDate(ctx context.Context, date time.Time) ([]domain.Booking, error) {
	var models []bookingModel
	err := r.db.WithContext(ctx).
		Where("booking_date = ? AND status <> ?", domain.Day(date), string(domain.BookingCancelled)).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

type BookingSortField string

const (
	SortByBookingDate BookingSortField = "booking_date"
	SortByCreatedAt   BookingSortField = "created_at"
)

type BookingFilter struct {
	UserID    int64
	Status    domain.BookingStatus
	SortField BookingSortField
	Ascending bool
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{}).Preload("User")
	if f.UserID > 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	field := f.SortField
	if field != SortByBookingDate {
		field = SortByCreatedAt
	}
	dir := " DESC"
	if f.Ascending {
		dir = " ASC"
	}
	q = q.Order(string(field) + dir).Order("id" + dir)

	var models []bookingModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(models), nil
}

type StatusCount struct {
	Status domain.BookingStatus
	Count  int64
}

type CategoryCount struct {
	Category string
	Count    int64
}

type DayCount struct {
	Date  time.Time
	Count int64
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&n).Error
	return n, err
}

// CountByStatus groups bookings by status; userID 0 means all users.
func (r *BookingRepository) CountByStatus(ctx context.Context, userID int64) ([]StatusCount, error) {
	var rows []StatusCount
	q := r.db.WithContext(ctx).Model(&bookingModel{}).Select("status, COUNT(*) AS count")
	if userID > 0 {
		q = q.Where("user_id = ?", userID)
	}
	err := q.Group("status").Order("status").Scan(&rows).Error
	return rows, err
}

func (r *BookingRepository) CountByCategory(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC").
		Order("category ASC").
		Scan(&rows).Error
	return rows, err
}

// CountByDay groups bookings by booking date, oldest first.
func (r *BookingRepository) CountByDay(ctx context.Context) ([]DayCount, error) {
	var models []bookingModel
	if err := r.db.WithContext(ctx).Select("booking_date").Order("booking_date ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]DayCount, 0)
	for _, m := range models {
		day := domain.Day(m.BookingDate)
		if n := len(out); n > 0 && out[n-1].Date.Equal(day) {
			out[n-1].Count++
			continue
		}
		out = append(out, DayCount{Date: day, Count: 1})
	}
	return out, nil
}
