package booking

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"sportshub/internal/chart"
	"sportshub/internal/document"
	"sportshub/internal/domain"
	"sportshub/internal/live"
	"sportshub/internal/notification"
	"sportshub/internal/repository"
)

// MinLeadDays is how many whole days ahead a slot must be booked.
const MinLeadDays = 3

const (
	dateLayout    = "2006-01-02"
	displayLayout = "Mon Jan 02 2006"
)

type Service struct {
	bookings BookingRepository
	users    UserReader
	docs     Documents
	mailer   Mailer
	tasks    TaskRunner
	events   EventPublisher
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	users UserReader,
	docs Documents,
	mailer Mailer,
	tasks TaskRunner,
	events EventPublisher,
) *Service {
	return &Service{
		bookings: bookings,
		users:    users,
		docs:     docs,
		mailer:   mailer,
		tasks:    tasks,
		events:   events,
		now:      time.Now,
	}
}

// ParseDay accepts YYYY-MM-DD or an RFC 3339 timestamp and returns its UTC date.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return domain.Day(t), nil
	}
	return time.Time{}, ErrInvalidDate
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func wholeQuantity(q *float64) (int, bool) {
	if q == nil || math.IsNaN(*q) || *q != math.Trunc(*q) || *q < 1 || *q > 5 {
		return 0, false
	}
	return int(*q), true
}

// validate applies the booking rules in order: lead time, category, time, quantity.
func (s *Service) validate(category string, date time.Time, slot string, quantity *float64, checkLead bool) (int, error) {
	if checkLead {
		days := int(domain.Day(date).Sub(domain.Day(s.now())).Hours() / 24)
		if days < MinLeadDays {
			return 0, ErrLeadTime
		}
	}
	if !contains(domain.BookingCategories, category) {
		return 0, ErrInvalidCategory
	}
	if !contains(domain.BookingTimes, slot) {
		return 0, ErrInvalidTime
	}
	q, ok := wholeQuantity(quantity)
	if !ok {
		return 0, ErrInvalidQuantity
	}
	return q, nil
}

func (s *Service) ensureFree(ctx context.Context, category string, date time.Time, slot string, excludeID int64) error {
	taken, err := s.bookings.SlotTaken(ctx, category, date, slot, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotConflict
	}
	return nil
}

func (s *Service) CreateBooking(ctx context.Context, actor domain.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	date, err := ParseDay(req.BookingDate)
	if err != nil {
		return nil, err
	}

	quantity, err := s.validate(req.Category, date, req.BookingTime, req.Quantity, true)
	if err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, req.Category, date, req.BookingTime, 0); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		UserID:        actor.ID,
		Category:      req.Category,
		BookingDate:   date,
		BookingTime:   req.BookingTime,
		Quantity:      quantity,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentUnpaid,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}

	s.notifyOwner("booking.created", *b, func(u *domain.User) notification.Message {
		return notification.Message{
			Subject: "Booking Created",
			Body: fmt.Sprintf("Hi %s, your booking for %s on %s at %s has been created. Status: %s",
				u.Username, b.Category, b.BookingDate.Format(displayLayout), b.BookingTime, b.Status),
		}
	})
	s.publish(live.BookingCreated, b)

	return b, nil
}

// ownedMutable loads a booking the actor may still change.
func (s *Service) ownedMutable(ctx context.Context, actor domain.Actor, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != actor.ID {
		return nil, ErrForbidden
	}
	if b.Status == domain.BookingApproved {
		return nil, ErrImmutable
	}
	return b, nil
}

func (s *Service) UpdateBooking(ctx context.Context, actor domain.Actor, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.ownedMutable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	category, date, slot := b.Category, b.BookingDate, b.BookingTime
	quantity := float64(b.Quantity)

	if req.Category != nil {
		category = *req.Category
	}
	if req.BookingDate != nil {
		if date, err = ParseDay(*req.BookingDate); err != nil {
			return nil, err
		}
	}
	if req.BookingTime != nil {
		slot = *req.BookingTime
	}
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	moved := category != b.Category || !date.Equal(b.BookingDate) || slot != b.BookingTime

	q, err := s.validate(category, date, slot, &quantity, moved)
	if err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, category, date, slot, b.ID); err != nil {
		return nil, err
	}

	b.Category, b.BookingDate, b.BookingTime, b.Quantity = category, date, slot, q
	if err := s.bookings.UpdateDetails(ctx, b); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken):
			return nil, ErrSlotConflict
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrBookingLocked):
			return nil, ErrImmutable
		}
		return nil, err
	}

	s.notifyOwner("booking.updated", *b, func(u *domain.User) notification.Message {
		return notification.Message{
			Subject: "Booking Updated",
			Body: fmt.Sprintf("Hi %s, your booking for %s has been updated. New details: Date %s, Time %s",
				u.Username, b.Category, b.BookingDate.Format(displayLayout), b.BookingTime),
		}
	})
	s.publish(live.BookingUpdated, b)

	return b, nil
}

// CancelBooking deletes the booking outright.
func (s *Service) CancelBooking(ctx context.Context, actor domain.Actor, id int64) error {
	b, err := s.ownedMutable(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrNotFound
		case errors.Is(err, repository.ErrBookingLocked):
			return ErrImmutable
		}
		return err
	}

	s.notifyOwner("booking.cancelled", *b, func(u *domain.User) notification.Message {
		return notification.Message{
			Subject: "Booking Cancelled",
			Body: fmt.Sprintf("Hi %s, your booking for %s on %s has been cancelled.",
				u.Username, b.Category, b.BookingDate.Format(displayLayout)),
		}
	})
	s.publish(live.BookingCancelled, b)

	return nil
}

func (s *Service) setStatus(ctx context.Context, id int64, status domain.BookingStatus, payment *domain.PaymentStatus) (*domain.Booking, error) {
	b, err := s.bookings.UpdateStatus(ctx, id, status, payment)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		if errors.Is(err, repository.ErrSlotTaken) {
			return nil, ErrSlotConflict
		}
		return nil, err
	}
	return b, nil
}

// ApproveBooking approves the booking and its payment, then mails the receipt.
func (s *Service) ApproveBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	paid := domain.PaymentApproved
	b, err := s.setStatus(ctx, id, domain.BookingApproved, &paid)
	if err != nil {
		return nil, err
	}

	approved := *b
	s.tasks.Submit(fmt.Sprintf("booking.approved:%d", b.ID), func(ctx context.Context) error {
		owner, err := s.users.GetByID(ctx, approved.UserID)
		if err != nil {
			return fmt.Errorf("load owner %d: %w", approved.UserID, err)
		}

		path, err := s.docs.BookingReceipt(approved, *owner.Summary())
		if err != nil {
			return fmt.Errorf("render receipt: %w", err)
		}
		receipt, err := notification.FileAttachment(path, document.ContentType)
		if err != nil {
			return err
		}

		return s.mailer.Send(ctx, notification.Message{
			To:          owner.Email,
			Subject:     "Booking Approved & Receipt",
			Body:        fmt.Sprintf("Hi %s, your booking has been approved. Please find the attached receipt.", owner.Username),
			Attachments: []notification.Attachment{receipt},
		})
	})
	s.publish(live.BookingApproved, b)

	return b, nil
}

// RejectBooking leaves the payment status untouched; a rejected booking can still be approved.
func (s *Service) RejectBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.setStatus(ctx, id, domain.BookingRejected, nil)
	if err != nil {
		return nil, err
	}

	s.notifyOwner("booking.rejected", *b, func(u *domain.User) notification.Message {
		return notification.Message{
			Subject: "Booking Rejected",
			Body: fmt.Sprintf("Hi %s, your booking for %s on %s was rejected.",
				u.Username, b.Category, b.BookingDate.Format(displayLayout)),
		}
	})
	s.publish(live.BookingRejected, b)

	return b, nil
}

func (s *Service) Availability(ctx context.Context, rawDate string) (*AvailabilityResponse, error) {
	date, err := ParseDay(rawDate)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListActiveOnDate(ctx, date)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		booked[b.Category+"|"+b.BookingTime] = true
	}

	slots := make(map[string][]SlotStatus, len(domain.BookingCategories))
	for _, category := range domain.BookingCategories {
		row := make([]SlotStatus, 0, len(domain.BookingTimes))
		for _, t := range domain.BookingTimes {
			status := SlotAvailable
			if booked[category+"|"+t] {
				status = SlotBooked
			}
			row = append(row, SlotStatus{Time: t, Status: status})
		}
		slots[category] = row
	}

	return &AvailabilityResponse{
		BookingDate:     date.Format(displayLayout),
		SlotsByCategory: slots,
	}, nil
}

func parseStatus(raw string) (domain.BookingStatus, error) {
	if raw == "" {
		return "", nil
	}
	status := domain.BookingStatus(raw)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ListBookings returns every booking with its owner, sorted by booking date (newest first unless sort=asc).
func (s *Service) ListBookings(ctx context.Context, rawStatus, sort string) ([]domain.Booking, error) {
	status, err := parseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.bookings.List(ctx, repository.BookingFilter{
		Status:    status,
		SortField: repository.SortByBookingDate,
		Ascending: strings.EqualFold(sort, "asc"),
	})
}

func (s *Service) MyBookings(ctx context.Context, actor domain.Actor) ([]domain.Booking, error) {
	return s.bookings.List(ctx, repository.BookingFilter{
		UserID:    actor.ID,
		SortField: repository.SortByCreatedAt,
	})
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	total, err := s.bookings.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.bookings.CountByStatus(ctx, 0)
	if err != nil {
		return nil, err
	}
	byDay, err := s.bookings.CountByDay(ctx)
	if err != nil {
		return nil, err
	}

	resp := &StatsResponse{
		TotalBookings: total,
		StatusCounts:  make(map[string]int64, len(domain.BookingStatuses)),
		DailyCounts:   make([]DailyCount, 0, len(byDay)),
	}
	for _, st := range domain.BookingStatuses {
		resp.StatusCounts[string(st)] = 0
	}
	for _, row := range byStatus {
		resp.StatusCounts[string(row.Status)] = row.Count
	}
	for _, row := range byDay {
		resp.DailyCounts = append(resp.DailyCounts, DailyCount{Date: row.Date.Format(dateLayout), Count: row.Count})
	}
	return resp, nil
}

// FullReport renders the booking report PDF and returns its path.
func (s *Service) FullReport(ctx context.Context, rawStatus, sort string) (string, error) {
	status, err := parseStatus(rawStatus)
	if err != nil {
		return "", err
	}

	bookings, err := s.bookings.List(ctx, repository.BookingFilter{
		Status:    status,
		SortField: repository.SortByCreatedAt,
		Ascending: strings.EqualFold(sort, "asc"),
	})
	if err != nil {
		return "", err
	}

	return s.docs.BookingReport(string(status), bookings)
}

var statusColors = map[domain.BookingStatus]color.Color{
	domain.BookingApproved:  chart.Green,
	domain.BookingPending:   chart.Yellow,
	domain.BookingRejected:  chart.Red,
	domain.BookingCancelled: chart.Grey,
}

var categoryColors = []color.Color{chart.Blue, chart.Purple, chart.Orange, chart.Green}

func (s *Service) StatusGraph(ctx context.Context) ([]byte, error) {
	rows, err := s.bookings.CountByStatus(ctx, 0)
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.BookingStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}

	bars := make([]chart.Bar, 0, len(domain.BookingStatuses))
	for _, st := range domain.BookingStatuses {
		bars = append(bars, chart.Bar{Label: string(st), Value: int(counts[st]), Color: statusColors[st]})
	}
	return chart.BarChart("Booking Status Breakdown", "Number of Bookings", bars)
}

func (s *Service) CategoryGraph(ctx context.Context) ([]byte, error) {
	rows, err := s.bookings.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	bars := make([]chart.Bar, 0, len(rows))
	for i, r := range rows {
		bars = append(bars, chart.Bar{Label: r.Category, Value: int(r.Count), Color: categoryColors[i%len(categoryColors)]})
	}
	return chart.BarChart("Category-wise Bookings", "Number of Bookings", bars)
}

// notifyOwner e-mails the booking owner in the background.
func (s *Service) notifyOwner(name string, b domain.Booking, compose func(u *domain.User) notification.Message) {
	s.tasks.Submit(fmt.Sprintf("%s:%d", name, b.ID), func(ctx context.Context) error {
		owner, err := s.users.GetByID(ctx, b.UserID)
		if err != nil {
			return fmt.Errorf("load owner %d: %w", b.UserID, err)
		}
		msg := compose(owner)
		msg.To = owner.Email
		return s.mailer.Send(ctx, msg)
	})
}

func (s *Service) publish(t live.EventType, b *domain.Booking) {
	if s.events == nil {
		return
	}
	snapshot := *b
	s.events.Publish(live.Event{Type: t, Booking: &snapshot})
}
