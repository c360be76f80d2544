package booking

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sportshub/internal/domain"
	"sportshub/internal/live"
	"sportshub/internal/notification"
	"sportshub/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) SlotTaken(ctx context.Context, category string, date time.Time, slot string, excludeID int64) (bool, error) {
	args := m.Called(ctx, category, date, slot, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) UpdateDetails(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, payment *domain.PaymentStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) ListActiveOnDate(ctx context.Context, date time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) CountByStatus(ctx context.Context, userID int64) ([]repository.StatusCount, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]repository.StatusCount), args.Error(1)
}

func (m *MockBookingRepository) CountByCategory(ctx context.Context) ([]repository.CategoryCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.CategoryCount), args.Error(1)
}

func (m *MockBookingRepository) CountByDay(ctx context.Context) ([]repository.DayCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.DayCount), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockDocuments struct {
	mock.Mock
}

func (m *MockDocuments) BookingReceipt(b domain.Booking, owner domain.UserSummary) (string, error) {
	args := m.Called(b, owner)
	return args.String(0), args.Error(1)
}

func (m *MockDocuments) BookingReport(status string, bookings []domain.Booking) (string, error) {
	args := m.Called(status, bookings)
	return args.String(0), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg notification.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type recordingEvents struct {
	events []live.Event
}

func (r *recordingEvents) Publish(e live.Event) { r.events = append(r.events, e) }

var fixedNow = time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *Service
	bookings *MockBookingRepository
	users    *MockUserReader
	docs     *MockDocuments
	mailer   *MockMailer
	events   *recordingEvents
}

func newFixture() *fixture {
	f := &fixture{
		bookings: new(MockBookingRepository),
		users:    new(MockUserReader),
		docs:     new(MockDocuments),
		mailer:   new(MockMailer),
		events:   &recordingEvents{},
	}
	f.svc = NewService(f.bookings, f.users, f.docs, f.mailer, notification.Inline{}, f.events)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func qty(v float64) *float64 { return &v }
func str(s string) *string   { return &s }

func dayOffset(days int) time.Time { return domain.Day(fixedNow).AddDate(0, 0, days) }

var alice = domain.Actor{ID: 1, Username: "alice", Role: domain.RoleUser}

func aliceUser() *domain.User {
	return &domain.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: domain.RoleUser}
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		Category:    "Football",
		BookingDate: dayOffset(10).Format("2006-01-02"),
		BookingTime: "08:00 AM",
		Quantity:    qty(2),
	}
}

func TestService_CreateBooking_Success(t *testing.T) {
	f := newFixture()
	f.bookings.On("SlotTaken", mock.Anything, "Football", dayOffset(10), "08:00 AM", int64(0)).Return(false, nil)
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	f.users.On("GetByID", mock.Anything, int64(1)).Return(aliceUser(), nil)
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(m notification.Message) bool {
		return m.To == "alice@example.com" && m.Subject == "Booking Created"
	})).Return(nil)

	b, err := f.svc.CreateBooking(context.Background(), alice, validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(999), b.ID)
	assert.Equal(t, int64(1), b.UserID)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentUnpaid, b.PaymentStatus)
	assert.Equal(t, 2, b.Quantity)
	assert.Equal(t, dayOffset(10), b.BookingDate)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, live.BookingCreated, f.events.events[0].Type)
	f.bookings.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func TestService_CreateBooking_NotificationFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.bookings.On("SlotTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.users.On("GetByID", mock.Anything, int64(1)).Return(aliceUser(), nil)
	f.mailer.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	b, err := f.svc.CreateBooking(context.Background(), alice, validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(999), b.ID)
}

func TestService_CreateBooking_LeadTime(t *testing.T) {
	for _, days := range []int{-1, 0, 1, 2} {
		f := newFixture()
		req := CreateBookingRequest{
			Category:    "Curling",
			BookingDate: dayOffset(days).Format("2006-01-02"),
			BookingTime: "11:00 PM",
			Quantity:    qty(9),
		}

		_, err := f.svc.CreateBooking(context.Background(), alice, req)
		assert.ErrorIs(t, err, ErrLeadTime, "days=%d", days)
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestService_CreateBooking_LeadTimeBoundaryIgnoresClockTime(t *testing.T) {
	f := newFixture()
	f.svc.now = func() time.Time { return time.Date(2030, 1, 1, 23, 59, 0, 0, time.UTC) }
	f.bookings.On("SlotTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.users.On("GetByID", mock.Anything, mock.Anything).Return(aliceUser(), nil)
	f.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.BookingDate = "2030-01-04"

	_, err := f.svc.CreateBooking(context.Background(), alice, req)
	assert.NoError(t, err)
}

func TestService_CreateBooking_ValidationOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CreateBookingRequest)
		want   error
	}{
		{"missing date", func(r *CreateBookingRequest) { r.BookingDate = "" }, ErrInvalidDate},
		{"garbage date", func(r *CreateBookingRequest) { r.BookingDate = "next tuesday" }, ErrInvalidDate},
		{"category before time", func(r *CreateBookingRequest) { r.Category = "Chess"; r.BookingTime = "noon" }, ErrInvalidCategory},
		{"category is case sensitive", func(r *CreateBookingRequest) { r.Category = "football" }, ErrInvalidCategory},
		{"time before quantity", func(r *CreateBookingRequest) { r.BookingTime = "07:00 AM"; r.Quantity = qty(0) }, ErrInvalidTime},
		{"quantity zero", func(r *CreateBookingRequest) { r.Quantity = qty(0) }, ErrInvalidQuantity},
		{"quantity six", func(r *CreateBookingRequest) { r.Quantity = qty(6) }, ErrInvalidQuantity},
		{"quantity fractional", func(r *CreateBookingRequest) { r.Quantity = qty(2.5) }, ErrInvalidQuantity},
		{"quantity missing", func(r *CreateBookingRequest) { r.Quantity = nil }, ErrInvalidQuantity},
		{"quantity negative", func(r *CreateBookingRequest) { r.Quantity = qty(-1) }, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.mutate(&req)

			_, err := f.svc.CreateBooking(context.Background(), alice, req)
			assert.ErrorIs(t, err, tt.want)
			f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CreateBooking_AcceptsRFC3339(t *testing.T) {
	f := newFixture()
	f.bookings.On("SlotTaken", mock.Anything, "Football", dayOffset(10), "08:00 AM", int64(0)).Return(false, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.users.On("GetByID", mock.Anything, mock.Anything).Return(aliceUser(), nil)
	f.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	req := validRequest()
	req.BookingDate = dayOffset(10).Add(15 * time.Hour).Format(time.RFC3339)

	b, err := f.svc.CreateBooking(context.Background(), alice, req)
	require.NoError(t, err)
	assert.Equal(t, dayOffset(10), b.BookingDate)
}

func TestService_CreateBooking_Conflict(t *testing.T) {
	f := newFixture()
	f.bookings.On("SlotTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, int64(0)).Return(true, nil)

	_, err := f.svc.CreateBooking(context.Background(), alice, validRequest())

	assert.ErrorIs(t, err, ErrSlotConflict)
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateBooking_ConflictOnInsert(t *testing.T) {
	f := newFixture()
	f.bookings.On("SlotTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(repository.ErrSlotTaken)

	_, err := f.svc.CreateBooking(context.Background(), alice, validRequest())

	assert.ErrorIs(t, err, ErrSlotConflict)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	assert.Empty(t, f.events.events)
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:            5,
		UserID:        1,
		Category:      "Badminton",
		BookingDate:   dayOffset(1),
		BookingTime:   "06:00 AM",
		Quantity:      1,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentUnpaid,
	}
}

func TestService_UpdateBooking_QuantityOnlySkipsLeadTime(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil)
	f.bookings.On("SlotTaken", mock.Anything, "Badminton", dayOffset(1), "06:00 AM", int64(5)).Return(false, nil)
	f.bookings.On("UpdateDetails", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool { return b.Quantity == 4 })).Return(nil)
	f.users.On("GetByID", mock.Anything, int64(1)).Return(aliceUser(), nil)
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(m notification.Message) bool { return m.Subject == "Booking Updated" })).Return(nil)

	b, err := f.svc.UpdateBooking(context.Background(), alice, 5, UpdateBookingRequest{Quantity: qty(4)})

	require.NoError(t, err)
	assert.Equal(t, 4, b.Quantity)
	assert.Equal(t, domain.BookingPending, b.Status)
	f.bookings.AssertExpectations(t)
}

func TestService_UpdateBooking_RevalidatesMergedRecord(t *testing.T) {
	tests := []struct {
		name string
		req  UpdateBookingRequest
		want error
	}{
		{"moved inside lead time", UpdateBookingRequest{BookingDate: str(dayOffset(2).Format("2006-01-02"))}, ErrLeadTime},
		{"bad category", UpdateBookingRequest{Category: str("Polo")}, ErrLeadTime},
		{"bad category with valid date", UpdateBookingRequest{Category: str("Polo"), BookingDate: str(dayOffset(5).Format("2006-01-02"))}, ErrInvalidCategory},
		{"bad time", UpdateBookingRequest{BookingTime: str("09:00 PM"), BookingDate: str(dayOffset(5).Format("2006-01-02"))}, ErrInvalidTime},
		{"bad quantity", UpdateBookingRequest{Quantity: qty(7)}, ErrInvalidQuantity},
		{"bad date", UpdateBookingRequest{BookingDate: str("31/12/2030")}, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.bookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil)

			_, err := f.svc.UpdateBooking(context.Background(), alice, 5, tt.req)
			assert.ErrorIs(t, err, tt.want)
			f.bookings.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything)
		})
	}
}

func TestService_UpdateBooking_MoveToTakenSlot(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil)
	f.bookings.On("SlotTaken", mock.Anything, "Badminton", dayOffset(6), "06:00 AM", int64(5)).Return(true, nil)

	_, err := f.svc.UpdateBooking(context.Background(), alice, 5, UpdateBookingRequest{
		BookingDate: str(dayOffset(6).Format("2006-01-02")),
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestService_UpdateBooking_Guards(t *testing.T) {
	approved := pendingBooking()
	approved.Status = domain.BookingApproved

	tests := []struct {
		name    string
		booking *domain.Booking
		repoErr error
		actor   domain.Actor
		want    error
	}{
		{"not found", nil, repository.ErrNotFound, alice, ErrNotFound},
		{"other owner", pendingBooking(), nil, domain.Actor{ID: 2, Role: domain.RoleUser}, ErrForbidden},
		{"approved", approved, nil, alice, ErrImmutable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.booking != nil {
				f.bookings.On("GetByID", mock.Anything, int64(5)).Return(tt.booking, nil)
			} else {
				f.bookings.On("GetByID", mock.Anything, int64(5)).Return(nil, tt.repoErr)
			}

			_, err := f.svc.UpdateBooking(context.Background(), tt.actor, 5, UpdateBookingRequest{Quantity: qty(2)})
			assert.ErrorIs(t, err, tt.want)

			err = f.svc.CancelBooking(context.Background(), tt.actor, 5)
			assert.ErrorIs(t, err, tt.want)

			f.bookings.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything)
			f.bookings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestService_CancelBooking_DeletesRejected(t *testing.T) {
	rejected := pendingBooking()
	rejected.Status = domain.BookingRejected

	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(5)).Return(rejected, nil)
	f.bookings.On("Delete", mock.Anything, int64(5)).Return(nil)
	f.users.On("GetByID", mock.Anything, int64(1)).Return(aliceUser(), nil)
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(m notification.Message) bool { return m.Subject == "Booking Cancelled" })).Return(nil)

	require.NoError(t, f.svc.CancelBooking(context.Background(), alice, 5))
	f.bookings.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
	assert.Equal(t, live.BookingCancelled, f.events.events[0].Type)
}

func TestService_ApprovedBetweenReadAndWrite(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, int64(5)).Return(pendingBooking(), nil)
	f.bookings.On("SlotTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, int64(5)).Return(false, nil)
	f.bookings.On("UpdateDetails", mock.Anything, mock.Anything).Return(repository.ErrBookingLocked)
	f.bookings.On("Delete", mock.Anything, int64(5)).Return(repository.ErrBookingLocked)

	_, err := f.svc.UpdateBooking(context.Background(), alice, 5, UpdateBookingRequest{Quantity: qty(3)})
	assert.ErrorIs(t, err, ErrImmutable)

	err = f.svc.CancelBooking(context.Background(), alice, 5)
	assert.ErrorIs(t, err, ErrImmutable)

	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	assert.Empty(t, f.events.events)
}

func TestService_ApproveBooking_MailsReceipt(t *testing.T) {
	f := newFixture()

	approved := pendingBooking()
	approved.Status = domain.BookingApproved
	approved.PaymentStatus = domain.PaymentApproved

	receipt := filepath.Join(t.TempDir(), "alice_booking_5.pdf")
	require.NoError(t, os.WriteFile(receipt, []byte("%PDF-1.3"), 0o644))

	f.bookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingApproved,
		mock.MatchedBy(func(p *domain.PaymentStatus) bool { return p != nil && *p == domain.PaymentApproved })).
		Return(approved, nil)
	f.users.On("GetByID", mock.Anything, int64(1)).Return(aliceUser(), nil)
	f.docs.On("BookingReceipt", *approved, domain.UserSummary{ID: 1, Username: "alice", Email: "alice@example.com"}).Return(receipt, nil)
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(m notification.Message) bool {
		return m.Subject == "Booking Approved & Receipt" &&
			len(m.Attachments) == 1 &&
			m.Attachments[0].Filename == "alice_booking_5.pdf" &&
			m.Attachments[0].ContentType == "application/pdf"
	})).Return(nil)

	b, err := f.svc.ApproveBooking(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, b.Status)
	assert.Equal(t, domain.PaymentApproved, b.PaymentStatus)
	f.docs.AssertExpectations(t)
	f.mailer.AssertExpectations(t)
}

func TestService_ApproveBooking_ReceiptFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	approved := pendingBooking()
	approved.Status = domain.BookingApproved

	f.bookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingApproved, mock.Anything).Return(approved, nil)
	f.users.On("GetByID", mock.Anything, int64(1)).Return(aliceUser(), nil)
	f.docs.On("BookingReceipt", mock.Anything, mock.Anything).Return("", errors.New("disk full"))

	_, err := f.svc.ApproveBooking(context.Background(), 5)
	require.NoError(t, err)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestService_ApproveBooking_NotFound(t *testing.T) {
	f := newFixture()
	f.bookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingApproved, mock.Anything).Return(nil, repository.ErrNotFound)

	_, err := f.svc.ApproveBooking(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_RejectBooking_KeepsPayment(t *testing.T) {
	f := newFixture()
	rejected := pendingBooking()
	rejected.Status = domain.BookingRejected

	f.bookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingRejected, (*domain.PaymentStatus)(nil)).Return(rejected, nil)
	f.users.On("GetByID", mock.Anything, int64(1)).Return(aliceUser(), nil)
	f.mailer.On("Send", mock.Anything, mock.MatchedBy(func(m notification.Message) bool { return m.Subject == "Booking Rejected" })).Return(nil)

	b, err := f.svc.RejectBooking(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingRejected, b.Status)
	assert.Equal(t, domain.PaymentUnpaid, b.PaymentStatus)
	f.bookings.AssertExpectations(t)
}

func TestService_Availability(t *testing.T) {
	f := newFixture()
	date := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	f.bookings.On("ListActiveOnDate", mock.Anything, date).Return([]domain.Booking{
		{Category: "Badminton", BookingTime: "06:00 AM", Status: domain.BookingPending},
	}, nil)

	resp, err := f.svc.Availability(context.Background(), "2030-01-01")
	require.NoError(t, err)

	assert.Equal(t, "Tue Jan 01 2030", resp.BookingDate)
	require.Len(t, resp.SlotsByCategory, 4)

	badminton := resp.SlotsByCategory["Badminton"]
	require.Len(t, badminton, 5)
	assert.Equal(t, SlotStatus{Time: "06:00 AM", Status: SlotBooked}, badminton[0])
	for _, s := range badminton[1:] {
		assert.Equal(t, SlotAvailable, s.Status)
	}

	for _, category := range []string{"Football", "Table Tennis", "Basketball"} {
		slots := resp.SlotsByCategory[category]
		require.Len(t, slots, 5)
		for i, s := range slots {
			assert.Equal(t, domain.BookingTimes[i], s.Time)
			assert.Equal(t, SlotAvailable, s.Status)
		}
	}
}

func TestService_Availability_InvalidDate(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Availability(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.svc.Availability(context.Background(), "2030-13-40")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestService_ListBookings(t *testing.T) {
	f := newFixture()
	f.bookings.On("List", mock.Anything, repository.BookingFilter{
		Status:    domain.BookingPending,
		SortField: repository.SortByBookingDate,
		Ascending: true,
	}).Return([]domain.Booking{}, nil)

	_, err := f.svc.ListBookings(context.Background(), "pending", "asc")
	require.NoError(t, err)

	_, err = f.svc.ListBookings(context.Background(), "lost", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	f.bookings.AssertExpectations(t)
}

func TestService_Stats(t *testing.T) {
	f := newFixture()
	f.bookings.On("Count", mock.Anything).Return(int64(3), nil)
	f.bookings.On("CountByStatus", mock.Anything, int64(0)).Return([]repository.StatusCount{
		{Status: domain.BookingPending, Count: 2},
		{Status: domain.BookingApproved, Count: 1},
	}, nil)
	f.bookings.On("CountByDay", mock.Anything).Return([]repository.DayCount{
		{Date: dayOffset(4), Count: 1},
		{Date: dayOffset(5), Count: 2},
	}, nil)

	stats, err := f.svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalBookings)
	assert.Equal(t, map[string]int64{"approved": 1, "pending": 2, "rejected": 0, "cancelled": 0}, stats.StatusCounts)
	assert.Equal(t, []DailyCount{{Date: "2030-01-05", Count: 1}, {Date: "2030-01-06", Count: 2}}, stats.DailyCounts)
}

func TestService_FullReport(t *testing.T) {
	f := newFixture()
	rows := []domain.Booking{*pendingBooking()}
	f.bookings.On("List", mock.Anything, repository.BookingFilter{
		Status:    domain.BookingApproved,
		SortField: repository.SortByCreatedAt,
	}).Return(rows, nil)
	f.docs.On("BookingReport", "approved", rows).Return("/tmp/report.pdf", nil)

	path, err := f.svc.FullReport(context.Background(), "approved", "")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/report.pdf", path)
}

func TestService_Graphs(t *testing.T) {
	f := newFixture()
	f.bookings.On("CountByStatus", mock.Anything, int64(0)).Return([]repository.StatusCount{{Status: domain.BookingPending, Count: 4}}, nil)
	f.bookings.On("CountByCategory", mock.Anything).Return([]repository.CategoryCount{
		{Category: "Football", Count: 3},
		{Category: "Badminton", Count: 1},
	}, nil)

	png, err := f.svc.StatusGraph(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(png[:4]))

	png, err = f.svc.CategoryGraph(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(png[:4]))
}
