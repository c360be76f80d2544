package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every status in report order.
var BookingStatuses = []BookingStatus{BookingApproved, BookingPending, BookingRejected, BookingCancelled}

func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPaid     PaymentStatus = "paid"
	PaymentApproved PaymentStatus = "approved"
)

// Facility categories and slot labels, in display order.
var (
	BookingCategories = []string{"Badminton", "Football", "Table Tennis", "Basketball"}
	BookingTimes      = []string{"06:00 AM", "08:00 AM", "10:00 AM", "04:00 PM", "06:00 PM"}
)

type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"userId"`
	Category      string        `json:"category"`
	BookingDate   time.Time     `json:"bookingDate"`
	BookingTime   string        `json:"bookingTime"`
	Quantity      int           `json:"quantity"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	User *UserSummary `json:"user,omitempty"`
}

// Day truncates t to its UTC calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
