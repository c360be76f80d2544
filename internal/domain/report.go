package domain

import "time"

type ReportStatus string

const (
	ReportPending    ReportStatus = "pending"
	ReportInProgress ReportStatus = "in-progress"
	ReportResolved   ReportStatus = "resolved"
)

func (s ReportStatus) Valid() bool {
	return s == ReportPending || s == ReportInProgress || s == ReportResolved
}

var ReportCategories = []string{"Facility", "Equipment", "Staff", "Booking", "Other"}

type Report struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"userId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Status      ReportStatus `json:"status"`
	Response    string       `json:"response"`
	Attachments []string     `json:"attachments"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`

	User *UserSummary `json:"user,omitempty"`
}
