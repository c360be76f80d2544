package booking

// CreateBookingRequest carries quantity as a float so fractional values reach
// validation instead of failing at decode time.
type CreateBookingRequest struct {
	Category    string   `json:"category"`
	BookingDate string   `json:"bookingDate"`
	BookingTime string   `json:"bookingTime"`
	Quantity    *float64 `json:"quantity"`
}

// UpdateBookingRequest is the owner-editable subset of a booking. Other fields are ignored.
type UpdateBookingRequest struct {
	Category    *string  `json:"category"`
	BookingDate *string  `json:"bookingDate"`
	BookingTime *string  `json:"bookingTime"`
	Quantity    *float64 `json:"quantity"`
}

type SlotStatus struct {
	Time   string `json:"time"`
	Status string `json:"status"`
}

const (
	SlotBooked    = "Booked"
	SlotAvailable = "Available"
)

type AvailabilityResponse struct {
	BookingDate     string                  `json:"bookingDate"`
	SlotsByCategory map[string][]SlotStatus `json:"slotsByCategory"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type StatsResponse struct {
	TotalBookings int64            `json:"totalBookings"`
	StatusCounts  map[string]int64 `json:"statusCounts"`
	DailyCounts   []DailyCount     `json:"dailyCounts"`
}
