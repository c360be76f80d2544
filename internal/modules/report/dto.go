package report

type CreateReportRequest struct {
	Title       string `json:"title" validate:"required,min=5,max=100"`
	Description string `json:"description" validate:"required,min=20,max=1000"`
	Category    string `json:"category" validate:"required,oneof=Facility Equipment Staff Booking Other"`
}

type RespondRequest struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}
