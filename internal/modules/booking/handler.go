package booking

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"sportshub/internal/middleware"
	"sportshub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the booking routes on api; authn must populate the caller identity.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authn gin.HandlerFunc) {
	user := api.Group("", authn, middleware.UserOnly())
	{
		user.POST("/book", h.Create)
		user.PUT("/book/:id", h.Update)
		user.DELETE("/book/:id", h.Cancel)
		user.GET("/user/bookings", h.MyBookings)
	}

	api.GET("/user/slot-availability", authn, h.Availability)

	admin := api.Group("/admin", authn, middleware.AdminOnly())
	{
		admin.PUT("/approve-booking/:id", h.Approve)
		admin.PUT("/reject-booking/:id", h.Reject)
		admin.GET("/all-bookings", h.List)
		admin.GET("/bookings/stats", h.Stats)
		admin.GET("/bookings/full-report", h.FullReport)
		admin.GET("/bookings/status-graph", h.StatusGraph)
		admin.GET("/bookings/category-graph", h.CategoryGraph)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		h.fail(c, err, "Failed to create booking")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		h.fail(c, err, "Failed to update booking")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		h.fail(c, err, "Failed to cancel booking")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "cancelled": true})
}

func (h *Handler) MyBookings(c *gin.Context) {
	bookings, err := h.service.MyBookings(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		h.fail(c, err, "Failed to fetch bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.ApproveBooking(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to approve booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.RejectBooking(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to reject booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) List(c *gin.Context) {
	bookings, err := h.service.ListBookings(c.Request.Context(), c.Query("status"), c.Query("sort"))
	if err != nil {
		h.fail(c, err, "Failed to fetch booking history")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) Availability(c *gin.Context) {
	resp, err := h.service.Availability(c.Request.Context(), c.Query("bookingDate"))
	if err != nil {
		h.fail(c, err, "Slot check failed")
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch booking statistics")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) FullReport(c *gin.Context) {
	path, err := h.service.FullReport(c.Request.Context(), c.Query("status"), c.Query("sort"))
	if err != nil {
		h.fail(c, err, "Failed to generate full booking report")
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

func (h *Handler) StatusGraph(c *gin.Context) {
	png, err := h.service.StatusGraph(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to generate status graph")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) CategoryGraph(c *gin.Context) {
	png, err := h.service.CategoryGraph(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to generate category graph")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrLeadTime):
		response.Error(c, http.StatusBadRequest, "LEAD_TIME", "Booking must be made at least 3 days in advance.")
	case errors.Is(err, ErrInvalidCategory):
		response.Error(c, http.StatusBadRequest, "INVALID_CATEGORY", "Invalid category. Allowed categories: Badminton, Football, Table Tennis, Basketball")
	case errors.Is(err, ErrInvalidTime):
		response.Error(c, http.StatusBadRequest, "INVALID_TIME", "Invalid booking time. Allowed times: 06:00 AM, 08:00 AM, 10:00 AM, 04:00 PM, 06:00 PM")
	case errors.Is(err, ErrInvalidQuantity):
		response.Error(c, http.StatusBadRequest, "INVALID_QUANTITY", "Quantity must be between 1 and 5.")
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Invalid date format. Use YYYY-MM-DD")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown booking status")
	case errors.Is(err, ErrSlotConflict):
		response.Error(c, http.StatusConflict, "SLOT_CONFLICT", "This slot is already booked. Please choose another slot.")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only change your own bookings")
	case errors.Is(err, ErrImmutable):
		response.Error(c, http.StatusForbidden, "BOOKING_IMMUTABLE", "Approved bookings cannot be changed")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
