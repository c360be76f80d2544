package report

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sportshub/internal/domain"
	"sportshub/internal/middleware"
	"sportshub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authn gin.HandlerFunc) {
	user := api.Group("", authn, middleware.UserOnly())
	{
		user.POST("/report-problem", h.Submit)
		user.GET("/my-reports", h.MyReports)
	}

	admin := api.Group("/admin", authn, middleware.AdminOnly())
	{
		admin.GET("/reports", h.List)
		admin.PUT("/respond-report/:id", h.Respond)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rep, err := h.service.Submit(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		h.fail(c, err, "Failed to submit report")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "Problem reported successfully", "report": rep})
}

func (h *Handler) MyReports(c *gin.Context) {
	reports, err := h.service.MyReports(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		h.fail(c, err, "Failed to fetch reports")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reports": reports})
}

func (h *Handler) List(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.fail(c, err, "Failed to fetch reports")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reports": reports})
}

func (h *Handler) Respond(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid report id")
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rep, err := h.service.Respond(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Failed to respond to report")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Response sent successfully", "report": rep})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrTitleLength),
		errors.Is(err, ErrDescriptionLength),
		errors.Is(err, ErrMissingResponse):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", capitalize(err.Error()))
	case errors.Is(err, ErrInvalidCategory):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Invalid category. Allowed categories: "+strings.Join(domain.ReportCategories, ", "))
	case errors.Is(err, ErrInvalidStatus):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid report status",
			gin.H{"allowed": []domain.ReportStatus{domain.ReportPending, domain.ReportInProgress, domain.ReportResolved}})
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Report not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
