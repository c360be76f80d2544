package achievement

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sportshub/internal/middleware"
	"sportshub/internal/pkg/response"
	"sportshub/internal/storage"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authn gin.HandlerFunc) {
	api.GET("/achievements", h.List)
	api.GET("/achievements/:id", h.Get)

	admin := api.Group("/admin", authn, middleware.AdminOnly())
	{
		admin.POST("/achievements", h.Create)
		admin.PUT("/achievements/:id", h.Update)
		admin.DELETE("/achievements/:id", h.Delete)
		admin.PUT("/achievements-reorder", h.Reorder)
	}
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(),
		c.Query("featured") == "true",
		c.Query("category"),
		ParseLimit(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit))),
	)
	if err != nil {
		h.fail(c, err, "Failed to fetch achievements")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"achievements": items})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := achievementID(c)
	if !ok {
		return
	}
	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to fetch achievement")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"achievement": a})
}

func (h *Handler) Create(c *gin.Context) {
	in, image, ok := formInput(c)
	if !ok {
		return
	}
	a, err := h.service.Create(c.Request.Context(), in, image)
	if err != nil {
		h.fail(c, err, "Failed to add achievement")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": "Achievement added successfully", "achievement": a})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := achievementID(c)
	if !ok {
		return
	}
	in, image, ok := formInput(c)
	if !ok {
		return
	}
	a, err := h.service.Update(c.Request.Context(), id, in, image)
	if err != nil {
		h.fail(c, err, "Failed to update achievement")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Achievement updated successfully", "achievement": a})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := achievementID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete achievement")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Achievement deleted successfully"})
}

func (h *Handler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Items must be an array")
		return
	}
	if err := h.service.Reorder(c.Request.Context(), req); err != nil {
		h.fail(c, err, "Failed to reorder achievements")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Achievement order updated successfully"})
}

func formValue(c *gin.Context, key string) *string {
	if v, ok := c.GetPostForm(key); ok {
		return &v
	}
	return nil
}

func formInput(c *gin.Context) (Input, *multipart.FileHeader, bool) {
	in := Input{
		Title:       formValue(c, "title"),
		Description: formValue(c, "description"),
		Date:        formValue(c, "date"),
		Category:    formValue(c, "category"),
		Featured:    formValue(c, "featured"),
		Order:       formValue(c, "order"),
	}

	image, err := c.FormFile("image")
	switch {
	case err == nil:
		return in, image, true
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return in, nil, true
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid multipart form")
		return in, nil, false
	}
}

func achievementID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid achievement id")
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingFields):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Title, description, date and category are required")
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE", "Invalid date format. Use YYYY-MM-DD")
	case errors.Is(err, ErrInvalidOrder):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Order must be an integer")
	case errors.Is(err, ErrItemsNotArray):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Items must be an array")
	case errors.Is(err, storage.ErrEmptyFile), errors.Is(err, storage.ErrNotImage):
		response.Error(c, http.StatusBadRequest, "INVALID_FILE", "Only non-empty image files are allowed")
	case errors.Is(err, storage.ErrFileTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "Image must be 5MB or smaller")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Achievement not found")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
