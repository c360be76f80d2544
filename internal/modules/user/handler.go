package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sportshub/internal/middleware"
	"sportshub/internal/modules/auth"
	"sportshub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authn gin.HandlerFunc) {
	api.GET("/showusers", authn, middleware.AdminOnly(), h.ActiveUsers)
	api.GET("/user/profile", authn, h.OwnProfile)

	admin := api.Group("/admin", authn, middleware.AdminOnly())
	{
		admin.GET("/all-users", h.NonAdminUsers)
		admin.PUT("/update-user/:id", h.Update)
		admin.DELETE("/delete-user/:id", h.Delete)
		admin.PUT("/restore-user/:id", h.Restore)
		admin.GET("/user-profile/:id", h.Profile)
		admin.GET("/send-users-pdf", h.SendUserList)
	}
}

func (h *Handler) ActiveUsers(c *gin.Context) {
	users, err := h.service.ActiveUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) NonAdminUsers(c *gin.Context) {
	users, err := h.service.NonAdminUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to fetch users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	u, err := h.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err, "Failed to update user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User updated successfully", "user": u})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to delete user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User deactivated (soft deleted)"})
}

func (h *Handler) Restore(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	if err := h.service.RestoreUser(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to restore user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User restored successfully"})
}

func (h *Handler) Profile(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	p, err := h.service.Profile(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to fetch user profile")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": p})
}

func (h *Handler) OwnProfile(c *gin.Context) {
	p, err := h.service.Profile(c.Request.Context(), middleware.ActorFrom(c).ID)
	if err != nil {
		h.fail(c, err, "Failed to fetch profile")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": p})
}

func (h *Handler) SendUserList(c *gin.Context) {
	h.service.SendUserList()
	response.Success(c, http.StatusAccepted, gin.H{"message": "User list PDF queued for email"})
}

func userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user id")
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrAdminTarget):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Cannot modify admin users")
	case errors.Is(err, auth.ErrUsernameTaken):
		response.Error(c, http.StatusConflict, "USERNAME_TAKEN", "Username already exists")
	case errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, auth.ErrInvalidUsername),
		errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrInvalidPhone),
		errors.Is(err, auth.ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
