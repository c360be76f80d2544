package auth

import (
	"errors"
	"net/http"

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

func (h *Handler) RegisterRoutes(api *gin.RouterGroup, authn gin.HandlerFunc) {
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.PUT("/user/change-password", authn, h.ChangePassword)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Registration failed")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Login failed")
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), middleware.ActorFrom(c), req); err != nil {
		h.fail(c, err, "Failed to change password")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *Handler) fail(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrMissingFields):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields")
	case errors.Is(err, ErrInvalidUsername):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Username must be 3-20 characters, no spaces or special characters except _")
	case errors.Is(err, ErrUsernameTaken):
		response.Error(c, http.StatusConflict, "USERNAME_TAKEN", "Username already exists")
	case errors.Is(err, ErrInvalidEmail):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid email format")
	case errors.Is(err, ErrInvalidPhone):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Phone number must be 10 digits")
	case errors.Is(err, ErrWeakPassword):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password must be at least 6 characters and include at least one letter, one number, and one special character")
	case errors.Is(err, ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Role must be either 'admin' or 'user'")
	case errors.Is(err, ErrAdminSignup):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin accounts cannot be self-registered")
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
	case errors.Is(err, ErrAccountDeactivated):
		response.Error(c, http.StatusForbidden, "ACCOUNT_DEACTIVATED", "Account deactivated. Please contact admin.")
	case errors.Is(err, ErrLoginLocked):
		response.Error(c, http.StatusTooManyRequests, "LOGIN_LOCKED", "Too many failed attempts. Try again later.")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
