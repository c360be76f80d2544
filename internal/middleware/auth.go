package middleware

import (
	"net/http"
	"strings"

	"sportshub/internal/domain"
	"sportshub/internal/pkg/jwt"
	"sportshub/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Context keys set by JWTAuth.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

// JWTAuth validates the bearer token and stores the caller identity in the context.
// Websocket upgrades may pass the token as ?token= since browsers cannot set headers there.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, code, msg := bearerToken(c)
		if code != "" {
			response.Error(c, http.StatusUnauthorized, code, msg)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (token, code, msg string) {
	h := c.GetHeader("Authorization")
	if h == "" {
		if websocket.IsWebSocketUpgrade(c.Request) {
			if q := strings.TrimSpace(c.Query("token")); q != "" {
				return q, "", ""
			}
		}
		return "", "AUTH_HEADER_MISSING", "Missing Authorization header"
	}

	if !strings.HasPrefix(h, "Bearer ") {
		return "", "INVALID_AUTH_FORMAT", "Authorization header must be Bearer <token>"
	}

	token = strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if token == "" {
		return "", "INVALID_AUTH_FORMAT", "Empty token"
	}
	return token, "", ""
}

func ActorFrom(c *gin.Context) domain.Actor {
	return domain.Actor{
		ID:       c.GetInt64(ContextUserID),
		Username: c.GetString(ContextUsername),
		Role:     domain.UserRole(c.GetString(ContextRole)),
	}
}
