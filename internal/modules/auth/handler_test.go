package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sportshub/internal/domain"
	"sportshub/internal/middleware"
	"sportshub/internal/repository"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func fakeAuthn(c *gin.Context) {
	id, _ := strconv.ParseInt(c.GetHeader("X-User-ID"), 10, 64)
	c.Set(middleware.ContextUserID, id)
	c.Set(middleware.ContextRole, "user")
	c.Next()
}

func post(f *fixture, method, path string, body any) *httptest.ResponseRecorder {
	r := gin.New()
	NewHandler(f.svc).RegisterRoutes(r.Group("/api"), fakeAuthn)

	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "7")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHandler_RegisterTaken(t *testing.T) {
	f := newFixture(false)
	f.users.On("UsernameTaken", mock.Anything, "john_doe", int64(0)).Return(true, nil)

	w := post(f, http.MethodPost, "/api/register", validRegister())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "USERNAME_TAKEN", errorCode(t, w))
}

func TestHandler_RegisterAdminRefused(t *testing.T) {
	f := newFixture(false)
	f.users.On("UsernameTaken", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	req := validRegister()
	req.Role = "admin"
	w := post(f, http.MethodPost, "/api/register", req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_LoginCodes(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		w := post(newFixture(false), http.MethodPost, "/api/login", map[string]string{"username": "john_doe"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("locked", func(t *testing.T) {
		f := newFixture(false)
		f.guard.On("Locked", mock.Anything, "john_doe").Return(true, nil)
		w := post(f, http.MethodPost, "/api/login", LoginRequest{Username: "john_doe", Password: "abc12@"})
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "LOGIN_LOCKED", errorCode(t, w))
	})

	t.Run("unknown", func(t *testing.T) {
		f := newFixture(false)
		f.guard.On("Locked", mock.Anything, mock.Anything).Return(false, nil)
		f.guard.On("Fail", mock.Anything, mock.Anything).Return(false, nil)
		f.users.On("GetByUsername", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)
		w := post(f, http.MethodPost, "/api/login", LoginRequest{Username: "ghost", Password: "abc12@"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, w))
	})

	t.Run("deactivated", func(t *testing.T) {
		f := newFixture(false)
		f.guard.On("Locked", mock.Anything, mock.Anything).Return(false, nil)
		f.users.On("GetByUsername", mock.Anything, "john_doe").Return(&domain.User{ID: 1, IsDeleted: true}, nil)
		w := post(f, http.MethodPost, "/api/login", LoginRequest{Username: "john_doe", Password: "abc12@"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", errorCode(t, w))
	})
}

func TestHandler_Login(t *testing.T) {
	f := newFixture(false)
	f.guard.On("Locked", mock.Anything, mock.Anything).Return(false, nil)
	f.guard.On("Reset", mock.Anything, mock.Anything).Return(nil)
	f.users.On("GetByUsername", mock.Anything, "john_doe").Return(&domain.User{
		ID: 7, Username: "john_doe", Role: domain.RoleUser, PasswordHash: hashed(t, "abc12@"),
	}, nil)
	f.tokens.On("GenerateToken", int64(7), "john_doe", "user").Return("signed", nil)

	w := post(f, http.MethodPost, "/api/login", LoginRequest{Username: "john_doe", Password: "abc12@"})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data LoginResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "signed", body.Data.Token)
	assert.Equal(t, "john_doe", body.Data.User.Username)
}

func TestHandler_ChangePasswordWrongCurrent(t *testing.T) {
	f := newFixture(false)
	f.users.On("GetByID", mock.Anything, int64(7)).Return(&domain.User{ID: 7, PasswordHash: hashed(t, "abc12@")}, nil)

	w := post(f, http.MethodPut, "/api/user/change-password", ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newer1!"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
