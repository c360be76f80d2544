package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("secret", time.Minute)

	token, err := svc.GenerateToken(7, "john_doe", "user")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "john_doe", claims.Username)
	assert.Equal(t, "user", claims.Role)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := New("one", time.Minute).GenerateToken(7, "john_doe", "user")
	require.NoError(t, err)

	_, err = New("two", time.Minute).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Expired(t *testing.T) {
	token, err := New("secret", -time.Minute).GenerateToken(7, "john_doe", "user")
	require.NoError(t, err)

	_, err = New("secret", time.Minute).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{UserID: 7, Role: "admin", RegisteredClaims: jwtlib.RegisteredClaims{Issuer: Issuer}}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = New("secret", time.Minute).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_RejectsForeignIssuer(t *testing.T) {
	claims := Claims{UserID: 7, Role: "admin", RegisteredClaims: jwtlib.RegisteredClaims{
		Issuer:    "someone-else",
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = New("secret", time.Minute).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerate_SetsSubjectAndIssuer(t *testing.T) {
	svc := New("secret", time.Minute)
	fixed := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	token, err := svc.GenerateToken(42, "jane", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, fixed.Add(time.Minute), claims.ExpiresAt.Time.UTC())
}
