package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-SimpleBooking/internal/service/auth/models"
	"github.com/m04kA/SMC-SimpleBooking/pkg/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc, err := NewService(Config{
		Username:     "admin",
		PasswordHash: string(hash),
		JWTSecret:    "jwt-secret",
		TokenTTL:     time.Hour,
	}, logger.NewNop())
	require.NoError(t, err)
	return svc
}

func TestNewService_NotConfigured(t *testing.T) {
	_, err := NewService(Config{Username: "admin"}, logger.NewNop())
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewService(Config{Username: "admin", PasswordHash: "plain", JWTSecret: "x"}, logger.NewNop())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestService_LoginAndParse(t *testing.T) {
	svc := newTestService(t)
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, now.Add(time.Hour), resp.ExpiresAt)

	claims, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), &models.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &models.LoginRequest{Username: "root", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_ParseToken_Expired(t *testing.T) {
	svc := newTestService(t)
	issued := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	resp, err := svc.Login(context.Background(), &models.LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.ParseToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_ParseToken_Rejects(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ParseToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// чужой секрет
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// чужой издатель
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("jwt-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
