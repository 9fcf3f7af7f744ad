package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/edumind/elearn-backend/internal/config"
	"github.com/edumind/elearn-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService() *AuthService {
	cfg := &config.Config{
		JWTSecret:        "jwt-secret",
		JWTExpiry:        time.Hour,
		ActivationSecret: "activation-secret",
		ActivationExpiry: 5 * time.Minute,
		ResetSecret:      "reset-secret",
		ResetExpiry:      5 * time.Minute,
		BcryptCost:       bcrypt.MinCost,
	}
	return NewAuthService(cfg, nil)
}

func TestHashAndCheckPassword(t *testing.T) {
	svc := newAuthService()

	hash, err := svc.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, svc.CheckPassword(hash, "hunter22"))
	assert.ErrorIs(t, svc.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestGenerateOTP(t *testing.T) {
	svc := newAuthService()

	for i := 0; i < 20; i++ {
		otp, err := svc.GenerateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		_, err = strconv.Atoi(otp)
		require.NoError(t, err, "otp must be numeric: %s", otp)
	}
}

func TestLoginTokenRoundTrip(t *testing.T) {
	svc := newAuthService()
	user := &model.User{ID: 42, Role: model.RoleAdmin}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newAuthService()
	other := newAuthService()
	other.cfg = &config.Config{JWTSecret: "different", JWTExpiry: time.Hour}

	token, err := other.GenerateToken(&model.User{ID: 1, Role: model.RoleUser})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestActivationTokenRoundTrip(t *testing.T) {
	svc := newAuthService()

	token, err := svc.GenerateActivationToken("Ada", "ada@example.com", "hash", "123456")
	require.NoError(t, err)

	claims, err := svc.ParseActivationToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "123456", claims.OTP)
	assert.NotEmpty(t, claims.ID, "activation tokens carry a JTI")
}

func TestActivationTokenRejectsLoginSecret(t *testing.T) {
	svc := newAuthService()

	// A login token must never pass as an activation token.
	token, err := svc.GenerateToken(&model.User{ID: 1, Role: model.RoleUser})
	require.NoError(t, err)

	_, err = svc.ParseActivationToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConsumeActivationTokenWrongOTP(t *testing.T) {
	svc := newAuthService()

	token, err := svc.GenerateActivationToken("Ada", "ada@example.com", "hash", "123456")
	require.NoError(t, err)

	// The OTP check runs before Redis is touched, so a nil client is fine.
	_, err = svc.ConsumeActivationToken(t.Context(), token, "654321")
	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestConsumeActivationTokenExpired(t *testing.T) {
	svc := newAuthService()
	svc.cfg.ActivationExpiry = -time.Minute

	token, err := svc.GenerateActivationToken("Ada", "ada@example.com", "hash", "123456")
	require.NoError(t, err)

	_, err = svc.ConsumeActivationToken(t.Context(), token, "123456")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetTokenRoundTrip(t *testing.T) {
	svc := newAuthService()

	token, err := svc.GenerateResetToken("ada@example.com")
	require.NoError(t, err)

	claims, err := svc.ParseResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestParseResetTokenGarbage(t *testing.T) {
	svc := newAuthService()

	_, err := svc.ParseResetToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
