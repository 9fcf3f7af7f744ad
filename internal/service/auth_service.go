package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/edumind/elearn-backend/internal/config"
	"github.com/edumind/elearn-backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenUsed          = errors.New("token has already been used")
	ErrInvalidOTP         = errors.New("incorrect otp")
)

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID int        `json:"user_id"`
	Role   model.Role `json:"role"`
}

// ActivationClaims carry a pending registration plus its OTP. The account
// is only created after the OTP round-trips through the user's mailbox.
type ActivationClaims struct {
	jwt.RegisteredClaims
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	OTP          string `json:"otp"`
}

// ResetClaims identify the account a password-reset link belongs to.
type ResetClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// AuthService handles password hashing, JWT issuance and the activation
// and reset token flows.
type AuthService struct {
	cfg *config.Config
	rdb *redis.Client
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client) *AuthService {
	return &AuthService{cfg: cfg, rdb: rdb}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateOTP returns a 6-digit numeric one-time code from crypto/rand.
func (s *AuthService) GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GenerateToken creates a login JWT for a user.
func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: user.ID,
		Role:   user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses and validates a login JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, s.keyFunc(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// GenerateActivationToken signs a short-lived token carrying the pending
// registration and its OTP.
func (s *AuthService) GenerateActivationToken(name, email, passwordHash, otp string) (string, error) {
	now := time.Now()

	claims := ActivationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.ActivationExpiry)),
		},
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		OTP:          otp,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.ActivationSecret))
}

// ParseActivationToken validates an activation token and returns its claims.
func (s *AuthService) ParseActivationToken(tokenStr string) (*ActivationClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &ActivationClaims{}, s.keyFunc(s.cfg.ActivationSecret))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ActivationClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ConsumeActivationToken validates the token, compares the OTP in constant
// time, and marks the token's JTI as used in Redis so it is single-use.
func (s *AuthService) ConsumeActivationToken(ctx context.Context, tokenStr, otp string) (*ActivationClaims, error) {
	claims, err := s.ParseActivationToken(tokenStr)
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(claims.OTP), []byte(otp)) != 1 {
		return nil, ErrInvalidOTP
	}

	// SetNX marks the JTI consumed; a falsy reply means a replay.
	usedKey := config.CacheKey.ActivationUsedKey(claims.ID)
	set, err := s.rdb.SetNX(ctx, usedKey, 1, s.cfg.ActivationExpiry).Result()
	if err != nil {
		return nil, fmt.Errorf("mark activation used: %w", err)
	}
	if !set {
		return nil, ErrTokenUsed
	}

	return claims, nil
}

// GenerateResetToken signs a password-reset token for an email address.
func (s *AuthService) GenerateResetToken(email string) (string, error) {
	now := time.Now()

	claims := ResetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.ResetExpiry)),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.ResetSecret))
}

// ParseResetToken validates a password-reset token and returns its claims.
func (s *AuthService) ParseResetToken(tokenStr string) (*ResetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &ResetClaims{}, s.keyFunc(s.cfg.ResetSecret))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *AuthService) keyFunc(secret string) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}
}
