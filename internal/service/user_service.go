package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edumind/elearn-backend/internal/model"
	"github.com/edumind/elearn-backend/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var (
	ErrEmailTaken   = errors.New("user already exists")
	ErrResetExpired = errors.New("reset window has expired")
)

// Mailer delivers the registration and password-reset mails.
type Mailer interface {
	SendOTP(to, name, otp string) error
	SendPasswordReset(to, token string) error
}

// UserService handles registration, login and password recovery.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
	mailer   Mailer
	log      zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService, mailer Mailer, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		mailer:   mailer,
		log:      log.With().Str("component", "user_service").Logger(),
	}
}

// Register starts a registration: no account is created yet. The pending
// registration travels inside the activation token; the OTP goes to the
// user's mailbox.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (string, error) {
	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("check email: %w", err)
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	otp, err := s.auth.GenerateOTP()
	if err != nil {
		return "", err
	}

	token, err := s.auth.GenerateActivationToken(req.Name, req.Email, hash, otp)
	if err != nil {
		return "", fmt.Errorf("sign activation token: %w", err)
	}

	if err := s.mailer.SendOTP(req.Email, req.Name, otp); err != nil {
		return "", fmt.Errorf("send otp mail: %w", err)
	}

	s.log.Info().Str("email", req.Email).Msg("Registration started, OTP sent")
	return token, nil
}

// Verify completes a registration: the activation token is consumed
// (single-use) and the account created.
func (s *UserService) Verify(ctx context.Context, req *model.VerifyRequest) (*model.User, error) {
	claims, err := s.auth.ConsumeActivationToken(ctx, req.ActivationToken, req.OTP)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         claims.Name,
		Email:        claims.Email,
		PasswordHash: claims.PasswordHash,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Int("user_id", user.ID).Str("email", user.Email).Msg("Account registered")
	return user, nil
}

// Login validates credentials and returns a signed login token.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (string, *model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := s.auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, user, nil
}

// GetByID resolves a user by id.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ForgotPassword mails a reset link and opens the reset window on the row.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := s.auth.GenerateResetToken(user.Email)
	if err != nil {
		return fmt.Errorf("sign reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(user.Email, token); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	deadline := time.Now().Add(s.auth.cfg.ResetExpiry)
	if err := s.userRepo.SetResetDeadline(ctx, user.ID, deadline); err != nil {
		return fmt.Errorf("set reset deadline: %w", err)
	}

	s.log.Info().Int("user_id", user.ID).Msg("Password reset mail sent")
	return nil
}

// ResetPassword verifies the reset token, checks the window stored on the
// user row, and replaces the password hash.
func (s *UserService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	claims, err := s.auth.ParseResetToken(tokenStr)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return err
	}

	if user.ResetPasswordExpire == nil || user.ResetPasswordExpire.Before(time.Now()) {
		return ErrResetExpired
	}

	hash, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info().Int("user_id", user.ID).Msg("Password reset")
	return nil
}

// ListExcept returns every user except the caller, without password hashes.
func (s *UserService) ListExcept(ctx context.Context, excludeID int) ([]model.User, error) {
	return s.userRepo.ListExcept(ctx, excludeID)
}

// ToggleRole flips a user between the user and admin roles. Superadmins
// are never demoted.
func (s *UserService) ToggleRole(ctx context.Context, id int) (model.Role, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	var next model.Role
	switch user.Role {
	case model.RoleUser:
		next = model.RoleAdmin
	case model.RoleAdmin:
		next = model.RoleUser
	default:
		return user.Role, nil
	}

	if err := s.userRepo.UpdateRole(ctx, id, next); err != nil {
		return "", fmt.Errorf("update role: %w", err)
	}

	s.log.Info().Int("user_id", id).Str("role", string(next)).Msg("Role updated")
	return next, nil
}
