package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/task-manager-app/backend/internal/domain"
	"github.com/task-manager-app/backend/internal/repository/ports"
	"github.com/task-manager-app/backend/internal/util"
)

var (
	ErrMissingFields      = errors.New("name and email are required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
	ErrMailDelivery       = errors.New("reset email delivery failed")
)

// ResetMailer delivers the password-reset link. Delivery failures are
// reported to the caller, never retried here.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, email, plainToken string) error
}

type AuthService struct {
	users    ports.UserRepository
	tokens   *util.JWTManager
	mailer   ResetMailer
	resetTTL time.Duration
	now      func() time.Time
}

// AuthResult couples a freshly issued bearer token with its user.
type AuthResult struct {
	Token string
	User  *domain.User
}

func NewAuthService(users ports.UserRepository, tokens *util.JWTManager, mailer ResetMailer, resetTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		mailer:   mailer,
		resetTTL: resetTTL,
		now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, nombre, email, password string) (*AuthResult, error) {
	nombre = strings.TrimSpace(nombre)
	email = normalizeEmail(email)
	if nombre == "" || email == "" {
		return nil, ErrMissingFields
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !isNotFound(err) {
		return nil, err
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, nombre, email, hash, salt)
	if err != nil {
		// Concurrent registration can still hit the unique index.
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ForgotPassword stores the hash of a fresh one-time token on the account and
// mails the plaintext to the user. On delivery failure the stored reset state
// is cleared so the undeliverable token can never be redeemed.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	plain, digest, err := util.GenerateResetToken()
	if err != nil {
		return err
	}
	if err := s.users.SetResetToken(ctx, user.ID, digest, s.now().Add(s.resetTTL)); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, plain); err != nil {
		_ = s.users.ClearResetToken(ctx, user.ID)
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// ResetPassword redeems a plaintext reset token. The token is single-use: the
// stored reset state is cleared as soon as the new password is in place.
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, newPassword string) error {
	if err := util.ValidatePassword(newPassword); err != nil {
		return ErrPasswordTooShort
	}

	digest := util.HashResetToken(plainToken)
	user, err := s.users.FindByResetTokenHash(ctx, digest, s.now())
	if err != nil {
		if isNotFound(err) {
			return ErrResetTokenInvalid
		}
		return err
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash, salt); err != nil {
		return err
	}
	return s.users.ClearResetToken(ctx, user.ID)
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, _, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
