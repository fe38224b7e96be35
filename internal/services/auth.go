package services

import (
	"context"
	"log"
	"time"

	"github.com/codeverse-ai/codeverse-backend/internal/apperr"
	"github.com/codeverse-ai/codeverse-backend/internal/models"
	"github.com/codeverse-ai/codeverse-backend/pkg/utils"
	"github.com/google/uuid"
)

// UserStore is the credential-store persistence contract.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

// LoginStore records login events and reads back login dates (descending).
type LoginStore interface {
	Record(ctx context.Context, userID uuid.UUID, day time.Time) error
	Dates(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
}

// AuthService implements registration and authentication over the
// credential store.
type AuthService struct {
	users  UserStore
	logins LoginStore
	mailer Mailer

	now func() time.Time
}

func NewAuthService(users UserStore, logins LoginStore, mailer Mailer) *AuthService {
	return &AuthService{
		users:  users,
		logins: logins,
		mailer: mailer,
		now:    time.Now,
	}
}

// Register validates input, hashes the password and creates the user.
// A duplicate email surfaces as apperr.ErrConflict with no partial write.
// The welcome mail is best-effort: a delivery failure is logged but never
// fails the signup.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if err := utils.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := utils.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        utils.NormalizeEmail(email),
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendWelcome(user.Email, user.Username); err != nil {
			log.Printf("welcome mail to %s failed: %v", user.Email, err)
		}
	}

	return user, nil
}

// Authenticate resolves an email/password pair to a user. The outcome is
// three-way: apperr.ErrNotFound when no account exists for the email,
// apperr.ErrInvalidCredentials when the password is wrong, or the user.
// The "no account" message intentionally mirrors the existing frontend
// behavior even though it reveals which emails are registered.
// On success the day's login event is recorded (idempotent per day).
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, apperr.ErrInvalidCredentials
	}

	if s.logins != nil {
		if err := s.logins.Record(ctx, user.ID, s.now()); err != nil {
			log.Printf("record login for %s failed: %v", user.ID, err)
		}
	}

	return user, nil
}

// ChangePassword overwrites the stored hash unconditionally. The OTP flow
// is responsible for having verified the caller first.
func (s *AuthService) ChangePassword(ctx context.Context, email, newPassword string) error {
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, utils.NormalizeEmail(email), hash)
}
