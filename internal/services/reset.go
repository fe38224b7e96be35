package services

import (
	"context"
	"time"

	"github.com/codeverse-ai/codeverse-backend/internal/apperr"
	"github.com/codeverse-ai/codeverse-backend/internal/models"
	"github.com/codeverse-ai/codeverse-backend/pkg/utils"
	"github.com/google/uuid"
)

const (
	// OTPValidity is the window between generating an OTP and its expiry.
	OTPValidity = 300 * time.Second
	// ResendCooldown is the minimum wait between successive OTP sends for
	// the same email.
	ResendCooldown = 30 * time.Second

	// Reset flow steps. A flow starts at StepOTP once the mail is out and
	// advances to StepNewPassword after a successful verify.
	StepOTP         = "otp"
	StepNewPassword = "new_password"
)

// OTPStore persists password-reset records, one active record per email.
type OTPStore interface {
	Replace(ctx context.Context, rec *models.PasswordResetRecord) error
	Get(ctx context.Context, email string) (*models.PasswordResetRecord, error)
	Clear(ctx context.Context, email string) error
}

// FlowStore keeps per-flow state (email + step) server-side, keyed by an
// opaque flow id handed to the client.
type FlowStore interface {
	Put(ctx context.Context, flowID, email, step string) error
	Get(ctx context.Context, flowID string) (email, step string, err error)
	Delete(ctx context.Context, flowID string) error
}

// Cooldowns tracks the per-email resend cooldown.
type Cooldowns interface {
	Start(ctx context.Context, email string, d time.Duration) error
	Remaining(ctx context.Context, email string) (time.Duration, error)
}

// SessionInvalidator revokes a user's sessions after a password change.
type SessionInvalidator interface {
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}

// ResetService drives the three-step password reset flow:
//
//	request (email) -> verify (otp) -> commit (new_password)
//
// with a resend allowed while in the otp step. All transition guards from
// the flow live here; handlers only decode requests and translate errors.
type ResetService struct {
	users     UserStore
	otps      OTPStore
	flows     FlowStore
	cooldowns Cooldowns
	mailer    Mailer
	sessions  SessionInvalidator

	now func() time.Time
}

func NewResetService(users UserStore, otps OTPStore, flows FlowStore, cooldowns Cooldowns, mailer Mailer, sessions SessionInvalidator) *ResetService {
	return &ResetService{
		users:     users,
		otps:      otps,
		flows:     flows,
		cooldowns: cooldowns,
		mailer:    mailer,
		sessions:  sessions,
		now:       time.Now,
	}
}

// Request starts a reset flow for the email. Unknown emails fail with
// apperr.ErrNotFound and create no record. Otherwise a fresh 6-digit code
// is stored with expiry now+300s, replacing any prior record for the email,
// and mailed out. On delivery failure the record is kept (the code stays
// verifiable) but no flow is started; the user retries the request.
func (s *ResetService) Request(ctx context.Context, email string) (string, error) {
	if err := utils.ValidateEmail(email); err != nil {
		return "", err
	}
	email = utils.NormalizeEmail(email)

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		return "", err
	}

	if err := s.saveAndSendOTP(ctx, email); err != nil {
		return "", err
	}

	flowID := uuid.NewString()
	if err := s.flows.Put(ctx, flowID, email, StepOTP); err != nil {
		return "", err
	}
	if err := s.cooldowns.Start(ctx, email, ResendCooldown); err != nil {
		return "", err
	}
	return flowID, nil
}

// Verify checks the submitted code against the stored record. Expired codes
// fail with apperr.ErrExpiredOTP, mismatches with apperr.ErrInvalidOTP; in
// both cases the flow stays in the otp step. On success the flow advances
// to the new_password step.
func (s *ResetService) Verify(ctx context.Context, flowID, code string) error {
	email, step, err := s.flows.Get(ctx, flowID)
	if err != nil {
		return err
	}
	if step != StepOTP {
		return apperr.ErrFlowState
	}

	rec, err := s.otps.Get(ctx, email)
	if err != nil {
		return err
	}
	if s.now().Unix() > rec.OTPExpiry {
		return apperr.ErrExpiredOTP
	}
	if code != rec.OTPCode {
		return apperr.ErrInvalidOTP
	}

	return s.flows.Put(ctx, flowID, email, StepNewPassword)
}

// Resend regenerates and resends the code. Before the cooldown has elapsed
// it fails with a RateLimitedError carrying the remaining seconds; the
// cooldown restarts only after a successful send.
func (s *ResetService) Resend(ctx context.Context, flowID string) error {
	email, step, err := s.flows.Get(ctx, flowID)
	if err != nil {
		return err
	}
	if step != StepOTP {
		return apperr.ErrFlowState
	}

	remaining, err := s.cooldowns.Remaining(ctx, email)
	if err != nil {
		return err
	}
	if remaining > 0 {
		secs := int((remaining + time.Second - 1) / time.Second)
		return apperr.RateLimited(secs)
	}

	if err := s.saveAndSendOTP(ctx, email); err != nil {
		return err
	}
	return s.cooldowns.Start(ctx, email, ResendCooldown)
}

// Commit finishes the flow: checks confirmation and strength policy,
// stores the new hash, clears the reset record and the flow, and revokes
// the user's sessions.
func (s *ResetService) Commit(ctx context.Context, flowID, password, confirm string) error {
	email, step, err := s.flows.Get(ctx, flowID)
	if err != nil {
		return err
	}
	if step != StepNewPassword {
		return apperr.ErrFlowState
	}

	if password != confirm {
		return apperr.Validation("Passwords do not match")
	}
	if err := utils.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, email, hash); err != nil {
		return err
	}

	if err := s.otps.Clear(ctx, email); err != nil {
		return err
	}
	if err := s.flows.Delete(ctx, flowID); err != nil {
		return err
	}

	if s.sessions != nil {
		if user, err := s.users.GetByEmail(ctx, email); err == nil {
			_ = s.sessions.InvalidateUser(ctx, user.ID)
		}
	}
	return nil
}

// saveAndSendOTP stores a fresh code (replacing any prior record for the
// email) and mails it. The record is persisted even when delivery fails, so
// a later resend reuses the same machinery.
func (s *ResetService) saveAndSendOTP(ctx context.Context, email string) error {
	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}

	rec := &models.PasswordResetRecord{
		Email:     email,
		OTPCode:   code,
		OTPExpiry: s.now().Add(OTPValidity).Unix(),
		CreatedAt: s.now(),
	}
	if err := s.otps.Replace(ctx, rec); err != nil {
		return err
	}

	if err := s.mailer.SendOTP(email, code); err != nil {
		return apperr.ErrDelivery
	}
	return nil
}
