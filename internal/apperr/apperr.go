// Package apperr enumerates the error kinds surfaced by the service layer.
// Handlers translate these into HTTP status codes and user-facing messages;
// nothing here is fatal.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: no account / no active OTP record for the email.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials: account exists but the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConflict: duplicate email on signup.
	ErrConflict = errors.New("already exists")

	// ErrExpiredOTP: the stored OTP is past its expiry.
	ErrExpiredOTP = errors.New("otp expired")

	// ErrInvalidOTP: the submitted code does not match the stored one.
	ErrInvalidOTP = errors.New("invalid otp")

	// ErrDelivery: the email channel failed; the OTP record is kept so the
	// user can resend.
	ErrDelivery = errors.New("email delivery failed")

	// ErrFlowState: reset flow id unknown, expired, or in the wrong step.
	ErrFlowState = errors.New("invalid reset flow state")
)

// ValidationError reports malformed input. No state mutation has occurred.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RateLimitedError is returned when a resend is attempted before the
// cooldown has elapsed. RetryAfterSeconds is always >= 1.
type RateLimitedError struct {
	RetryAfterSeconds int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("wait %ds before resending", e.RetryAfterSeconds)
}

func RateLimited(seconds int) error {
	if seconds < 1 {
		seconds = 1
	}
	return &RateLimitedError{RetryAfterSeconds: seconds}
}
