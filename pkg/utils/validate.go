package utils

import (
	"strings"

	"github.com/codeverse-ai/codeverse-backend/internal/apperr"
)

// ValidateEmail checks the email shape. Deliverability is proven later by
// the OTP flow, so the check stays shallow.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.Validation("Email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return apperr.Validation("Please enter a valid email address")
	}
	if !strings.Contains(email[at+1:], ".") {
		return apperr.Validation("Please enter a valid email address")
	}
	if strings.ContainsAny(email, " \t") {
		return apperr.Validation("Please enter a valid email address")
	}
	return nil
}

// ValidateUsername checks length and charset for display usernames.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperr.Validation("Username is required")
	}
	if len(username) > 100 {
		return apperr.Validation("Username must be at most 100 characters")
	}
	for _, r := range username {
		if r < 0x20 || r == 0x7f {
			return apperr.Validation("Username contains invalid characters")
		}
	}
	return nil
}

// NormalizeEmail lowercases and trims an email for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
