package utils

import (
	"strings"
	"unicode"

	"github.com/codeverse-ai/codeverse-backend/internal/apperr"
	"golang.org/x/crypto/bcrypt"
)

// PasswordSymbols is the punctuation set accepted by the strength policy.
const PasswordSymbols = "!@#$%^&*()-_=+[]{};:'\",.<>/?\\|`~"

// HashPassword hashes a password with bcrypt. A fresh random salt is
// generated on every call by the library.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored bcrypt hash.
func VerifyPassword(password, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// ValidatePassword enforces the signup/reset strength policy:
// at least 6 characters with one uppercase, one lowercase, one digit and
// one symbol from PasswordSymbols.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return apperr.Validation("Password must be at least 6 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return apperr.Validation("Password must contain an uppercase letter")
	case !hasLower:
		return apperr.Validation("Password must contain a lowercase letter")
	case !hasDigit:
		return apperr.Validation("Password must contain a digit")
	case !hasSymbol:
		return apperr.Validation("Password must contain a symbol")
	}
	return nil
}
