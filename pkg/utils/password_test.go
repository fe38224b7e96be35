package utils

import (
	"testing"

	"github.com/codeverse-ai/codeverse-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("Abc123!@")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "Abc123!@")

	assert.True(t, VerifyPassword("Abc123!@", hash))
	assert.False(t, VerifyPassword("Abc123!#", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPasswordFreshSaltPerCall(t *testing.T) {
	h1, err := HashPassword("NewAbc1!")
	require.NoError(t, err)
	h2, err := HashPassword("NewAbc1!")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	assert.True(t, VerifyPassword("NewAbc1!", h1))
	assert.True(t, VerifyPassword("NewAbc1!", h2))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Abc123!@", false},
		{"valid minimal", "Aa1!xy", false},
		{"too short", "Aa1!x", true},
		{"no uppercase", "abc123!@", true},
		{"no lowercase", "ABC123!@", true},
		{"no digit", "Abcdef!@", true},
		{"no symbol", "Abc12345", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
