package services

import (
	"context"
	"testing"

	"github.com/codeverse-ai/codeverse-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	logins := newFakeLoginStore()
	mailer := &fakeMailer{}
	svc := NewAuthService(users, logins, mailer)

	created, err := svc.Register(ctx, "alice", "alice@x.com", "Abc123!@")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "alice@x.com", created.Email)
	assert.NotEqual(t, "Abc123!@", created.PasswordHash)
	assert.Equal(t, []string{"alice@x.com"}, mailer.welcomes)

	got, err := svc.Authenticate(ctx, "alice@x.com", "Abc123!@")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Authenticate(ctx, "alice@x.com", "wrong")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserStore(), newFakeLoginStore(), &fakeMailer{})

	_, err := svc.Register(ctx, "alice", "alice@x.com", "Abc123!@")
	require.NoError(t, err)

	// Same email always conflicts, regardless of username/password.
	_, err = svc.Register(ctx, "someone-else", "alice@x.com", "Other9$x")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// Case-insensitive: emails are normalized before storage.
	_, err = svc.Register(ctx, "bob", "ALICE@X.com", "Other9$x")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserStore(), newFakeLoginStore(), &fakeMailer{})

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"empty username", "", "alice@x.com", "Abc123!@"},
		{"bad email", "alice", "not-an-email", "Abc123!@"},
		{"weak password", "alice", "alice@x.com", "abc"},
		{"no symbol", "alice", "alice@x.com", "Abc12345"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestRegisterSucceedsWhenWelcomeMailFails(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	mailer := &fakeMailer{failNext: true}
	svc := NewAuthService(users, newFakeLoginStore(), mailer)

	_, err := svc.Register(ctx, "alice", "alice@x.com", "Abc123!@")
	require.NoError(t, err)

	// Account exists despite the mail failure.
	_, err = users.GetByEmail(ctx, "alice@x.com")
	assert.NoError(t, err)
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeUserStore(), newFakeLoginStore(), &fakeMailer{})

	// "No account" is distinguishable from a wrong password.
	_, err := svc.Authenticate(ctx, "ghost@x.com", "Abc123!@")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAuthenticateRecordsDailyLogin(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	logins := newFakeLoginStore()
	svc := NewAuthService(users, logins, &fakeMailer{})

	created, err := svc.Register(ctx, "alice", "alice@x.com", "Abc123!@")
	require.NoError(t, err)

	// Multiple logins the same day collapse to one event.
	for i := 0; i < 3; i++ {
		_, err := svc.Authenticate(ctx, "alice@x.com", "Abc123!@")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, logins.count(created.ID))
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	svc := NewAuthService(users, newFakeLoginStore(), &fakeMailer{})

	_, err := svc.Register(ctx, "alice", "alice@x.com", "Abc123!@")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(ctx, "alice@x.com", "NewAbc1!"))

	_, err = svc.Authenticate(ctx, "alice@x.com", "Abc123!@")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "alice@x.com", "NewAbc1!")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, "ghost@x.com", "NewAbc1!"), apperr.ErrNotFound)
}
