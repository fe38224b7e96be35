package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is 7 days.
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions.
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping.
	UserSessionKeyPrefix = "user_session:"
)

// SessionService stores opaque session tokens in Redis. One session per
// user: a new login replaces the previous session so the 7-day timer
// restarts from the current login.
type SessionService struct {
	Client *redis.Client
}

func NewSessionService(client *redis.Client) *SessionService {
	return &SessionService{Client: client}
}

// Create issues a new session token for the user, replacing any existing
// session.
func (s *SessionService) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	_ = s.InvalidateUser(ctx, userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.Client.Set(ctx, SessionKeyPrefix+token, userID.String(), SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := s.Client.Set(ctx, UserSessionKeyPrefix+userID.String(), token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a session token to a user id. A missing or expired
// token is not an error; ok is simply false.
func (s *SessionService) Validate(ctx context.Context, token string) (uuid.UUID, bool, error) {
	if token == "" {
		return uuid.Nil, false, nil
	}

	userIDStr, err := s.Client.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil {
		return uuid.Nil, false, nil
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false, err
	}
	return userID, true, nil
}

// Invalidate removes a session by token.
func (s *SessionService) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	userIDStr, err := s.Client.Get(ctx, SessionKeyPrefix+token).Result()
	if err == nil && userIDStr != "" {
		s.Client.Del(ctx, UserSessionKeyPrefix+userIDStr)
	}
	return s.Client.Del(ctx, SessionKeyPrefix+token).Err()
}

// InvalidateUser removes the user's session, used on password change.
func (s *SessionService) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	userKey := UserSessionKeyPrefix + userID.String()

	token, err := s.Client.Get(ctx, userKey).Result()
	if err == nil && token != "" {
		s.Client.Del(ctx, SessionKeyPrefix+token)
	}
	return s.Client.Del(ctx, userKey).Err()
}
