package repository

import (
	"context"
	"time"

	"github.com/codeverse-ai/codeverse-backend/internal/apperr"
	"github.com/redis/go-redis/v9"
)

const (
	// resetFlowKeyPrefix is the Redis key prefix for reset-flow state.
	resetFlowKeyPrefix = "reset_flow:"
	// cooldownKeyPrefix is the Redis key prefix for resend cooldowns.
	cooldownKeyPrefix = "otp_cooldown:"

	// ResetFlowTTL bounds how long an abandoned flow lingers in Redis.
	ResetFlowTTL = 15 * time.Minute
)

// ResetFlowStore keeps per-flow reset state (step + email) in Redis, keyed
// by an opaque flow id, so no reset state lives in process globals.
type ResetFlowStore struct {
	Client *redis.Client
}

func NewResetFlowStore(client *redis.Client) *ResetFlowStore {
	return &ResetFlowStore{Client: client}
}

func (s *ResetFlowStore) Put(ctx context.Context, flowID, email, step string) error {
	key := resetFlowKeyPrefix + flowID
	if err := s.Client.HSet(ctx, key, "email", email, "step", step).Err(); err != nil {
		return err
	}
	return s.Client.Expire(ctx, key, ResetFlowTTL).Err()
}

func (s *ResetFlowStore) Get(ctx context.Context, flowID string) (email, step string, err error) {
	vals, err := s.Client.HGetAll(ctx, resetFlowKeyPrefix+flowID).Result()
	if err != nil {
		return "", "", err
	}
	if len(vals) == 0 {
		return "", "", apperr.ErrFlowState
	}
	return vals["email"], vals["step"], nil
}

func (s *ResetFlowStore) Delete(ctx context.Context, flowID string) error {
	return s.Client.Del(ctx, resetFlowKeyPrefix+flowID).Err()
}

// CooldownStore tracks the resend cooldown per email. The key's TTL is the
// remaining wait, so Redis expiry does the countdown for us.
type CooldownStore struct {
	Client *redis.Client
}

func NewCooldownStore(client *redis.Client) *CooldownStore {
	return &CooldownStore{Client: client}
}

// Start (re)arms the cooldown for the email.
func (s *CooldownStore) Start(ctx context.Context, email string, d time.Duration) error {
	return s.Client.Set(ctx, cooldownKeyPrefix+email, "1", d).Err()
}

// Remaining returns how long until the email may be resent; zero means the
// cooldown has elapsed.
func (s *CooldownStore) Remaining(ctx context.Context, email string) (time.Duration, error) {
	ttl, err := s.Client.TTL(ctx, cooldownKeyPrefix+email).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 { // -1 no expiry, -2 missing key
		return 0, nil
	}
	return ttl, nil
}
