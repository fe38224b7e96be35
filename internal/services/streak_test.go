package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"no logins", nil, 0},
		{"single day", []time.Time{day(10)}, 1},
		{"three consecutive", []time.Time{day(8), day(9), day(10)}, 3},
		{"gap resets to trailing run", []time.Time{day(1), day(2), day(3), day(5), day(6), day(7), day(8)}, 4},
		{"gap right before latest", []time.Time{day(1), day(2), day(5)}, 1},
		{"unordered input", []time.Time{day(10), day(8), day(9)}, 3},
		{"duplicates collapse", []time.Time{day(9), day(9), day(10)}, 2},
		{"time of day ignored", []time.Time{
			time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC),
			time.Date(2024, 6, 10, 0, 1, 0, 0, time.UTC),
		}, 2},
		{"month boundary", []time.Time{
			time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(tt.dates))
		})
	}
}

func TestStreakFrozenNotZeroed(t *testing.T) {
	// A run ending days ago still reports its full length; the streak does
	// not decay just because the user has not logged in since.
	dates := []time.Time{day(1), day(2), day(3)}
	assert.Equal(t, 3, ComputeStreak(dates))
}

func TestStreakServiceRecordAndQuery(t *testing.T) {
	ctx := context.Background()
	logins := newFakeLoginStore()
	clock := newFakeClock(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
	svc := NewStreakService(logins)
	svc.now = clock.Now

	userID := uuid.New()

	// Three logins across consecutive days, with a same-day duplicate.
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordLogin(ctx, userID))
		require.NoError(t, svc.RecordLogin(ctx, userID))
		clock.Advance(24 * time.Hour)
	}

	streak, err := svc.CurrentStreak(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)

	// Unknown users have no streak.
	streak, err = svc.CurrentStreak(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}
