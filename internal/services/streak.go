package services

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StreakService derives login streaks from recorded login events.
type StreakService struct {
	logins LoginStore

	now func() time.Time
}

func NewStreakService(logins LoginStore) *StreakService {
	return &StreakService{logins: logins, now: time.Now}
}

// RecordLogin inserts today's login event if absent.
func (s *StreakService) RecordLogin(ctx context.Context, userID uuid.UUID) error {
	return s.logins.Record(ctx, userID, s.now())
}

// CurrentStreak returns the user's current streak: the number of
// consecutive calendar days ending at the most recent recorded login day.
// A user who last logged in a while ago still reports the streak frozen at
// its last value; it does not decay to zero until the run itself breaks.
func (s *StreakService) CurrentStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	dates, err := s.logins.Dates(ctx, userID)
	if err != nil {
		return 0, err
	}
	return ComputeStreak(dates), nil
}

// ComputeStreak counts consecutive calendar days walking backward from the
// most recent date in the list until a gap is found. Order and time-of-day
// components of the input are irrelevant; duplicates collapse. O(n) in the
// number of distinct login days.
func ComputeStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[time.Time]struct{}, len(dates))
	var latest time.Time
	for _, d := range dates {
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		seen[day] = struct{}{}
		if day.After(latest) {
			latest = day
		}
	}

	streak := 0
	for cur := latest; ; cur = cur.AddDate(0, 0, -1) {
		if _, ok := seen[cur]; !ok {
			break
		}
		streak++
	}
	return streak
}
