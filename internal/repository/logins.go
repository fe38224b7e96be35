package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// LoginRepository records login events, one per user per calendar day.
type LoginRepository struct {
	DB *sql.DB
}

func NewLoginRepository(db *sql.DB) *LoginRepository {
	return &LoginRepository{DB: db}
}

// Record inserts a login event for the given day if absent. Multiple logins
// on the same day collapse onto the unique (user_id, login_date) row.
func (r *LoginRepository) Record(ctx context.Context, userID uuid.UUID, day time.Time) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO login_events (user_id, login_date)
		VALUES ($1, $2)
		ON CONFLICT (user_id, login_date) DO NOTHING
	`, userID, day.Format("2006-01-02"))
	return err
}

// Dates returns the user's distinct login dates, most recent first.
func (r *LoginRepository) Dates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT login_date FROM login_events
		WHERE user_id = $1
		ORDER BY login_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
