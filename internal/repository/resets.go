package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/codeverse-ai/codeverse-backend/internal/apperr"
	"github.com/codeverse-ai/codeverse-backend/internal/models"
	"github.com/google/uuid"
)

// ResetRepository persists password-reset OTP records.
type ResetRepository struct {
	DB *sql.DB
}

func NewResetRepository(db *sql.DB) *ResetRepository {
	return &ResetRepository{DB: db}
}

// Replace deletes any prior record for the email and inserts the new one in
// a single transaction, so concurrent requests/resends can never leave two
// active-looking records for the same email.
func (r *ResetRepository) Replace(ctx context.Context, rec *models.PasswordResetRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM password_resets WHERE email = $1`, rec.Email); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO password_resets (id, email, otp_code, otp_expiry, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, rec.ID, rec.Email, rec.OTPCode, rec.OTPExpiry, rec.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// Get returns the active record for an email or apperr.ErrNotFound.
func (r *ResetRepository) Get(ctx context.Context, email string) (*models.PasswordResetRecord, error) {
	var rec models.PasswordResetRecord
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, otp_code, otp_expiry, created_at
		FROM password_resets WHERE email = $1
		ORDER BY created_at DESC LIMIT 1
	`, email).Scan(&rec.ID, &rec.Email, &rec.OTPCode, &rec.OTPExpiry, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Clear removes all reset records for an email after a successful commit.
func (r *ResetRepository) Clear(ctx context.Context, email string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM password_resets WHERE email = $1`, email)
	return err
}
