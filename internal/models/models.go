package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Don't return password hash in JSON
}

// PasswordResetRecord is the single active OTP record for an email.
// Invariant: at most one row per email; a new request or resend replaces
// the prior record inside one transaction.
type PasswordResetRecord struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	OTPCode   string    `json:"-"`
	OTPExpiry int64     `json:"otp_expiry"` // epoch seconds
	CreatedAt time.Time `json:"created_at"`
}

// LoginEvent records one login per user per calendar day.
type LoginEvent struct {
	UserID    uuid.UUID `json:"user_id"`
	LoginDate time.Time `json:"login_date"` // date only, no time component
}

type Project struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	LinesOfCode int       `json:"lines_of_code"`
	FilesCount  int       `json:"files_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProjectFile struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Name        string    `json:"name"`
	Language    string    `json:"language"`
	Content     string    `json:"content"`
	LinesOfCode int       `json:"lines_of_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// DashboardStats aggregates a user's projects for the dashboard header.
type DashboardStats struct {
	TotalProjects int `json:"total_projects"`
	TotalLines    int `json:"total_lines"`
	TotalFiles    int `json:"total_files"`
}
