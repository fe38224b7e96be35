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

// ProjectRepository backs the dashboard: projects, their files, and the
// aggregate stats shown in the header cards.
type ProjectRepository struct {
	DB *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, user_id, name, lines_of_code, files_count, created_at
		FROM projects WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.LinesOfCode, &p.FilesCount, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *ProjectRepository) Create(ctx context.Context, userID uuid.UUID, name string) (*models.Project, error) {
	p := models.Project{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO projects (id, user_id, name, lines_of_code, files_count, created_at)
		VALUES ($1, $2, $3, 0, 0, $4)
	`, p.ID, p.UserID, p.Name, p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a project owned by the user; files go with it via the
// ON DELETE CASCADE constraint.
func (r *ProjectRepository) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1 AND user_id = $2`, projectID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Stats aggregates the user's projects for the dashboard header.
func (r *ProjectRepository) Stats(ctx context.Context, userID uuid.UUID) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT
			COUNT(*) AS total_projects,
			COALESCE(SUM(lines_of_code), 0) AS total_lines,
			COALESCE(SUM(files_count), 0) AS total_files
		FROM projects WHERE user_id = $1
	`, userID).Scan(&stats.TotalProjects, &stats.TotalLines, &stats.TotalFiles)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *ProjectRepository) ListFiles(ctx context.Context, projectID uuid.UUID) ([]models.ProjectFile, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, project_id, name, language, content, lines_of_code, created_at
		FROM project_files WHERE project_id = $1
		ORDER BY created_at ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.ProjectFile
	for rows.Next() {
		var f models.ProjectFile
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.Name, &f.Language, &f.Content, &f.LinesOfCode, &f.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// CreateFile inserts a file and bumps the parent project's counters in the
// same transaction so the dashboard stats never drift from the file rows.
func (r *ProjectRepository) CreateFile(ctx context.Context, userID uuid.UUID, file *models.ProjectFile) error {
	if file.ID == uuid.Nil {
		file.ID = uuid.New()
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Ownership check rides on the counter update.
	res, err := tx.ExecContext(ctx, `
		UPDATE projects
		SET files_count = files_count + 1, lines_of_code = lines_of_code + $1
		WHERE id = $2 AND user_id = $3
	`, file.LinesOfCode, file.ProjectID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO project_files (id, project_id, name, language, content, lines_of_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, file.ID, file.ProjectID, file.Name, file.Language, file.Content, file.LinesOfCode, file.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteFile removes a file and decrements the parent project's counters.
func (r *ProjectRepository) DeleteFile(ctx context.Context, userID, fileID uuid.UUID) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var projectID uuid.UUID
	var lines int
	err = tx.QueryRowContext(ctx, `
		SELECT f.project_id, f.lines_of_code
		FROM project_files f
		JOIN projects p ON p.id = f.project_id
		WHERE f.id = $1 AND p.user_id = $2
	`, fileID, userID).Scan(&projectID, &lines)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM project_files WHERE id = $1`, fileID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE projects
		SET files_count = files_count - 1, lines_of_code = lines_of_code - $1
		WHERE id = $2
	`, lines, projectID); err != nil {
		return err
	}

	return tx.Commit()
}
