package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/codeverse-ai/codeverse-backend/internal/middleware"
	"github.com/codeverse-ai/codeverse-backend/internal/models"
	"github.com/codeverse-ai/codeverse-backend/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name string `json:"name"`
}

type CreateFileRequest struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Content  string `json:"content"`
}

// ProjectHandler serves the editor's project and file CRUD.
type ProjectHandler struct {
	Projects *repository.ProjectRepository
}

func NewProjectHandler(projects *repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{Projects: projects}
}

// List returns the user's projects, newest first
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Not authenticated"})
		return
	}

	projects, err := h.Projects.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"projects": projects},
	})
}

// Create creates an empty project
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Not authenticated"})
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Project name is required"})
		return
	}

	project, err := h.Projects.Create(r.Context(), userID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Project created",
		Data:    map[string]*models.Project{"project": project},
	})
}

// Delete removes a project and its files
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid project id"})
		return
	}

	if err := h.Projects.Delete(r.Context(), userID, projectID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Project deleted"})
}

// ListFiles returns the files of one project
func (h *ProjectHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserID(r.Context()); !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid project id"})
		return
	}

	files, err := h.Projects.ListFiles(r.Context(), projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	if files == nil {
		files = []models.ProjectFile{}
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"files": files},
	})
}

// CreateFile adds a file to a project and bumps its counters
func (h *ProjectHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Not authenticated"})
		return
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid project id"})
		return
	}

	var req CreateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "File name is required"})
		return
	}

	file := &models.ProjectFile{
		ProjectID:   projectID,
		Name:        req.Name,
		Language:    req.Language,
		Content:     req.Content,
		LinesOfCode: countLines(req.Content),
	}
	if err := h.Projects.CreateFile(r.Context(), userID, file); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "File created",
		Data:    map[string]*models.ProjectFile{"file": file},
	})
}

// DeleteFile removes a file and decrements the project counters
func (h *ProjectHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Not authenticated"})
		return
	}

	fileID, err := uuid.Parse(chi.URLParam(r, "fileID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid file id"})
		return
	}

	if err := h.Projects.DeleteFile(r.Context(), userID, fileID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "File deleted"})
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}
