package handlers

import (
	"net/http"
	"strconv"

	"github.com/codeverse-ai/codeverse-backend/internal/middleware"
	"github.com/codeverse-ai/codeverse-backend/internal/repository"
	"github.com/codeverse-ai/codeverse-backend/internal/services"
)

// DashboardHandler serves the dashboard header: aggregate project stats,
// the login streak and the coding tips feed.
type DashboardHandler struct {
	Projects *repository.ProjectRepository
	Streaks  *services.StreakService
}

func NewDashboardHandler(projects *repository.ProjectRepository, streaks *services.StreakService) *DashboardHandler {
	return &DashboardHandler{Projects: projects, Streaks: streaks}
}

// Stats returns project totals for the header cards
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Not authenticated"})
		return
	}

	stats, err := h.Projects.Stats(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	streak, err := h.Streaks.CurrentStreak(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"total_projects": stats.TotalProjects,
			"total_lines":    stats.TotalLines,
			"total_files":    stats.TotalFiles,
			"login_streak":   streak,
		},
	})
}

// Streak returns just the current login streak
func (h *DashboardHandler) Streak(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Not authenticated"})
		return
	}

	streak, err := h.Streaks.CurrentStreak(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]int{"login_streak": streak},
	})
}

// Tips returns random coding tips for the sidebar (default 3, ?count=N)
func (h *DashboardHandler) Tips(w http.ResponseWriter, r *http.Request) {
	count := 3
	if s := r.URL.Query().Get("count"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			count = n
		}
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"tips": services.RandomTips(count)},
	})
}
