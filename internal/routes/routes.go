package routes

import (
	"github.com/codeverse-ai/codeverse-backend/internal/handlers"
	"github.com/codeverse-ai/codeverse-backend/internal/middleware"
	"github.com/codeverse-ai/codeverse-backend/internal/services"
	"github.com/go-chi/chi/v5"
)

// Deps collects the handlers wired up in main.
type Deps struct {
	Auth      *handlers.AuthHandler
	Reset     *handlers.ResetHandler
	Dashboard *handlers.DashboardHandler
	Projects  *handlers.ProjectHandler
	Chat      *handlers.ChatHandler
	Sessions  *services.SessionService
}

func SetupRoutes(r *chi.Mux, d Deps) {
	// Auth routes
	r.Post("/api/auth/signup", d.Auth.Signup)
	r.Post("/api/auth/signin", d.Auth.Signin)
	r.Post("/api/auth/signout", d.Auth.Signout)

	// Password reset flow: forgot -> verify -> (resend) -> reset
	r.Post("/api/auth/forgot-password", d.Reset.ForgotPassword)
	r.Post("/api/auth/verify-otp", d.Reset.VerifyOTP)
	r.Post("/api/auth/resend-otp", d.Reset.ResendOTP)
	r.Post("/api/auth/reset-password", d.Reset.ResetPassword)

	// Everything below requires a valid session
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(d.Sessions))

		r.Get("/api/auth/me", d.Auth.Me)

		// Dashboard routes
		r.Get("/api/dashboard/stats", d.Dashboard.Stats)
		r.Get("/api/dashboard/streak", d.Dashboard.Streak)
		r.Get("/api/dashboard/tips", d.Dashboard.Tips)

		// Project and file routes
		r.Get("/api/projects", d.Projects.List)
		r.Post("/api/projects", d.Projects.Create)
		r.Delete("/api/projects/{projectID}", d.Projects.Delete)
		r.Get("/api/projects/{projectID}/files", d.Projects.ListFiles)
		r.Post("/api/projects/{projectID}/files", d.Projects.CreateFile)
		r.Delete("/api/files/{fileID}", d.Projects.DeleteFile)

		// AI assistant (HTTP)
		r.Post("/api/assistant/message", d.Chat.Send)
		r.Get("/api/assistant/history", d.Chat.History)
		r.Delete("/api/assistant/history", d.Chat.Clear)
	})

	// WebSocket endpoint for the assistant (token auth inside the handler)
	r.Get("/ws/assistant", d.Chat.AssistantWebSocket)
}
