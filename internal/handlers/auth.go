package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/codeverse-ai/codeverse-backend/internal/apperr"
	"github.com/codeverse-ai/codeverse-backend/internal/middleware"
	"github.com/codeverse-ai/codeverse-backend/internal/models"
	"github.com/codeverse-ai/codeverse-backend/internal/repository"
	"github.com/codeverse-ai/codeverse-backend/internal/services"
)

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthHandler serves signup, signin, signout and the current-user lookup.
type AuthHandler struct {
	Auth     *services.AuthService
	Sessions *services.SessionService
	Users    *repository.UserRepository
}

func NewAuthHandler(auth *services.AuthService, sessions *services.SessionService, users *repository.UserRepository) *AuthHandler {
	return &AuthHandler{Auth: auth, Sessions: sessions, Users: users}
}

// Signup handles user registration
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}

	user, err := h.Auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Printf("✅ New user registered: %s", user.Email)
	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Account created successfully",
		Data:    map[string]interface{}{"user": user},
	})
}

// Signin handles user login and issues a session token
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}

	user, err := h.Auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// The signin form distinguishes "no account" from a wrong password.
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Response{Success: false, Message: "No account found with this email"})
			return
		}
		writeError(w, err)
		return
	}

	token, err := h.Sessions.Create(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Signed in successfully",
		Data: map[string]interface{}{
			"user":  user,
			"token": token,
		},
	})
}

// Signout invalidates the current session
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if err := h.Sessions.Invalidate(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Signed out"})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Not authenticated"})
		return
	}

	user, err := h.Users.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]*models.User{"user": user},
	})
}
