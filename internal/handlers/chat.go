package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/codeverse-ai/codeverse-backend/internal/middleware"
	"github.com/codeverse-ai/codeverse-backend/internal/services"
)

type ChatSendRequest struct {
	Message string `json:"message"`
}

// ChatHandler serves the AI assistant over plain HTTP. The WebSocket
// transport lives in chat_ws.go and shares the same service.
type ChatHandler struct {
	Chat     *services.ChatService
	Sessions *services.SessionService
}

func NewChatHandler(chat *services.ChatService, sessions *services.SessionService) *ChatHandler {
	return &ChatHandler{Chat: chat, Sessions: sessions}
}

// Send relays one user message to the assistant and returns the reply
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Not authenticated"})
		return
	}

	var req ChatSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Invalid request body"})
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: "Message is required"})
		return
	}

	reply, err := h.Chat.Send(r.Context(), userID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]string{"reply": reply},
	})
}

// History returns the stored conversation, seeding the greeting when empty
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Not authenticated"})
		return
	}

	turns, err := h.Chat.Conversation(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"messages": turns},
	})
}

// Clear drops the stored conversation
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: "Not authenticated"})
		return
	}

	if err := h.Chat.Clear(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Conversation cleared"})
}
