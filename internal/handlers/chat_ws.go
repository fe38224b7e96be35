package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

var assistantUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// AssistantClientMessage represents messages coming from the frontend over
// WebSocket.
type AssistantClientMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text,omitempty"`
}

// AssistantServerMessage is pushed back to the client.
type AssistantServerMessage struct {
	Type      string    `json:"type"` // "reply", "error", "pong"
	Text      string    `json:"text,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AssistantWebSocket handles the assistant over WebSocket. Authentication
// is done via the session token (Authorization: Bearer <token>, or ?token=
// for browser clients), same as the HTTP endpoints.
func (h *ChatHandler) AssistantWebSocket(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing session token", http.StatusUnauthorized)
			return
		}
	}

	userID, ok, err := h.Sessions.Validate(r.Context(), token)
	if err != nil || !ok {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	conn, err := assistantUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))

		var msg AssistantClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "message":
			text := strings.TrimSpace(msg.Text)
			if text == "" {
				continue
			}
			reply, err := h.Chat.Send(r.Context(), userID, text)
			if err != nil {
				_ = conn.WriteJSON(AssistantServerMessage{
					Type:      "error",
					Error:     "assistant is unavailable right now",
					Timestamp: time.Now().UTC(),
				})
				continue
			}
			_ = conn.WriteJSON(AssistantServerMessage{
				Type:      "reply",
				Text:      reply,
				Timestamp: time.Now().UTC(),
			})
		case "ping":
			_ = conn.WriteJSON(AssistantServerMessage{Type: "pong", Timestamp: time.Now().UTC()})
		default:
			// Ignore unknown types
		}
	}
}
