package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// ChatSystemPrompt is prepended to every completion request.
	ChatSystemPrompt = "You are a helpful and friendly AI assistant."
	// ChatGreeting seeds a fresh conversation.
	ChatGreeting = "Welcome to CodeVerse AI. How can I help you today? 😊"
	// chatHistoryLimit caps how many stored turns are replayed per request.
	chatHistoryLimit = 40
)

// ChatTurn is one {role, content} message in a conversation.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationStore persists per-user assistant conversations.
type ConversationStore interface {
	Append(ctx context.Context, userID uuid.UUID, role, content string) error
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]ChatTurn, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

// ChatService relays conversations to an OpenAI-compatible chat-completions
// API (Groq) and keeps per-user history in the conversation store. The API
// call is stateless passthrough; all state lives in the store.
type ChatService struct {
	APIKey  string
	Model   string
	BaseURL string

	HTTPClient *http.Client
	History    ConversationStore
}

func NewChatService(apiKey, model, baseURL string, history ConversationStore) *ChatService {
	return &ChatService{
		APIKey:     apiKey,
		Model:      model,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
		History:    history,
	}
}

type chatCompletionRequest struct {
	Model    string     `json:"model"`
	Messages []ChatTurn `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message ChatTurn `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends the turns (with the system prompt prepended) to the
// completions API and returns the assistant's reply.
func (s *ChatService) Complete(ctx context.Context, turns []ChatTurn) (string, error) {
	messages := make([]ChatTurn, 0, len(turns)+1)
	messages = append(messages, ChatTurn{Role: "system", Content: ChatSystemPrompt})
	messages = append(messages, turns...)

	body, err := json.Marshal(chatCompletionRequest{Model: s.Model, Messages: messages})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("bad completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("completion API: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("completion API: status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion API: empty choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// Send appends the user's message to the conversation, requests a reply
// with the running history, appends the reply and returns it.
func (s *ChatService) Send(ctx context.Context, userID uuid.UUID, text string) (string, error) {
	history, err := s.History.Recent(ctx, userID, chatHistoryLimit)
	if err != nil {
		return "", err
	}

	turns := append(history, ChatTurn{Role: "user", Content: text})

	reply, err := s.Complete(ctx, turns)
	if err != nil {
		return "", err
	}

	if err := s.History.Append(ctx, userID, "user", text); err != nil {
		return "", err
	}
	if err := s.History.Append(ctx, userID, "assistant", reply); err != nil {
		return "", err
	}
	return reply, nil
}

// Conversation returns the stored history, seeding the greeting for a
// fresh conversation.
func (s *ChatService) Conversation(ctx context.Context, userID uuid.UUID) ([]ChatTurn, error) {
	turns, err := s.History.Recent(ctx, userID, chatHistoryLimit)
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		return []ChatTurn{{Role: "assistant", Content: ChatGreeting}}, nil
	}
	return turns, nil
}

// Clear drops the stored conversation; the next load reseeds the greeting.
func (s *ChatService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.History.Clear(ctx, userID)
}
