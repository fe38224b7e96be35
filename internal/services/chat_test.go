package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConversationStore struct {
	mu    sync.Mutex
	turns map[uuid.UUID][]ChatTurn
}

func newFakeConversationStore() *fakeConversationStore {
	return &fakeConversationStore{turns: make(map[uuid.UUID][]ChatTurn)}
}

func (f *fakeConversationStore) Append(ctx context.Context, userID uuid.UUID, role, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.turns[userID] = append(f.turns[userID], ChatTurn{Role: role, Content: content})
	return nil
}

func (f *fakeConversationStore) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]ChatTurn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	turns := f.turns[userID]
	if limit > 0 && len(turns) > limit {
		turns = turns[len(turns)-limit:]
	}
	out := make([]ChatTurn, len(turns))
	copy(out, turns)
	return out, nil
}

func (f *fakeConversationStore) Clear(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.turns, userID)
	return nil
}

// completionServer fakes the Groq chat-completions endpoint and records the
// last request for inspection.
func completionServer(t *testing.T, reply string, status int) (*httptest.Server, *chatCompletionRequest) {
	t.Helper()
	var last chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&last))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{"message": "model overloaded"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &last
}

func TestChatComplete(t *testing.T) {
	srv, last := completionServer(t, "Hello there!", http.StatusOK)
	svc := NewChatService("test-key", "llama-3.3-70b-versatile", srv.URL, newFakeConversationStore())

	reply, err := svc.Complete(context.Background(), []ChatTurn{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", reply)

	// System prompt always leads the message list.
	require.Len(t, last.Messages, 2)
	assert.Equal(t, "system", last.Messages[0].Role)
	assert.Equal(t, ChatSystemPrompt, last.Messages[0].Content)
	assert.Equal(t, "llama-3.3-70b-versatile", last.Model)
}

func TestChatCompleteAPIError(t *testing.T) {
	srv, _ := completionServer(t, "", http.StatusTooManyRequests)
	svc := NewChatService("test-key", "m", srv.URL, newFakeConversationStore())

	_, err := svc.Complete(context.Background(), []ChatTurn{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestChatSendPersistsBothTurns(t *testing.T) {
	ctx := context.Background()
	srv, last := completionServer(t, "42", http.StatusOK)
	store := newFakeConversationStore()
	svc := NewChatService("test-key", "m", srv.URL, store)
	userID := uuid.New()

	reply, err := svc.Send(ctx, userID, "meaning of life?")
	require.NoError(t, err)
	assert.Equal(t, "42", reply)

	turns, err := store.Recent(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, ChatTurn{Role: "user", Content: "meaning of life?"}, turns[0])
	assert.Equal(t, ChatTurn{Role: "assistant", Content: "42"}, turns[1])

	// Follow-up requests replay the stored history.
	_, err = svc.Send(ctx, userID, "are you sure?")
	require.NoError(t, err)
	require.Len(t, last.Messages, 4) // system + 2 history + new user turn
	assert.Equal(t, "are you sure?", last.Messages[3].Content)
}

func TestChatSendFailureLeavesHistoryUntouched(t *testing.T) {
	ctx := context.Background()
	srv, _ := completionServer(t, "", http.StatusInternalServerError)
	store := newFakeConversationStore()
	svc := NewChatService("test-key", "m", srv.URL, store)
	userID := uuid.New()

	_, err := svc.Send(ctx, userID, "hi")
	require.Error(t, err)

	turns, err := store.Recent(ctx, userID, 0)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestChatConversationSeedsGreeting(t *testing.T) {
	ctx := context.Background()
	store := newFakeConversationStore()
	svc := NewChatService("test-key", "m", "http://unused", store)
	userID := uuid.New()

	turns, err := svc.Conversation(ctx, userID)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "assistant", turns[0].Role)
	assert.Equal(t, ChatGreeting, turns[0].Content)

	// Once there is real history the greeting is not injected.
	require.NoError(t, store.Append(ctx, userID, "user", "hi"))
	turns, err = svc.Conversation(ctx, userID)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "user", turns[0].Role)

	// Clearing reseeds the greeting on the next load.
	require.NoError(t, svc.Clear(ctx, userID))
	turns, err = svc.Conversation(ctx, userID)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, ChatGreeting, turns[0].Content)
}
