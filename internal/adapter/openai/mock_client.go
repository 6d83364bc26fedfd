package openai

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockClient is a mock implementation of API for testing. The function hooks
// override the canned behavior; call counts are tracked either way.
type MockClient struct {
	ChatCompletionFn func(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)
	ModerationFn     func(ctx context.Context, input string) (*ModerationOutcome, error)

	mu              sync.Mutex
	chatCalls       int
	moderationCalls int
	lastChatRequest *ChatCompletionRequest
}

// NewMockClient creates a new mock client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements the API interface.
var _ API = (*MockClient)(nil)

// CreateChatCompletion returns a mock response or delegates to ChatCompletionFn.
func (m *MockClient) CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error) {
	m.mu.Lock()
	m.chatCalls++
	m.lastChatRequest = req
	m.mu.Unlock()

	if m.ChatCompletionFn != nil {
		return m.ChatCompletionFn(ctx, req)
	}

	var lastUser string
	for i := len(req.Messages) - 1; i >= 0; i-- {
		if req.Messages[i].Role == "user" {
			lastUser = req.Messages[i].Content
			break
		}
	}

	content := fmt.Sprintf("[MOCK] Received your message: %q. This is a mock response.", truncate(lastUser, 100))
	return &ChatCompletionResponse{
		ID:      fmt.Sprintf("mock-chatcmpl-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   req.Model,
		Choices: []Choice{
			{
				Index:        0,
				Message:      &ChatMessage{Role: "assistant", Content: content},
				FinishReason: "stop",
			},
		},
	}, nil
}

// CreateModeration returns an unflagged verdict or delegates to ModerationFn.
func (m *MockClient) CreateModeration(ctx context.Context, input string) (*ModerationOutcome, error) {
	m.mu.Lock()
	m.moderationCalls++
	m.mu.Unlock()

	if m.ModerationFn != nil {
		return m.ModerationFn(ctx, input)
	}
	return &ModerationOutcome{Flagged: false, Categories: map[string]bool{}}, nil
}

// ChatCalls reports how many completion calls were made.
func (m *MockClient) ChatCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chatCalls
}

// ModerationCalls reports how many moderation calls were made.
func (m *MockClient) ModerationCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.moderationCalls
}

// LastChatRequest returns the most recent completion request.
func (m *MockClient) LastChatRequest() *ChatCompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastChatRequest
}

// truncate truncates a string to the given length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
