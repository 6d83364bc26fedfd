package foundry

import (
	"context"
	"fmt"
	"sync"

	"github.com/docuchat/relay/internal/domain"
)

// MockClient is a mock implementation of AgentAPI for testing.
type MockClient struct {
	ChatFn func(ctx context.Context, message string, history []domain.AgentTurn) (string, error)

	mu        sync.Mutex
	chatCalls int
}

// NewMockClient creates a new mock agent client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Ensure MockClient implements the AgentAPI interface.
var _ AgentAPI = (*MockClient)(nil)

// Chat returns a mock reply or delegates to ChatFn.
func (m *MockClient) Chat(ctx context.Context, message string, history []domain.AgentTurn) (string, error) {
	m.mu.Lock()
	m.chatCalls++
	m.mu.Unlock()

	if m.ChatFn != nil {
		return m.ChatFn(ctx, message, history)
	}
	return fmt.Sprintf("[MOCK AGENT] Received: %s", message), nil
}

// ChatCalls reports how many agent calls were made.
func (m *MockClient) ChatCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chatCalls
}
