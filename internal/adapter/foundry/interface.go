package foundry

import (
	"context"

	"github.com/docuchat/relay/internal/domain"
)

// AgentAPI defines the agent invocation the relay uses.
type AgentAPI interface {
	// Chat sends a message plus optional prior turns to the agent.
	Chat(ctx context.Context, message string, history []domain.AgentTurn) (string, error)
}

// Ensure Client implements the AgentAPI interface.
var _ AgentAPI = (*Client)(nil)
