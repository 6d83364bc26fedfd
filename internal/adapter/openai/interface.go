package openai

import "context"

// API defines the completion and moderation operations the relay uses.
type API interface {
	// CreateChatCompletion sends a chat completion request.
	CreateChatCompletion(ctx context.Context, req *ChatCompletionRequest) (*ChatCompletionResponse, error)

	// CreateModeration submits the input for a content-policy check.
	CreateModeration(ctx context.Context, input string) (*ModerationOutcome, error)
}

// Ensure Client implements the API interface.
var _ API = (*Client)(nil)
