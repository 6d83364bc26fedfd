// Package domain defines the types shared across the relay.
package domain

import (
	"errors"
	"time"
)

// Mode selects the response style for a chat request.
type Mode string

const (
	ModeGeneral Mode = "general"
	ModeCode    Mode = "code"
)

// ParseMode maps a client-supplied mode string to a Mode, defaulting to general.
func ParseMode(s string) Mode {
	if s == string(ModeCode) {
		return ModeCode
	}
	return ModeGeneral
}

// AgentModel is the reserved model identifier that routes a request to the
// Foundry agent instead of the completion service.
const AgentModel = "foundry-agent"

const (
	// DocContextHeader opens an assembled document-context block.
	DocContextHeader = "Context from uploaded documents:"
	// QuestionMarker separates the document context from the user's question.
	QuestionMarker = "User question:"
)

// RefusalText is returned for content the moderation service flagged.
const RefusalText = "I apologize, but I cannot respond to that type of content. Please try asking something else!"

// AgentFallbackText is returned when the agent reply cannot be parsed.
const AgentFallbackText = "I apologize, but I couldn't generate a response. Please try again."

var (
	// ErrEmptyMessage rejects a request with no message before any external call.
	ErrEmptyMessage = errors.New("message is required")
	// ErrPolicyRejected rejects a request the admission policy blocked.
	ErrPolicyRejected = errors.New("message rejected by policy")
)

// ChatRequest is the inbound chat payload.
type ChatRequest struct {
	Message     string   `json:"message"`
	Model       string   `json:"model,omitempty"`
	Mode        Mode     `json:"mode,omitempty"`
	DocumentIDs []string `json:"document_ids,omitempty"`
}

// ChatResponse carries the generated text or a fixed refusal/fallback string.
type ChatResponse struct {
	Text string `json:"response"`
}

// ComposedPrompt is the fully resolved prompt for one completion call.
// It is derived deterministically from the request and never mutated.
type ComposedPrompt struct {
	SystemInstruction string
	UserContent       string
	Temperature       float64
	TokenBudget       int
}

// ModerationResult is the gate's view of one moderation call.
type ModerationResult struct {
	Flagged    bool
	Categories []string
}

// Interaction is one append-only chat audit record.
type Interaction struct {
	InteractionID string    `json:"interaction_id"`
	Prompt        string    `json:"prompt"`
	Response      string    `json:"response"`
	Keywords      []string  `json:"keywords"`
	Categories    []string  `json:"categories"`
	CreatedAt     time.Time `json:"created_at"`
}

// FlaggedMessage records a blocked attempt.
type FlaggedMessage struct {
	FlaggedID  string    `json:"flagged_id"`
	Prompt     string    `json:"prompt"`
	Categories []string  `json:"categories"`
	CreatedAt  time.Time `json:"created_at"`
}
