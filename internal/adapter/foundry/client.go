// Package foundry provides the HTTP client for the token-authenticated agent service.
package foundry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/docuchat/relay/internal/domain"
)

// Config holds the settings the agent path needs.
type Config struct {
	TenantID      string
	ClientID      string
	ClientSecret  string
	AgentEndpoint string
	// TokenURL is the identity provider base URL; tests point it at a local server.
	TokenURL string
}

// Client invokes the Foundry agent endpoint.
type Client struct {
	endpoint   string
	tokens     *tokenSource
	httpClient *http.Client
}

// NewClient creates a new agent client. Missing settings are a construction
// error so the failure surfaces once at startup, not on every call.
func NewClient(cfg Config) (*Client, error) {
	if cfg.TenantID == "" || cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.AgentEndpoint == "" {
		return nil, fmt.Errorf("missing agent credentials: tenant id, client id, client secret, and endpoint are all required")
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = "https://login.microsoftonline.com"
	}
	return &Client{
		endpoint: cfg.AgentEndpoint,
		tokens:   newTokenSource(tokenURL, cfg.TenantID, cfg.ClientID, cfg.ClientSecret),
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}, nil
}

type agentRequest struct {
	Input []domain.AgentTurn `json:"input"`
}

// Chat sends the message plus optional prior turns to the agent and returns
// the assistant text. An unparseable reply degrades to the fixed fallback
// string; credential and transport failures are returned as errors.
func (c *Client) Chat(ctx context.Context, message string, history []domain.AgentTurn) (string, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("acquire agent credential: %w", err)
	}

	input := make([]domain.AgentTurn, 0, len(history)+1)
	input = append(input, history...)
	input = append(input, domain.AgentTurn{Role: "user", Content: message})

	body, err := json.Marshal(agentRequest{Input: input})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to invoke agent: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("agent returned status %d: %s", resp.StatusCode, string(respBody))
	}

	reply := ParseReply(respBody)
	if reply.Kind == domain.AgentReplyUnparseable {
		log.Printf("WARN: could not extract agent reply: %s", truncate(string(respBody), 200))
		return domain.AgentFallbackText, nil
	}
	return reply.Text, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
