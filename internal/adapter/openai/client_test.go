package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateChatCompletion(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{
			ID:    "chatcmpl-1",
			Model: "gpt-4o",
			Choices: []Choice{
				{Message: &ChatMessage{Role: "assistant", Content: "hello back"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second)
	temperature := 0.5
	budget := 2000
	resp, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model: "gpt-4o",
		Messages: []ChatMessage{
			{Role: "system", Content: "sys"},
			{Role: "user", Content: "hello"},
		},
		Temperature:         &temperature,
		MaxCompletionTokens: &budget,
	})

	assert.NoError(t, err)
	assert.Equal(t, "hello back", resp.Choices[0].Message.Content)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)

	// Newer model families take max_completion_tokens; the legacy field
	// must be absent from the wire payload entirely.
	assert.Equal(t, float64(2000), gotBody["max_completion_tokens"])
	_, hasLegacy := gotBody["max_tokens"]
	assert.False(t, hasLegacy)
}

func TestCreateChatCompletionLegacyTokenField(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []Choice{{Message: &ChatMessage{Role: "assistant", Content: "ok"}}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second)
	budget := 700
	_, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model:     "gpt-3.5-turbo",
		Messages:  []ChatMessage{{Role: "user", Content: "hi"}},
		MaxTokens: &budget,
	})

	assert.NoError(t, err)
	assert.Equal(t, float64(700), gotBody["max_tokens"])
	_, hasNewer := gotBody["max_completion_tokens"]
	assert.False(t, hasNewer)
}

func TestCreateChatCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(ErrorResponse{
			Error: &APIError{Message: "rate limited", Type: "rate_limit_error"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second)
	_, err := client.CreateChatCompletion(context.Background(), &ChatCompletionRequest{
		Model:    "gpt-4o",
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "OpenAI API error [429]")
	assert.Contains(t, err.Error(), "rate limited")
	assert.Contains(t, err.Error(), "rate_limit_error")
}

func TestCreateModeration(t *testing.T) {
	var gotPath string
	var gotBody ModerationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ModerationResponse{
			ID: "modr-1",
			Results: []ModerationOutcome{
				{Flagged: true, Categories: map[string]bool{"violence": true, "hate": false}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second)
	outcome, err := client.CreateModeration(context.Background(), "bad text")

	assert.NoError(t, err)
	assert.True(t, outcome.Flagged)
	assert.True(t, outcome.Categories["violence"])
	assert.False(t, outcome.Categories["hate"])
	assert.Equal(t, "/v1/moderations", gotPath)
	assert.Equal(t, "bad text", gotBody.Input)
}

func TestCreateModerationEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ModerationResponse{ID: "modr-1"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second)
	_, err := client.CreateModeration(context.Background(), "text")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no results")
}
