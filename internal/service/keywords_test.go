package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docuchat/relay/internal/adapter/openai"
)

func TestParseKeywords(t *testing.T) {
	cases := []struct {
		name     string
		reply    string
		expected []string
	}{
		{"plain list", "go, concurrency, channels", []string{"go", "concurrency", "channels"}},
		{"ragged whitespace", " commas,  separate , extracted ,Keywords ", []string{"commas", "separate", "extracted", "Keywords"}},
		{"empty entries dropped", "alpha,,beta, ,gamma", []string{"alpha", "beta", "gamma"}},
		{"single keyword", "databases", []string{"databases"}},
		{"empty reply", "", nil},
		{"only separators", ", ,,", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseKeywords(tc.reply))
		})
	}
}

func TestExtractKeywordsUsesDefaultModelAndTemplate(t *testing.T) {
	mock := openai.NewMockClient()
	mock.ChatCompletionFn = func(ctx context.Context, req *openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
		return &openai.ChatCompletionResponse{
			Choices: []openai.Choice{
				{Message: &openai.ChatMessage{Role: "assistant", Content: "topic one, topic two"}},
			},
		}, nil
	}

	svc, _ := newTestService(t, mock, nil)
	keywords, err := svc.extractKeywords(context.Background(), "tell me about topic one")
	assert.NoError(t, err)
	assert.Equal(t, []string{"topic one", "topic two"}, keywords)

	req := mock.LastChatRequest()
	assert.Equal(t, DefaultModel, req.Model)
	assert.Len(t, req.Messages, 2)
	assert.Contains(t, req.Messages[1].Content, "Extract 3 to 5 important keywords or topics from the following message:")
	assert.Contains(t, req.Messages[1].Content, `"tell me about topic one"`)
	assert.Contains(t, req.Messages[1].Content, "List them separated by commas.")
	// gpt-4o takes the newer token parameter.
	assert.Nil(t, req.MaxTokens)
	if assert.NotNil(t, req.MaxCompletionTokens) {
		assert.Equal(t, 700, *req.MaxCompletionTokens)
	}
}
