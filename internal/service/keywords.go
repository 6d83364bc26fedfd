package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/docuchat/relay/internal/adapter/openai"
)

const keywordInstruction = "Extract 3 to 5 important keywords or topics from the following message:\n\n\"%s\"\n\nList them separated by commas."

// extractKeywords asks the completion backend to name the topics of a
// message. It always uses the default model and general parameters; the
// request's own model and mode do not apply here.
func (s *Service) extractKeywords(ctx context.Context, message string) ([]string, error) {
	prompt := fmt.Sprintf(keywordInstruction, message)
	temperature := 0.3
	budget := 700

	req := &openai.ChatCompletionRequest{
		Model: DefaultModel,
		Messages: []openai.ChatMessage{
			{Role: "system", Content: systemGeneral},
			{Role: "user", Content: prompt},
		},
		Temperature: &temperature,
	}
	if UsesMaxCompletionTokens(DefaultModel) {
		req.MaxCompletionTokens = &budget
	} else {
		req.MaxTokens = &budget
	}

	resp, err := s.openaiClient.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return nil, fmt.Errorf("keyword extraction returned no choices")
	}
	return ParseKeywords(resp.Choices[0].Message.Content), nil
}

// ParseKeywords splits a comma-separated keyword reply, trimming whitespace
// and dropping empty entries.
func ParseKeywords(reply string) []string {
	var keywords []string
	for _, kw := range strings.Split(reply, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
