package foundry

import (
	"encoding/json"

	"github.com/docuchat/relay/internal/domain"
)

type agentResponse struct {
	OutputText string            `json:"output_text"`
	Output     []agentOutputItem `json:"output"`
	Choices    []agentChoice     `json:"choices"`
}

type agentOutputItem struct {
	Type    string          `json:"type"`
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
}

type agentContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type agentChoice struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// ParseReply matches the agent response against the three known shapes in
// fixed priority order: direct output_text, structured output items, then a
// completions-style choice list. Anything else is the unparseable variant.
func ParseReply(data []byte) domain.AgentReply {
	var resp agentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return domain.AgentReply{Kind: domain.AgentReplyUnparseable}
	}

	if resp.OutputText != "" {
		return domain.AgentReply{Kind: domain.AgentReplyText, Text: resp.OutputText}
	}

	for _, item := range resp.Output {
		if item.Type != "message" || item.Role != "assistant" {
			continue
		}
		if text, ok := assistantText(item.Content); ok {
			return domain.AgentReply{Kind: domain.AgentReplyOutputItems, Text: text}
		}
	}

	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		return domain.AgentReply{Kind: domain.AgentReplyChoices, Text: resp.Choices[0].Message.Content}
	}

	return domain.AgentReply{Kind: domain.AgentReplyUnparseable}
}

// assistantText pulls the text out of a message item's content, which is
// either a list of typed parts or a bare string.
func assistantText(content json.RawMessage) (string, bool) {
	if len(content) == 0 {
		return "", false
	}

	var parts []agentContentPart
	if err := json.Unmarshal(content, &parts); err == nil {
		for _, p := range parts {
			if p.Type == "output_text" && p.Text != "" {
				return p.Text, true
			}
		}
		return "", false
	}

	var s string
	if err := json.Unmarshal(content, &s); err == nil && s != "" {
		return s, true
	}
	return "", false
}
