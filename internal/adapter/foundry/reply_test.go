package foundry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docuchat/relay/internal/domain"
)

func TestParseReply(t *testing.T) {
	cases := []struct {
		name string
		body string
		kind domain.AgentReplyKind
		text string
	}{
		{
			"direct output_text",
			`{"output_text": "direct answer"}`,
			domain.AgentReplyText,
			"direct answer",
		},
		{
			"output items with typed parts",
			`{"output": [{"type": "message", "role": "assistant", "content": [{"type": "output_text", "text": "from parts"}]}]}`,
			domain.AgentReplyOutputItems,
			"from parts",
		},
		{
			"output items with bare string content",
			`{"output": [{"type": "message", "role": "assistant", "content": "bare string"}]}`,
			domain.AgentReplyOutputItems,
			"bare string",
		},
		{
			"non-assistant items skipped",
			`{"output": [{"type": "reasoning", "role": "assistant", "content": "skip"}, {"type": "message", "role": "assistant", "content": "kept"}]}`,
			domain.AgentReplyOutputItems,
			"kept",
		},
		{
			"completions-style choices",
			`{"choices": [{"message": {"content": "from choices"}}]}`,
			domain.AgentReplyChoices,
			"from choices",
		},
		{
			"output_text wins over other shapes",
			`{"output_text": "primary", "choices": [{"message": {"content": "secondary"}}]}`,
			domain.AgentReplyText,
			"primary",
		},
		{
			"empty object is unparseable",
			`{}`,
			domain.AgentReplyUnparseable,
			"",
		},
		{
			"malformed json is unparseable",
			`{"output_text": `,
			domain.AgentReplyUnparseable,
			"",
		},
		{
			"empty choice content is unparseable",
			`{"choices": [{"message": {"content": ""}}]}`,
			domain.AgentReplyUnparseable,
			"",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reply := ParseReply([]byte(tc.body))
			assert.Equal(t, tc.kind, reply.Kind)
			assert.Equal(t, tc.text, reply.Text)
		})
	}
}
