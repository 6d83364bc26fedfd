package domain

// AgentTurn is one prior turn sent to the Foundry agent.
type AgentTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AgentReplyKind tags which of the known agent response shapes matched.
type AgentReplyKind int

const (
	// AgentReplyUnparseable means no known shape matched.
	AgentReplyUnparseable AgentReplyKind = iota
	// AgentReplyText matched the direct output_text field.
	AgentReplyText
	// AgentReplyOutputItems matched the structured output item list.
	AgentReplyOutputItems
	// AgentReplyChoices matched a completions-style choice list.
	AgentReplyChoices
)

// AgentReply is the parsed agent response as a tagged union over the three
// known shapes, with an explicit unparseable terminal variant.
type AgentReply struct {
	Kind AgentReplyKind
	Text string
}
