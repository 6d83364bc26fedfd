package service

import (
	"fmt"
	"strings"

	"github.com/docuchat/relay/internal/domain"
)

const systemDocCode = `You are a concise, friendly coding assistant with access to uploaded documents.

Guidelines:
- Extract only the information needed to answer the question
- Provide correct, runnable code when relevant (include language-tagged fenced blocks)
- Cite the document sections you used when applicable
- Call out constraints, assumptions, and edge cases
- If the docs do not contain enough info, state that clearly and propose a safe default
- Keep answers short, skimmable, and focused on solving the task`

const systemDocGeneral = `You are a helpful AI assistant with access to uploaded documents. When analyzing documents, please:

- Carefully read and understand the provided document content
- Answer questions based specifically on the information in the documents
- Cite relevant parts of the documents when answering
- If the documents don't contain information needed to answer a question, clearly state this
- Provide comprehensive analysis and insights based on the document content
- Be thorough but concise in your responses
- Use markdown formatting for better readability when appropriate`

const systemCode = `You are a concise, friendly coding assistant.

Guidelines:
- Prioritize correct, runnable code and best practices
- Prefer step-by-step fixes and minimal explanations
- Use short paragraphs and bullet points; avoid fluff
- When showing code, use fenced blocks with a language tag
- Mention important caveats, edge cases, and security considerations
- If uncertain, state assumptions and propose a safe default
- Keep answers scoped to programming topics unless asked otherwise`

const systemGeneral = `You are a helpful, concise, and friendly general assistant.

Guidelines:
- Be direct, skimmable, and actionable
- Use short paragraphs and bullets; avoid verbosity
- Include key caveats and safety notes when relevant
- Ask clarifying questions only if strictly necessary
- Format outputs for readability (markdown ok)`

// helpKeywords trigger the structured-response wrap on plain messages.
var helpKeywords = []string{"help", "how", "what", "why", "when", "where"}

// ComposePrompt selects the system instruction and sampling parameters for
// a message and builds the user content. docContext, when non-empty, is the
// assembled document context including the trailing question; it becomes
// the user content as-is. Plain messages instead get the engagement
// heuristics applied. The function is pure.
func ComposePrompt(message string, mode domain.Mode, docContext string, hasDocs bool) domain.ComposedPrompt {
	// Legacy clients embed the context header in the message itself.
	isDocQuery := hasDocs || strings.Contains(message, domain.DocContextHeader)

	var p domain.ComposedPrompt
	switch {
	case isDocQuery && mode == domain.ModeCode:
		p = domain.ComposedPrompt{SystemInstruction: systemDocCode, Temperature: 0.35, TokenBudget: 2000}
	case isDocQuery:
		p = domain.ComposedPrompt{SystemInstruction: systemDocGeneral, Temperature: 0.5, TokenBudget: 2000}
	case mode == domain.ModeCode:
		p = domain.ComposedPrompt{SystemInstruction: systemCode, Temperature: 0.3, TokenBudget: 700}
	default:
		p = domain.ComposedPrompt{SystemInstruction: systemGeneral, Temperature: 0.3, TokenBudget: 700}
	}

	if isDocQuery {
		if docContext != "" {
			p.UserContent = docContext
		} else {
			p.UserContent = message
		}
		return p
	}

	p.UserContent = enhanceMessage(message)
	return p
}

// enhanceMessage wraps plain messages so the provider produces structured
// or engaging replies. Help-style questions win over the short-message wrap.
func enhanceMessage(message string) string {
	lower := strings.ToLower(message)
	for _, kw := range helpKeywords {
		if strings.Contains(lower, kw) {
			return fmt.Sprintf("Please provide a helpful and well-structured response to: %s", message)
		}
	}
	if len(strings.Fields(message)) < 5 {
		return fmt.Sprintf("User said: '%s'. Please respond naturally and engagingly.", message)
	}
	return message
}

// QuestionSegment returns the user question portion of a message that
// embeds document context, so keyword extraction and audit logging see the
// question rather than the pasted documents. Messages without the marker
// come back unchanged.
func QuestionSegment(message string) string {
	if idx := strings.LastIndex(message, domain.QuestionMarker); idx >= 0 {
		return strings.TrimSpace(message[idx+len(domain.QuestionMarker):])
	}
	return message
}
