package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docuchat/relay/internal/domain"
)

func TestComposePromptParameterTable(t *testing.T) {
	cases := []struct {
		name        string
		mode        domain.Mode
		hasDocs     bool
		temperature float64
		budget      int
	}{
		{"plain general", domain.ModeGeneral, false, 0.3, 700},
		{"plain code", domain.ModeCode, false, 0.3, 700},
		{"doc general", domain.ModeGeneral, true, 0.5, 2000},
		{"doc code", domain.ModeCode, true, 0.35, 2000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ComposePrompt("tell me about the report", tc.mode, "ignored context", tc.hasDocs)
			assert.Equal(t, tc.temperature, p.Temperature)
			assert.Equal(t, tc.budget, p.TokenBudget)
		})
	}
}

func TestComposePromptSystemInstructionSelection(t *testing.T) {
	plain := ComposePrompt("summarize our planning conversation please", domain.ModeGeneral, "", false)
	code := ComposePrompt("refactor this loop into a comprehension", domain.ModeCode, "", false)
	docGeneral := ComposePrompt("summarize", domain.ModeGeneral, "ctx", true)
	docCode := ComposePrompt("summarize", domain.ModeCode, "ctx", true)

	assert.Contains(t, plain.SystemInstruction, "general assistant")
	assert.Contains(t, code.SystemInstruction, "coding assistant")
	assert.NotContains(t, code.SystemInstruction, "uploaded documents")
	assert.Contains(t, docGeneral.SystemInstruction, "access to uploaded documents")
	assert.Contains(t, docCode.SystemInstruction, "coding assistant with access to uploaded documents")
}

func TestComposePromptLegacyEmbeddedContext(t *testing.T) {
	message := domain.DocContextHeader + "\n\n--- Document: a.txt ---\nalpha\n\nUser question: what is alpha?"
	p := ComposePrompt(message, domain.ModeGeneral, "", false)

	assert.Equal(t, 0.5, p.Temperature)
	assert.Equal(t, 2000, p.TokenBudget)
	// The embedded context is the user content; no heuristic wrapping.
	assert.Equal(t, message, p.UserContent)
}

func TestEnhanceMessageHelpKeyword(t *testing.T) {
	p := ComposePrompt("How do goroutines work internally in the scheduler", domain.ModeGeneral, "", false)
	assert.Equal(t, "Please provide a helpful and well-structured response to: How do goroutines work internally in the scheduler", p.UserContent)
}

func TestEnhanceMessageShortMessage(t *testing.T) {
	p := ComposePrompt("good morning", domain.ModeGeneral, "", false)
	assert.Equal(t, "User said: 'good morning'. Please respond naturally and engagingly.", p.UserContent)
}

func TestEnhanceMessageHelpKeywordWinsOverShort(t *testing.T) {
	p := ComposePrompt("what now", domain.ModeGeneral, "", false)
	assert.True(t, strings.HasPrefix(p.UserContent, "Please provide a helpful"))
}

func TestEnhanceMessageLongPlainMessagePassesThrough(t *testing.T) {
	message := "the quarterly numbers came in above forecast across every region"
	p := ComposePrompt(message, domain.ModeGeneral, "", false)
	assert.Equal(t, message, p.UserContent)
}

func TestComposePromptDocContextBecomesUserContent(t *testing.T) {
	ctx := domain.DocContextHeader + "\n\n--- Document: notes.txt ---\nbody\n\nUser question: summarize"
	p := ComposePrompt("summarize", domain.ModeGeneral, ctx, true)
	assert.Equal(t, ctx, p.UserContent)
}

func TestQuestionSegment(t *testing.T) {
	message := domain.DocContextHeader + "\n\n--- Document: a.txt ---\nalpha\n\nUser question: what is alpha?"
	assert.Equal(t, "what is alpha?", QuestionSegment(message))
	assert.Equal(t, "plain message", QuestionSegment("plain message"))
}
