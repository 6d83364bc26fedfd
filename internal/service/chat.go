package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docuchat/relay/internal/adapter/openai"
	"github.com/docuchat/relay/internal/domain"
	"github.com/docuchat/relay/policy"
)

// HandleChat runs the full chat pipeline: admission policy, agent routing,
// moderation gate, document context assembly, prompt composition,
// completion, keyword extraction, and audit logging.
func (s *Service) HandleChat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	if err := s.admit(ctx, message, req); err != nil {
		return nil, err
	}

	if req.Model == domain.AgentModel {
		return s.handleAgentChat(ctx, message)
	}

	moderation, err := s.moderate(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("moderation check failed: %w", err)
	}
	if moderation.Flagged {
		s.logFlagged(ctx, message, moderation.Categories)
		return &domain.ChatResponse{Text: domain.RefusalText}, nil
	}

	docContext, hasDocs, err := s.buildDocumentContext(ctx, message, req.DocumentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	prompt := ComposePrompt(message, req.Mode, docContext, hasDocs)
	model := ResolveModel(req.Model)

	reply, err := s.complete(ctx, model, prompt)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	// Keywords describe the question, not the pasted document context.
	question := QuestionSegment(message)
	keywords, err := s.extractKeywords(ctx, question)
	if err != nil {
		log.Printf("WARN: keyword extraction failed: %v", err)
		keywords = nil
	}

	s.logInteraction(ctx, question, reply, keywords, moderation.Categories)
	return &domain.ChatResponse{Text: reply}, nil
}

// admit evaluates the admission policy. An evaluation error is logged and
// treated as allow so a broken policy cannot take chat down.
func (s *Service) admit(ctx context.Context, message string, req *domain.ChatRequest) error {
	if s.policyEngine == nil {
		return nil
	}
	input := map[string]interface{}{
		"message_length": len(message),
		"model":          req.Model,
		"mode":           string(req.Mode),
		"document_count": len(req.DocumentIDs),
	}
	decision, reason, err := s.policyEngine.Evaluate(ctx, input)
	if err != nil {
		log.Printf("WARN: policy evaluation failed, allowing request: %v", err)
		return nil
	}
	if decision == policy.DecisionBlock {
		return fmt.Errorf("%w: %s", domain.ErrPolicyRejected, reason)
	}
	return nil
}

// handleAgentChat routes a request to the Foundry agent. Agent failures
// become reply text rather than transport errors, and every exchange is
// logged like a normal interaction.
func (s *Service) handleAgentChat(ctx context.Context, message string) (*domain.ChatResponse, error) {
	var reply string
	if s.agentClient == nil {
		reply = "The assistant agent is not configured. Please select a different model."
	} else {
		text, err := s.agentClient.Chat(ctx, message, nil)
		if err != nil {
			log.Printf("ERROR: agent chat failed: %v", err)
			reply = fmt.Sprintf("I apologize, but I'm having trouble connecting to the assistant right now. (%v)", err)
		} else {
			reply = text
		}
	}

	s.logInteraction(ctx, message, reply, nil, nil)
	return &domain.ChatResponse{Text: reply}, nil
}

// moderate runs the moderation gate and flattens the outcome to the sorted
// names of the flagged categories.
func (s *Service) moderate(ctx context.Context, message string) (*domain.ModerationResult, error) {
	outcome, err := s.openaiClient.CreateModeration(ctx, message)
	if err != nil {
		return nil, err
	}

	var categories []string
	for name, flagged := range outcome.Categories {
		if flagged {
			categories = append(categories, name)
		}
	}
	sort.Strings(categories)

	return &domain.ModerationResult{Flagged: outcome.Flagged, Categories: categories}, nil
}

// buildDocumentContext assembles the document context block for the
// request. Legacy clients that pasted the context into the message itself
// pass through unchanged; unknown document ids are skipped.
func (s *Service) buildDocumentContext(ctx context.Context, message string, documentIDs []string) (string, bool, error) {
	if strings.Contains(message, domain.DocContextHeader) {
		return message, true, nil
	}
	if len(documentIDs) == 0 {
		return "", false, nil
	}

	docs, err := s.store.GetDocumentsByIDs(ctx, documentIDs)
	if err != nil {
		return "", false, err
	}
	if len(docs) == 0 {
		return "", false, nil
	}

	var b strings.Builder
	b.WriteString(domain.DocContextHeader)
	b.WriteString("\n\n")
	for _, doc := range docs {
		fmt.Fprintf(&b, "--- Document: %s ---\n%s\n\n", doc.Filename, doc.Content)
	}
	b.WriteString(domain.QuestionMarker)
	b.WriteString(" ")
	b.WriteString(message)
	return b.String(), true, nil
}

// complete issues one completion call and returns the trimmed reply text.
func (s *Service) complete(ctx context.Context, model string, prompt domain.ComposedPrompt) (string, error) {
	temperature := prompt.Temperature
	budget := prompt.TokenBudget

	req := &openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatMessage{
			{Role: "system", Content: prompt.SystemInstruction},
			{Role: "user", Content: prompt.UserContent},
		},
		Temperature: &temperature,
	}
	if UsesMaxCompletionTokens(model) {
		req.MaxCompletionTokens = &budget
	} else {
		req.MaxTokens = &budget
	}

	resp, err := s.openaiClient.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
		return "", fmt.Errorf("completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// logInteraction appends the audit record. Logging failures never fail the
// chat; the reply has already been produced.
func (s *Service) logInteraction(ctx context.Context, prompt, response string, keywords, categories []string) {
	entry := &domain.Interaction{
		InteractionID: "int_" + uuid.New().String()[:8],
		Prompt:        prompt,
		Response:      response,
		Keywords:      keywords,
		Categories:    categories,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.LogInteraction(ctx, entry); err != nil {
		log.Printf("WARN: failed to log interaction: %v", err)
	}
}

func (s *Service) logFlagged(ctx context.Context, prompt string, categories []string) {
	entry := &domain.FlaggedMessage{
		FlaggedID:  "flg_" + uuid.New().String()[:8],
		Prompt:     prompt,
		Categories: categories,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.LogFlagged(ctx, entry); err != nil {
		log.Printf("WARN: failed to log flagged message: %v", err)
	}
}

// GetHistory returns recent interactions for the history view.
func (s *Service) GetHistory(ctx context.Context, limit int) ([]domain.Interaction, error) {
	return s.store.GetInteractions(ctx, limit)
}
