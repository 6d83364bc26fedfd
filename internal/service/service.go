// Package service implements the chat pipeline and document operations.
package service

import (
	"github.com/docuchat/relay/internal/adapter/foundry"
	"github.com/docuchat/relay/internal/adapter/openai"
	"github.com/docuchat/relay/internal/config"
	"github.com/docuchat/relay/internal/store"
	"github.com/docuchat/relay/policy"
)

// Service coordinates moderation, prompt composition, completion, keyword
// extraction, the agent path, and persistence.
type Service struct {
	store        store.Store
	openaiClient openai.API
	agentClient  foundry.AgentAPI
	policyEngine *policy.Engine
	config       *config.Config
}

// New creates a new service. agentClient may be nil when the agent backend
// is not configured; chat requests naming the agent model then get a fixed
// not-configured reply instead of an error.
func New(st store.Store, openaiClient openai.API, agentClient foundry.AgentAPI, policyEngine *policy.Engine, cfg *config.Config) *Service {
	return &Service{
		store:        st,
		openaiClient: openaiClient,
		agentClient:  agentClient,
		policyEngine: policyEngine,
		config:       cfg,
	}
}
