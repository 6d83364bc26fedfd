// Package policy evaluates chat admission decisions with OPA.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

const (
	// DecisionAllow lets the request through the pipeline.
	DecisionAllow = "allow"
	// DecisionBlock rejects the request before any provider call.
	DecisionBlock = "block"
)

// DefaultPolicy is the built-in admission policy. It blocks messages over
// the provider context ceiling and allows everything else.
const DefaultPolicy = `package chat_policy

import rego.v1

default decision := {"action": "allow", "reason": ""}

decision := {"action": "block", "reason": "message too long"} if {
	input.message_length > 16000
}
`

// Engine wraps a prepared rego query for chat admission.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine compiles the given rego policy content and prepares the
// admission query.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.chat_policy.decision"),
		rego.Module("chat_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the admission policy against the request attributes.
// Input is a map with keys: message_length, model, mode, document_count.
// Returns: decision (allow, block), reason (optional), error.
func (e *Engine) Evaluate(ctx context.Context, input map[string]interface{}) (string, string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default, so an empty result means the
		// module is missing its decision rule entirely.
		return "", "", fmt.Errorf("policy returned no decision")
	}

	decision, ok := results[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return "", "", fmt.Errorf("unexpected policy decision type %T", results[0].Expressions[0].Value)
	}

	action, _ := decision["action"].(string)
	reason, _ := decision["reason"].(string)
	if action != DecisionAllow && action != DecisionBlock {
		return "", "", fmt.Errorf("policy returned unknown action %q", action)
	}
	return action, reason, nil
}
