package service

import "strings"

// DefaultModel is used when the requested model is empty or unrecognized.
const DefaultModel = "gpt-4o"

// supportedModels are accepted verbatim.
var supportedModels = map[string]bool{
	"gpt-4o":        true,
	"gpt-4o-mini":   true,
	"gpt-4.1":       true,
	"gpt-4.1-mini":  true,
	"gpt-3.5-turbo": true,
}

// modelAliases maps common placeholders to supported models.
var modelAliases = map[string]string{
	"gpt5":          "gpt-4o",
	"gpt-5":         "gpt-4o",
	"gpt-5-mini":    "gpt-4o-mini",
	"gpt-4.1-turbo": "gpt-4.1",
}

// ResolveModel maps a requested model name to a supported one. Unknown
// names silently fall back to the default rather than failing the request.
func ResolveModel(model string) string {
	m := strings.TrimSpace(model)
	if m == "" {
		return DefaultModel
	}
	if supportedModels[m] {
		return m
	}
	if alias, ok := modelAliases[strings.ToLower(m)]; ok {
		return alias
	}
	return DefaultModel
}

// UsesMaxCompletionTokens reports whether the model family takes the
// max_completion_tokens parameter instead of max_tokens.
func UsesMaxCompletionTokens(model string) bool {
	m := strings.ToLower(model)
	for _, prefix := range []string{"gpt-4o", "gpt-4.1", "o3", "o4"} {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}
