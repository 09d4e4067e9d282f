package evaluation

import (
	"strings"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

// GuardrailConfig bounds how much of an intent analysis is trusted.
type GuardrailConfig struct {
	MaxKeywords    int
	MaxSuggestions int
}

// Guardrails sanitizes Intent Analyzer output before it reaches the ranking
// engine: invalid search types are cleared, term lists are lowercased,
// deduplicated, and capped.
type Guardrails struct {
	config GuardrailConfig
}

// NewGuardrails creates guardrails, applying defaults for unset limits.
func NewGuardrails(config GuardrailConfig) *Guardrails {
	if config.MaxKeywords <= 0 {
		config.MaxKeywords = 8
	}
	if config.MaxSuggestions <= 0 {
		config.MaxSuggestions = 5
	}
	return &Guardrails{config: config}
}

// Sanitize normalizes an analysis in place.
func (g *Guardrails) Sanitize(analysis *entities.IntentAnalysis) {
	if analysis == nil {
		return
	}
	if !analysis.SearchType.IsValid() {
		analysis.SearchType = ""
	}
	analysis.Keywords = sanitizeTerms(analysis.Keywords, g.config.MaxKeywords)
	analysis.Suggestions = sanitizeTerms(analysis.Suggestions, g.config.MaxSuggestions)
	analysis.Explanation = strings.TrimSpace(analysis.Explanation)
}

func sanitizeTerms(terms []string, limit int) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out
}
