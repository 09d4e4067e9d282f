package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

func TestSanitize_ClearsInvalidSearchType(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})

	analysis := &entities.IntentAnalysis{SearchType: "medication-ish"}
	g.Sanitize(analysis)
	assert.Equal(t, entities.SearchType(""), analysis.SearchType)

	analysis = &entities.IntentAnalysis{SearchType: entities.SearchTypeSymptom}
	g.Sanitize(analysis)
	assert.Equal(t, entities.SearchTypeSymptom, analysis.SearchType)
}

func TestSanitize_NormalizesTermLists(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})

	analysis := &entities.IntentAnalysis{
		Keywords:    []string{" Headache ", "FEVER", "headache", "", "pain"},
		Explanation: "  Searching for remedies  ",
	}
	g.Sanitize(analysis)

	assert.Equal(t, []string{"headache", "fever", "pain"}, analysis.Keywords)
	assert.Equal(t, "Searching for remedies", analysis.Explanation)
}

func TestSanitize_CapsListLengths(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{MaxKeywords: 2, MaxSuggestions: 1})

	analysis := &entities.IntentAnalysis{
		Keywords:    []string{"a", "b", "c", "d"},
		Suggestions: []string{"x", "y"},
	}
	g.Sanitize(analysis)

	assert.Equal(t, []string{"a", "b"}, analysis.Keywords)
	assert.Equal(t, []string{"x"}, analysis.Suggestions)
}

func TestSanitize_NilAnalysisIsNoop(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})
	g.Sanitize(nil) // must not panic
}
