package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

func fixtureSearch(results map[string][]string) SearchFunc {
	return func(ctx context.Context, query string) *entities.SearchResult {
		ids := results[query]
		scored := make([]entities.ScoredProduct, len(ids))
		for i, id := range ids {
			scored[i] = entities.ScoredProduct{Product: &entities.Product{ID: id}}
		}
		return &entities.SearchResult{Products: scored}
	}
}

func TestRunner_AggregatesMetrics(t *testing.T) {
	search := fixtureSearch(map[string][]string{
		"paracetamol": {"p1", "p2"}, // perfect retrieval
		"headache":    {"x", "p1"},  // relevant at rank 2
		"unknown":     nil,          // zero results
	})

	queries := []GoldenQuery{
		{ID: "gq-1", Query: "paracetamol", SearchType: entities.SearchTypeProduct, ExpectedIDs: []string{"p1", "p2"}},
		{ID: "gq-2", Query: "headache", SearchType: entities.SearchTypeSymptom, ExpectedIDs: []string{"p1"}},
		{ID: "gq-3", Query: "unknown", SearchType: entities.SearchTypeSymptom, ExpectedIDs: []string{"p9"}},
	}

	summary := NewRunner(search).Run(context.Background(), queries)

	assert.Equal(t, 3, summary.TotalQueries)
	assert.Equal(t, 2, summary.QueriesWithHits)
	// (1.0 + 1.0 + 0.0) / 3
	assert.InDelta(t, 2.0/3.0, summary.AvgRecallAt10, 1e-9)
	// (1.0 + 0.5 + 0.0) / 3
	assert.InDelta(t, 0.5, summary.AvgMRRAt10, 1e-9)

	require.Contains(t, summary.ByType, entities.SearchTypeProduct)
	require.Contains(t, summary.ByType, entities.SearchTypeSymptom)
	assert.Equal(t, 1, summary.ByType[entities.SearchTypeProduct].Count)
	assert.Equal(t, 2, summary.ByType[entities.SearchTypeSymptom].Count)
	assert.InDelta(t, 1.0, summary.ByType[entities.SearchTypeProduct].AvgRecallAt10, 1e-9)
	assert.InDelta(t, 0.25, summary.ByType[entities.SearchTypeSymptom].AvgMRRAt10, 1e-9)
}

func TestRunner_EmptyQuerySet(t *testing.T) {
	summary := NewRunner(fixtureSearch(nil)).Run(context.Background(), nil)

	assert.Equal(t, 0, summary.TotalQueries)
	assert.Equal(t, 0.0, summary.AvgRecallAt10)
	assert.Empty(t, summary.ByType)
}
