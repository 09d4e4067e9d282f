package evaluation

import (
	"context"
	"time"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

// SearchFunc executes one search and returns the ranked result list.
// It matches the signature of the search pipeline so the runner can score
// live or fixture-backed configurations alike.
type SearchFunc func(ctx context.Context, query string) *entities.SearchResult

// Runner runs evaluation across a set of golden queries.
type Runner struct {
	search SearchFunc
}

// NewRunner creates a runner over a search function.
func NewRunner(search SearchFunc) *Runner {
	return &Runner{search: search}
}

// Run evaluates every golden query and aggregates Recall@10 and MRR@10.
func (r *Runner) Run(ctx context.Context, queries []GoldenQuery) *EvalSummary {
	summary := &EvalSummary{
		TotalQueries: len(queries),
		ByType:       make(map[entities.SearchType]*TypeSummary),
	}

	for _, gq := range queries {
		start := time.Now()
		result := r.search(ctx, gq.Query)
		duration := time.Since(start)

		retrievedIDs := make([]string, len(result.Products))
		for i, sp := range result.Products {
			retrievedIDs[i] = sp.Product.ID
		}

		res := EvalResult{
			QueryID:      gq.ID,
			Query:        gq.Query,
			SearchType:   gq.SearchType,
			RecallAt10:   RecallAtK(gq.ExpectedIDs, retrievedIDs, 10),
			MRRAt10:      MRRAtK(gq.ExpectedIDs, retrievedIDs, 10),
			ResultCount:  len(result.Products),
			RetrievedIDs: retrievedIDs,
			Latency:      duration,
		}

		r.updateSummary(summary, res)
	}

	r.finalizeSummary(summary)
	return summary
}

func (r *Runner) updateSummary(s *EvalSummary, res EvalResult) {
	s.AvgRecallAt10 += res.RecallAt10
	s.AvgMRRAt10 += res.MRRAt10
	s.AvgLatency += res.Latency
	if res.ResultCount > 0 {
		s.QueriesWithHits++
	}

	if _, ok := s.ByType[res.SearchType]; !ok {
		s.ByType[res.SearchType] = &TypeSummary{}
	}
	ts := s.ByType[res.SearchType]
	ts.Count++
	ts.AvgRecallAt10 += res.RecallAt10
	ts.AvgMRRAt10 += res.MRRAt10
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	if s.TotalQueries > 0 {
		n := float64(s.TotalQueries)
		s.AvgRecallAt10 /= n
		s.AvgMRRAt10 /= n
		s.AvgLatency /= time.Duration(s.TotalQueries)
	}

	for _, ts := range s.ByType {
		if ts.Count > 0 {
			n := float64(ts.Count)
			ts.AvgRecallAt10 /= n
			ts.AvgMRRAt10 /= n
		}
	}
}
