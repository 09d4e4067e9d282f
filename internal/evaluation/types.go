package evaluation

import (
	"time"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

// GoldenQuery represents a labeled test query with expected outcomes.
type GoldenQuery struct {
	ID          string              `json:"id"`
	Query       string              `json:"query"`
	SearchType  entities.SearchType `json:"search_type"`
	ExpectedIDs []string            `json:"expected_product_ids"`
	Difficulty  string              `json:"difficulty"` // easy, medium, hard
}

// EvalResult holds the evaluation outcome for a single query.
type EvalResult struct {
	QueryID      string
	Query        string
	SearchType   entities.SearchType
	RecallAt10   float64
	MRRAt10      float64
	ResultCount  int
	RetrievedIDs []string
	Latency      time.Duration
}

// TypeSummary holds aggregate metrics for one search type.
type TypeSummary struct {
	Count         int
	AvgRecallAt10 float64
	AvgMRRAt10    float64
}

// EvalSummary holds aggregate metrics across all golden queries.
type EvalSummary struct {
	TotalQueries    int
	AvgRecallAt10   float64
	AvgMRRAt10      float64
	AvgLatency      time.Duration
	QueriesWithHits int // queries that returned at least 1 result
	ByType          map[entities.SearchType]*TypeSummary
}
