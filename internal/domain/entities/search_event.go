package entities

import (
	"time"
)

// SearchEvent represents a single search interaction for analytics.
type SearchEvent struct {
	ID              string     `json:"id" db:"id"`
	TenantID        string     `json:"tenant_id" db:"tenant_id"`
	Query           string     `json:"query" db:"query"`
	NormalizedQuery string     `json:"normalized_query" db:"normalized_query"`
	SearchType      SearchType `json:"search_type,omitempty" db:"search_type"`
	Confidence      float64    `json:"confidence" db:"confidence"`
	ResultCount     int        `json:"result_count" db:"result_count"`
	LatencyMs       int        `json:"latency_ms" db:"latency_ms"`
	Degraded        bool       `json:"degraded" db:"degraded"` // lexical-only, no intent analysis
	SessionID       string     `json:"session_id,omitempty" db:"session_id"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}
