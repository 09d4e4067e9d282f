package entities

import (
	"time"
)

// Product represents a single catalog item for a tenant storefront.
// Products are read-only inside the search subsystem; the catalog owner
// mutates them elsewhere.
type Product struct {
	ID                   string    `json:"id" db:"id"`
	TenantID             string    `json:"tenant_id" db:"tenant_id"`
	Name                 string    `json:"name" db:"name"`
	Brand                string    `json:"brand" db:"brand"`
	Description          string    `json:"description" db:"description"`
	Category             string    `json:"category" db:"category"`
	Price                float64   `json:"price" db:"price"`
	Currency             string    `json:"currency" db:"currency"`
	RequiresPrescription bool      `json:"requires_prescription" db:"requires_prescription"`
	Uses                 []string  `json:"uses" db:"uses"` // free-text usage/symptom tags
	Tags                 []string  `json:"tags" db:"tags"`
	Position             int       `json:"position" db:"position"` // stable catalog order
	IsActive             bool      `json:"is_active" db:"is_active"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// MatchReason labels which product field produced a relevance match.
type MatchReason string

const (
	MatchReasonName        MatchReason = "name"
	MatchReasonBrand       MatchReason = "brand"
	MatchReasonDescription MatchReason = "description"
	MatchReasonCategory    MatchReason = "category"
)

// ScoredProduct pairs a product with its relevance score and the field
// that matched. Scores are non-negative; higher means more relevant.
type ScoredProduct struct {
	Product     *Product    `json:"product"`
	Score       float64     `json:"score"`
	MatchReason MatchReason `json:"match_reason"`
}
