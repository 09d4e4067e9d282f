package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

func TestRank_NameBeatsDescription(t *testing.T) {
	svc := NewSearchRankingService()

	p1 := &entities.Product{ID: "p1", Name: "Paracetamol 500mg"}
	p2 := &entities.Product{ID: "p2", Name: "Crocin Advance", Description: "Fast-acting paracetamol tablets"}

	results := svc.Rank([]*entities.Product{p2, p1}, "paracetamol", nil)

	assert.Equal(t, 2, len(results))
	assert.Equal(t, "p1", results[0].Product.ID)
	assert.Equal(t, entities.MatchReasonName, results[0].MatchReason)
	assert.Equal(t, entities.MatchReasonDescription, results[1].MatchReason)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestRank_ExactNameBonus(t *testing.T) {
	svc := NewSearchRankingService()

	exact := &entities.Product{ID: "p1", Name: "Paracetamol"}
	partial := &entities.Product{ID: "p2", Name: "Paracetamol 500mg"}

	results := svc.Rank([]*entities.Product{partial, exact}, "paracetamol", nil)

	assert.Equal(t, "p1", results[0].Product.ID)
	assert.Equal(t, 150.0, results[0].Score)
	assert.Equal(t, 100.0, results[1].Score)
}

func TestRank_BrandMatch(t *testing.T) {
	svc := NewSearchRankingService()

	p := &entities.Product{ID: "p1", Name: "Crocin Advance", Brand: "GSK"}

	results := svc.Rank([]*entities.Product{p}, "gsk", nil)

	assert.Equal(t, 1, len(results))
	assert.Equal(t, entities.MatchReasonBrand, results[0].MatchReason)
	assert.Equal(t, 80.0, results[0].Score)
}

func TestRank_FirstMatchWins(t *testing.T) {
	svc := NewSearchRankingService()

	// Name contains the query AND the brand does too; only the name rule
	// should fire.
	p := &entities.Product{ID: "p1", Name: "Emzor Paracetamol", Brand: "Emzor"}

	results := svc.Rank([]*entities.Product{p}, "emzor", nil)

	assert.Equal(t, 1, len(results))
	assert.Equal(t, entities.MatchReasonName, results[0].MatchReason)
	assert.Equal(t, 100.0, results[0].Score)
}

func TestRank_KeywordExpansionMatchesUses(t *testing.T) {
	svc := NewSearchRankingService()

	p := &entities.Product{ID: "p1", Name: "Ibuprofen 400mg", Uses: []string{"headache", "pain"}}

	// Lexically "migraine" matches nothing.
	assert.Empty(t, svc.Rank([]*entities.Product{p}, "migraine", nil))

	// With an intent keyword the overlap rule fires at category weight.
	results := svc.Rank([]*entities.Product{p}, "migraine", []string{"headache"})
	assert.Equal(t, 1, len(results))
	assert.Equal(t, entities.MatchReasonCategory, results[0].MatchReason)
	assert.Equal(t, 30.0, results[0].Score)
}

func TestRank_CategoryOverlapIsBidirectional(t *testing.T) {
	svc := NewSearchRankingService()

	p := &entities.Product{ID: "p1", Name: "Loratadine 10mg", Category: "Allergy"}

	// Query longer than the category still overlaps.
	results := svc.Rank([]*entities.Product{p}, "allergy relief", []string{"allergy"})
	assert.Equal(t, 1, len(results))
	assert.Equal(t, entities.MatchReasonCategory, results[0].MatchReason)
}

func TestRank_StableOrderOnTies(t *testing.T) {
	svc := NewSearchRankingService()

	p1 := &entities.Product{ID: "p1", Name: "Paracetamol 500mg"}
	p2 := &entities.Product{ID: "p2", Name: "Paracetamol 1000mg"}
	p3 := &entities.Product{ID: "p3", Name: "Paracetamol Syrup"}

	results := svc.Rank([]*entities.Product{p1, p2, p3}, "paracetamol", nil)

	// Equal scores keep catalog order.
	assert.Equal(t, []string{"p1", "p2", "p3"}, []string{
		results[0].Product.ID, results[1].Product.ID, results[2].Product.ID,
	})
}

func TestRank_EmptyQueryAndNoMatches(t *testing.T) {
	svc := NewSearchRankingService()
	products := []*entities.Product{{ID: "p1", Name: "Paracetamol"}}

	assert.Empty(t, svc.Rank(products, "", nil))
	assert.Empty(t, svc.Rank(products, "xyzzy", nil))
	assert.Empty(t, svc.Rank(nil, "paracetamol", nil))
}

func TestConfidence(t *testing.T) {
	svc := NewSearchRankingService()

	assert.Equal(t, 0.0, svc.Confidence(nil))

	// Exact name match saturates at 1.
	assert.Equal(t, 1.0, svc.Confidence([]entities.ScoredProduct{{Score: 150}}))
	assert.Equal(t, 1.0, svc.Confidence([]entities.ScoredProduct{{Score: 100}}))
	assert.Equal(t, 0.8, svc.Confidence([]entities.ScoredProduct{{Score: 80}}))
	assert.Equal(t, 0.3, svc.Confidence([]entities.ScoredProduct{{Score: 30}}))
}

func TestCategories_DedupedFirstAppearance(t *testing.T) {
	svc := NewSearchRankingService()

	results := []entities.ScoredProduct{
		{Product: &entities.Product{Category: "Pain Relief"}},
		{Product: &entities.Product{Category: "Allergy"}},
		{Product: &entities.Product{Category: "Pain Relief"}},
		{Product: &entities.Product{Category: ""}},
	}

	assert.Equal(t, []string{"Pain Relief", "Allergy"}, svc.Categories(results))
}
