package services

import (
	"sort"
	"strings"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

// Base scores per match field. The first matching rule wins; fields are
// never double counted. An exact name match adds exactNameBonus on top.
const (
	scoreName        = 100.0
	scoreBrand       = 80.0
	scoreDescription = 60.0
	scoreCategory    = 30.0
	exactNameBonus   = 50.0
)

// SearchRankingService scores every catalog product against a normalized
// query, optionally boosted by intent expansion keywords. It is stateless
// and safe for concurrent use.
type SearchRankingService struct{}

// NewSearchRankingService creates a new ranking service.
func NewSearchRankingService() *SearchRankingService {
	return &SearchRankingService{}
}

// Rank scores products against the normalized query and returns the
// survivors sorted by descending score. Ties keep the catalog iteration
// order, so equal-score results rank deterministically.
func (s *SearchRankingService) Rank(products []*entities.Product, query string, keywords []string) []entities.ScoredProduct {
	if query == "" {
		return nil
	}

	terms := expansionTerms(query, keywords)

	scored := make([]entities.ScoredProduct, 0, len(products))
	for _, p := range products {
		score, reason, ok := s.scoreProduct(p, query, terms)
		if !ok {
			continue
		}
		scored = append(scored, entities.ScoredProduct{
			Product:     p,
			Score:       score,
			MatchReason: reason,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// scoreProduct determines the single best match reason for a product.
// Precedence: name, brand, description, then category/tag/keyword overlap.
func (s *SearchRankingService) scoreProduct(p *entities.Product, query string, terms []string) (float64, entities.MatchReason, bool) {
	name := strings.ToLower(p.Name)
	if strings.Contains(name, query) {
		score := scoreName
		if name == query {
			score += exactNameBonus
		}
		return score, entities.MatchReasonName, true
	}

	if p.Brand != "" && strings.Contains(strings.ToLower(p.Brand), query) {
		return scoreBrand, entities.MatchReasonBrand, true
	}

	if p.Description != "" && strings.Contains(strings.ToLower(p.Description), query) {
		return scoreDescription, entities.MatchReasonDescription, true
	}

	if s.overlapsTerms(p, terms) {
		return scoreCategory, entities.MatchReasonCategory, true
	}

	return 0, "", false
}

// overlapsTerms reports whether the product's category, tags, or usage tags
// overlap with the query or any expansion keyword.
func (s *SearchRankingService) overlapsTerms(p *entities.Product, terms []string) bool {
	category := strings.ToLower(p.Category)
	for _, term := range terms {
		if category != "" && (strings.Contains(category, term) || strings.Contains(term, category)) {
			return true
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				return true
			}
		}
		for _, use := range p.Uses {
			if strings.Contains(strings.ToLower(use), term) {
				return true
			}
		}
	}
	return false
}

// Confidence derives the overall [0,1] confidence signal from a ranked
// result list: 0 for no results, saturating at 1.0 for name-level or
// better matches.
func (s *SearchRankingService) Confidence(results []entities.ScoredProduct) float64 {
	if len(results) == 0 {
		return 0
	}
	confidence := results[0].Score / scoreName
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// Categories returns the distinct categories represented in the results, in
// order of first appearance.
func (s *SearchRankingService) Categories(results []entities.ScoredProduct) []string {
	seen := make(map[string]struct{})
	categories := []string{}
	for _, r := range results {
		c := r.Product.Category
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		categories = append(categories, c)
	}
	return categories
}

// expansionTerms builds the deduplicated term list used for the
// category/tag overlap rule: the query itself plus any intent keywords.
func expansionTerms(query string, keywords []string) []string {
	seen := map[string]struct{}{query: {}}
	terms := []string{query}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		terms = append(terms, kw)
	}
	return terms
}
