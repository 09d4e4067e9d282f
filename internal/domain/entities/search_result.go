package entities

// SearchResult is the payload handed to the result sink after every
// completed search. Every pipeline path terminates in a valid SearchResult.
type SearchResult struct {
	Products    []ScoredProduct `json:"products"`
	Suggestions []string        `json:"suggestions"`
	Categories  []string        `json:"categories"` // distinct, in order of first appearance
	Confidence  float64         `json:"confidence"` // [0,1], 0 when empty
	SearchType  SearchType      `json:"search_type,omitempty"`
	Explanation string          `json:"explanation,omitempty"`
}

// EmptySearchResult returns the canonical result for empty or
// whitespace-only queries and for catalog failures.
func EmptySearchResult() *SearchResult {
	return &SearchResult{
		Products:    []ScoredProduct{},
		Suggestions: []string{},
		Categories:  []string{},
		Confidence:  0,
	}
}
