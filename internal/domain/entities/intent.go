package entities

// SearchType classifies what kind of thing a query is asking for.
type SearchType string

const (
	SearchTypeProduct   SearchType = "product"   // e.g., "paracetamol 500mg"
	SearchTypeSymptom   SearchType = "symptom"   // e.g., "headache", "sore throat"
	SearchTypeCondition SearchType = "condition" // e.g., "diabetes", "hypertension"
	SearchTypeCategory  SearchType = "category"  // e.g., "pain relief", "dairy"
)

// ValidSearchTypes returns all valid search type values.
func ValidSearchTypes() []SearchType {
	return []SearchType{SearchTypeProduct, SearchTypeSymptom, SearchTypeCondition, SearchTypeCategory}
}

// IsValid checks if the search type is one of the defined constants.
func (s SearchType) IsValid() bool {
	switch s {
	case SearchTypeProduct, SearchTypeSymptom, SearchTypeCondition, SearchTypeCategory:
		return true
	}
	return false
}

// BusinessType is the storefront vertical. It only biases the vocabulary the
// inference collaborator uses for examples; it never filters results.
type BusinessType string

const (
	BusinessTypePharmacy BusinessType = "pharmacy"
	BusinessTypeGrocery  BusinessType = "grocery"
	BusinessTypeGeneral  BusinessType = "general"
)

// IsValid checks if the business type is one of the defined constants.
func (b BusinessType) IsValid() bool {
	switch b {
	case BusinessTypePharmacy, BusinessTypeGrocery, BusinessTypeGeneral:
		return true
	}
	return false
}

// IntentAnalysis is the AI-assisted interpretation of a query. Absence of an
// analysis is an expected state, not an error: the lexical path works
// without it.
type IntentAnalysis struct {
	SearchType  SearchType `json:"search_type"`
	Keywords    []string   `json:"keywords"`    // expansion keywords, ordered
	Suggestions []string   `json:"suggestions"` // follow-up queries, ordered
	Explanation string     `json:"explanation,omitempty"`
}
