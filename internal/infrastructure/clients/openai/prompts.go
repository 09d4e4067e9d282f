package openai

import (
	"encoding/json"
	"fmt"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

const intentSystemPrompt = `You are a search assistant for a multi-tenant online storefront. Classify the shopper's query and propose expansion keywords. Return ONLY valid JSON with this schema:
{
  "search_type": string (one of: product, symptom, condition, category),
  "keywords": string[] (1-8 lowercase terms to match against product names, tags and usage labels),
  "suggestions": string[] (1-5 follow-up queries the shopper might try next),
  "explanation": string (one short, plain-language sentence on how the query was read)
}
All keywords must be lowercase. Keywords expand recall only; never invent product names. Keep language simple and non-alarmist. Do not include medical advice or diagnosis.`

// businessContext biases the example vocabulary the model reasons with. It
// never filters results.
func businessContext(business entities.BusinessType) string {
	switch business {
	case entities.BusinessTypePharmacy:
		return `The storefront is a pharmacy. Example: "headache" is a symptom; useful keywords would be "paracetamol", "ibuprofen", "pain relief".`
	case entities.BusinessTypeGrocery:
		return `The storefront is a grocery store. Example: "breakfast" is a category; useful keywords would be "cereal", "oats", "bread", "milk".`
	default:
		return `The storefront is a general retail store. Example: "rainy season" is a category-style query; useful keywords would be "umbrella", "raincoat", "boots".`
	}
}

func buildIntentUserPrompt(query string, business entities.BusinessType) string {
	return fmt.Sprintf("%s\nShopper query: %s\n", businessContext(business), query)
}

// intentPayload mirrors the JSON schema the model is instructed to return.
type intentPayload struct {
	SearchType  string   `json:"search_type"`
	Keywords    []string `json:"keywords"`
	Suggestions []string `json:"suggestions"`
	Explanation string   `json:"explanation"`
}

func parseIntentPayload(data []byte) (*entities.IntentAnalysis, error) {
	var payload intentPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse intent payload: %w", err)
	}
	return &entities.IntentAnalysis{
		SearchType:  entities.SearchType(payload.SearchType),
		Keywords:    payload.Keywords,
		Suggestions: payload.Suggestions,
		Explanation: payload.Explanation,
	}, nil
}
