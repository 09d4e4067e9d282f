package providers

import (
	"context"
	"errors"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

// ErrIntentUnavailable is returned when the inference collaborator cannot
// produce an analysis: timeout, transport failure, or a malformed payload.
// Callers treat all three identically and fall back to lexical-only ranking.
var ErrIntentUnavailable = errors.New("intent analysis unavailable")

// IntentProvider is the inference collaborator that classifies a query and
// proposes expansion keywords. Implementations must respect ctx deadlines;
// callers always impose a timeout.
type IntentProvider interface {
	AnalyzeQuery(ctx context.Context, query string, business entities.BusinessType) (*entities.IntentAnalysis, error)
}
