package providers

import (
	"context"
)

// TrendingProvider exposes the externally maintained trending-term list.
// The terms are non-personalized and read-only to this subsystem; the
// process that computes them consumes SearchEvents off the event bus.
type TrendingProvider interface {
	FetchTrending(ctx context.Context, tenantID string, limit int) ([]string, error)
}
