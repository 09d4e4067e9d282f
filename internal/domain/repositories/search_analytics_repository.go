package repositories

import (
	"context"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

// SearchAnalyticsRepository persists search events for offline analysis.
type SearchAnalyticsRepository interface {
	// LogEvent stores a single search event
	LogEvent(ctx context.Context, event *entities.SearchEvent) error

	// GetZeroResultQueries returns recent queries that produced no results,
	// most recent first
	GetZeroResultQueries(ctx context.Context, tenantID string, limit int) ([]*entities.SearchEvent, error)
}
