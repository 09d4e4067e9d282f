package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
	"github.com/kishore28kumar/pulss/internal/domain/providers"
	"github.com/kishore28kumar/pulss/internal/domain/repositories"
)

// SearchAnalyticsService logs completed searches for offline analysis and
// publishes them on the event bus for the trending-term job. Tracking is
// fire-and-forget: it never blocks or fails a search.
type SearchAnalyticsService struct {
	repo repositories.SearchAnalyticsRepository
	bus  providers.EventBus // nil disables publishing
}

// NewSearchAnalyticsService creates a new analytics service.
func NewSearchAnalyticsService(repo repositories.SearchAnalyticsRepository, bus providers.EventBus) *SearchAnalyticsService {
	return &SearchAnalyticsService{repo: repo, bus: bus}
}

// TrackSearch records a search event in the background. The event's ID and
// timestamp are filled in if absent.
func (s *SearchAnalyticsService) TrackSearch(_ context.Context, event *entities.SearchEvent) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	// Use a fresh context since the request context might be cancelled
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if s.repo != nil {
			if err := s.repo.LogEvent(bgCtx, event); err != nil {
				log.Warn().Str("event_id", event.ID).Err(err).Msg("failed to log search event")
			}
		}

		if s.bus != nil {
			channel := providers.GetTenantChannel(event.TenantID)
			if err := s.bus.Publish(bgCtx, channel, event); err != nil {
				log.Warn().Str("event_id", event.ID).Err(err).Msg("failed to publish search event")
			}
		}
	}()
}

// GetZeroResultQueries returns recent queries with no results, for
// merchandisers chasing catalog gaps.
func (s *SearchAnalyticsService) GetZeroResultQueries(ctx context.Context, tenantID string, limit int) ([]*entities.SearchEvent, error) {
	return s.repo.GetZeroResultQueries(ctx, tenantID, limit)
}
