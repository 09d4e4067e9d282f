package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
	"github.com/kishore28kumar/pulss/internal/domain/repositories"
	"github.com/kishore28kumar/pulss/internal/infrastructure/clients/postgres"
	apperrors "github.com/kishore28kumar/pulss/pkg/errors"
)

// SearchAnalyticsAdapter implements SearchAnalyticsRepository over Postgres
type SearchAnalyticsAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSearchAnalyticsAdapter creates a new search analytics adapter
func NewSearchAnalyticsAdapter(client *postgres.Client) repositories.SearchAnalyticsRepository {
	return &SearchAnalyticsAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// LogEvent stores a single search event
func (a *SearchAnalyticsAdapter) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	record := goqu.Record{
		"id":               event.ID,
		"tenant_id":        event.TenantID,
		"query":            event.Query,
		"normalized_query": event.NormalizedQuery,
		"search_type":      sql.NullString{String: string(event.SearchType), Valid: event.SearchType != ""},
		"confidence":       event.Confidence,
		"result_count":     event.ResultCount,
		"latency_ms":       event.LatencyMs,
		"degraded":         event.Degraded,
		"session_id":       sql.NullString{String: event.SessionID, Valid: event.SessionID != ""},
		"created_at":       event.CreatedAt,
	}

	query, args, err := a.db.Insert("search_events").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to log search event", err)
	}

	return nil
}

// GetZeroResultQueries returns recent queries that produced no results,
// most recent first.
func (a *SearchAnalyticsAdapter) GetZeroResultQueries(ctx context.Context, tenantID string, limit int) ([]*entities.SearchEvent, error) {
	query, args, err := a.db.Select(
		"id", "tenant_id", "query", "normalized_query", "search_type",
		"confidence", "result_count", "latency_ms", "degraded",
		"session_id", "created_at",
	).From("search_events").
		Where(goqu.Ex{"tenant_id": tenantID, "result_count": 0}).
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get zero result queries", err)
	}
	defer rows.Close()

	events := []*entities.SearchEvent{}
	for rows.Next() {
		event := &entities.SearchEvent{}
		var searchType, sessionID sql.NullString

		err := rows.Scan(
			&event.ID,
			&event.TenantID,
			&event.Query,
			&event.NormalizedQuery,
			&searchType,
			&event.Confidence,
			&event.ResultCount,
			&event.LatencyMs,
			&event.Degraded,
			&sessionID,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan search event", err)
		}

		event.SearchType = entities.SearchType(searchType.String)
		event.SessionID = sessionID.String

		events = append(events, event)
	}

	return events, nil
}
