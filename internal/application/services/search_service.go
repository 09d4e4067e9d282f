package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
	"github.com/kishore28kumar/pulss/internal/domain/providers"
	"github.com/kishore28kumar/pulss/internal/evaluation"
	"github.com/kishore28kumar/pulss/internal/infrastructure/observability"
	"github.com/kishore28kumar/pulss/pkg/config"
)

// NoticeFunc receives recoverable, user-visible notices (catalog outage,
// voice failures). It must not block.
type NoticeFunc func(message string)

// NormalizeQuery returns the trimmed, case-folded form of user input.
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// SearchService runs the search pipeline for one tenant: normalize the
// query, fetch the catalog snapshot, attempt a bounded intent analysis, and
// rank lexically. Every path terminates in a valid SearchResult; no failure
// escapes the search invocation boundary.
type SearchService struct {
	tenantID string
	business entities.BusinessType

	catalog    providers.CatalogProvider
	intent     providers.IntentProvider // nil when no inference collaborator is configured
	ranking    *SearchRankingService
	guardrails *evaluation.Guardrails
	analytics  *SearchAnalyticsService // nil disables event tracking
	notify     NoticeFunc

	intentTimeout time.Duration
}

// NewSearchService creates a search service for a tenant. The intent
// provider, analytics service, and notice callback are optional and wired
// through the setters below.
func NewSearchService(tenantID string, business entities.BusinessType, catalog providers.CatalogProvider, cfg *config.SearchConfig) *SearchService {
	timeout := cfg.IntentTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &SearchService{
		tenantID:      tenantID,
		business:      business,
		catalog:       catalog,
		ranking:       NewSearchRankingService(),
		guardrails:    evaluation.NewGuardrails(evaluation.GuardrailConfig{}),
		intentTimeout: timeout,
	}
}

// SetIntentProvider wires the optional inference collaborator.
func (s *SearchService) SetIntentProvider(intent providers.IntentProvider) {
	s.intent = intent
}

// SetAnalytics wires the optional search analytics service.
func (s *SearchService) SetAnalytics(analytics *SearchAnalyticsService) {
	s.analytics = analytics
}

// SetNotifier wires the recoverable-notice callback.
func (s *SearchService) SetNotifier(notify NoticeFunc) {
	s.notify = notify
}

// Search executes the full pipeline for one query. Empty and
// whitespace-only input yields the canonical empty result. A catalog
// failure yields the canonical empty result plus a notice. An inference
// failure silently downgrades to lexical-only ranking.
func (s *SearchService) Search(ctx context.Context, rawQuery string) *entities.SearchResult {
	start := time.Now()

	query := NormalizeQuery(rawQuery)
	if query == "" {
		return entities.EmptySearchResult()
	}

	ctx, span := observability.StartSpan(ctx, "search.query")
	defer span.End()

	products, err := s.catalog.FetchActiveProducts(ctx, s.tenantID)
	if err != nil {
		observability.RecordError(span, err)
		observability.LoggerFromContext(ctx).Warn().
			Str("tenant_id", s.tenantID).
			Err(err).
			Msg("catalog unavailable, returning empty result")
		s.sendNotice("Product catalog is temporarily unavailable. Please try again.")
		return entities.EmptySearchResult()
	}

	analysis := s.analyzeIntent(ctx, query)

	var keywords []string
	if analysis != nil {
		keywords = analysis.Keywords
	}

	scored := s.ranking.Rank(products, query, keywords)

	result := &entities.SearchResult{
		Products:    scored,
		Suggestions: []string{},
		Categories:  s.ranking.Categories(scored),
		Confidence:  s.ranking.Confidence(scored),
	}
	if analysis != nil {
		result.SearchType = analysis.SearchType
		result.Explanation = analysis.Explanation
		if len(analysis.Suggestions) > 0 {
			result.Suggestions = analysis.Suggestions
		}
	}

	latency := time.Since(start)
	s.recordMetrics(ctx, latency, analysis == nil, len(scored))

	if s.analytics != nil {
		event := &entities.SearchEvent{
			TenantID:        s.tenantID,
			Query:           rawQuery,
			NormalizedQuery: query,
			SearchType:      result.SearchType,
			Confidence:      result.Confidence,
			ResultCount:     len(scored),
			LatencyMs:       int(latency.Milliseconds()),
			Degraded:        analysis == nil,
		}
		s.analytics.TrackSearch(ctx, event)
	}

	return result
}

// analyzeIntent runs the bounded inference call. Timeout, transport error,
// and malformed output all collapse to "no analysis available".
func (s *SearchService) analyzeIntent(ctx context.Context, query string) *entities.IntentAnalysis {
	if s.intent == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.intentTimeout)
	defer cancel()

	analysis, err := s.intent.AnalyzeQuery(ctx, query, s.business)
	if err != nil {
		log.Debug().
			Str("tenant_id", s.tenantID).
			Str("query", query).
			Err(err).
			Msg("intent analysis unavailable, falling back to lexical ranking")
		return nil
	}
	if analysis == nil {
		return nil
	}

	s.guardrails.Sanitize(analysis)
	return analysis
}

func (s *SearchService) sendNotice(message string) {
	if s.notify != nil {
		s.notify(message)
	}
}

type searchMetrics struct {
	searchCount    metric.Int64Counter
	searchLatency  metric.Float64Histogram
	degradedCount  metric.Int64Counter
	zeroHitCounter metric.Int64Counter
}

var (
	searchMetricsOnce sync.Once
	searchMetricsInst *searchMetrics
)

func initSearchMetrics() {
	meter := otel.Meter("github.com/kishore28kumar/pulss/search")

	searchCount, err := meter.Int64Counter(
		"search.request.count",
		metric.WithDescription("Number of search pipeline invocations"),
	)
	if err != nil {
		return
	}
	searchLatency, err := meter.Float64Histogram(
		"search.request.duration",
		metric.WithDescription("Search pipeline duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	degradedCount, err := meter.Int64Counter(
		"search.degraded.count",
		metric.WithDescription("Number of searches served without intent analysis"),
	)
	if err != nil {
		return
	}
	zeroHitCounter, err := meter.Int64Counter(
		"search.zero_results.count",
		metric.WithDescription("Number of searches that returned no products"),
	)
	if err != nil {
		return
	}

	searchMetricsInst = &searchMetrics{
		searchCount:    searchCount,
		searchLatency:  searchLatency,
		degradedCount:  degradedCount,
		zeroHitCounter: zeroHitCounter,
	}
}

func (s *SearchService) recordMetrics(ctx context.Context, latency time.Duration, degraded bool, resultCount int) {
	searchMetricsOnce.Do(initSearchMetrics)
	if searchMetricsInst == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("tenant.id", s.tenantID))
	searchMetricsInst.searchCount.Add(ctx, 1, attrs)
	searchMetricsInst.searchLatency.Record(ctx, float64(latency.Milliseconds()), attrs)
	if degraded {
		searchMetricsInst.degradedCount.Add(ctx, 1, attrs)
	}
	if resultCount == 0 {
		searchMetricsInst.zeroHitCounter.Add(ctx, 1, attrs)
	}
}
