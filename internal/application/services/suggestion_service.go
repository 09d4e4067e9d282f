package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
	"github.com/kishore28kumar/pulss/internal/domain/providers"
	"github.com/kishore28kumar/pulss/pkg/config"
)

const historyKeyPrefix = "search:history:"

// SuggestionService owns the capped, deduplicated recent-search history and
// merges it with externally supplied trending terms into one navigable
// suggestion list. The history is persisted through the key-value port; a
// missing key means an empty history.
//
// Invariants after any sequence of RecordSearch calls: length <= the
// configured limit, entries are reverse-chronological, and no two entries
// share a query string.
type SuggestionService struct {
	tenantID string
	store    providers.KeyValueStore
	trending providers.TrendingProvider // nil disables trending terms

	historyLimit        int
	historySuggestions  int
	trendingSuggestions int

	mu         sync.Mutex
	history    []entities.SearchHistoryEntry
	loaded     bool
	selection  int
	lastMerged []string

	now func() time.Time
}

// NewSuggestionService creates a suggestion service for a tenant.
func NewSuggestionService(tenantID string, store providers.KeyValueStore, trending providers.TrendingProvider, cfg *config.SearchConfig) *SuggestionService {
	historyLimit := cfg.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = 10
	}
	historySuggestions := cfg.HistorySuggestions
	if historySuggestions <= 0 {
		historySuggestions = 5
	}
	trendingSuggestions := cfg.TrendingSuggestions
	if trendingSuggestions <= 0 {
		trendingSuggestions = 5
	}
	return &SuggestionService{
		tenantID:            tenantID,
		store:               store,
		trending:            trending,
		historyLimit:        historyLimit,
		historySuggestions:  historySuggestions,
		trendingSuggestions: trendingSuggestions,
		selection:           -1,
		now:                 time.Now,
	}
}

func (s *SuggestionService) historyKey() string {
	return historyKeyPrefix + s.tenantID
}

// ensureLoaded lazily hydrates the history from the key-value store.
// Callers must hold s.mu.
func (s *SuggestionService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := s.store.Get(ctx, s.historyKey())
	if err != nil {
		if !errors.Is(err, providers.ErrKeyNotFound) {
			log.Warn().Str("tenant_id", s.tenantID).Err(err).Msg("failed to load search history, starting empty")
		}
		return
	}
	var history []entities.SearchHistoryEntry
	if err := json.Unmarshal(data, &history); err != nil {
		log.Warn().Str("tenant_id", s.tenantID).Err(err).Msg("corrupt search history, starting empty")
		return
	}
	s.history = history
}

// RecordSearch records a completed search. Empty query text is a no-op. Any
// existing entry with the identical query is removed before the new entry is
// prepended, and the history is truncated to the configured limit.
func (s *SuggestionService) RecordSearch(ctx context.Context, query string, resultCount int) {
	if strings.TrimSpace(query) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	kept := make([]entities.SearchHistoryEntry, 0, len(s.history)+1)
	kept = append(kept, entities.SearchHistoryEntry{
		Query:       query,
		Timestamp:   s.now(),
		ResultCount: resultCount,
	})
	for _, e := range s.history {
		if e.Query == query {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) > s.historyLimit {
		kept = kept[:s.historyLimit]
	}
	s.history = kept

	s.persist(ctx)
}

// persist writes the history back through the key-value port. Persistence
// failures are non-fatal; the in-memory history stays authoritative for the
// session. Callers must hold s.mu.
func (s *SuggestionService) persist(ctx context.Context) {
	data, err := json.Marshal(s.history)
	if err != nil {
		log.Warn().Str("tenant_id", s.tenantID).Err(err).Msg("failed to encode search history")
		return
	}
	if err := s.store.Set(ctx, s.historyKey(), data); err != nil {
		log.Warn().Str("tenant_id", s.tenantID).Err(err).Msg("failed to persist search history")
	}
}

// History returns a copy of the current history, most recent first.
func (s *SuggestionService) History(ctx context.Context) []entities.SearchHistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	out := make([]entities.SearchHistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// MergedSuggestions returns the navigable suggestion list: the most recent
// history queries followed by up to the configured number of trending
// terms, in that fixed order. Index 0..k-1 addresses history, k..k+m-1
// trending. The returned list becomes the target of selection navigation.
func (s *SuggestionService) MergedSuggestions(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	merged := make([]string, 0, s.historySuggestions+s.trendingSuggestions)
	for i, e := range s.history {
		if i >= s.historySuggestions {
			break
		}
		merged = append(merged, e.Query)
	}

	if s.trending != nil {
		terms, err := s.trending.FetchTrending(ctx, s.tenantID, s.trendingSuggestions)
		if err != nil {
			log.Debug().Str("tenant_id", s.tenantID).Err(err).Msg("trending terms unavailable")
		} else {
			merged = append(merged, terms...)
		}
	}

	s.lastMerged = merged
	if s.selection >= len(merged) {
		s.selection = len(merged) - 1
	}
	return merged
}

// MoveDown advances the selection index, clamping at the last suggestion.
func (s *SuggestionService) MoveDown() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selection < len(s.lastMerged)-1 {
		s.selection++
	}
	return s.selection
}

// MoveUp retreats the selection index, clamping at -1 (no selection).
func (s *SuggestionService) MoveUp() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selection > -1 {
		s.selection--
	}
	return s.selection
}

// Selected returns the currently selected suggestion, if any.
func (s *SuggestionService) Selected() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selection < 0 || s.selection >= len(s.lastMerged) {
		return "", false
	}
	return s.lastMerged[s.selection], true
}

// Selection returns the current selection index; -1 means no selection.
func (s *SuggestionService) Selection() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// ClearSelection resets the selection index to -1.
func (s *SuggestionService) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = -1
}
