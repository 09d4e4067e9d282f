package entities

import "time"

// SearchHistoryEntry records one completed search with a non-empty query.
// Entries are never mutated after creation, only evicted.
type SearchHistoryEntry struct {
	Query       string    `json:"query"`
	Timestamp   time.Time `json:"timestamp"`
	ResultCount int       `json:"result_count"`
}
