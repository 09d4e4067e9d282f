package providers

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for keys that have never been set.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the minimal persistence port used for the search-history
// collection. Each write is atomic at the store's granularity; no
// transactional discipline is needed.
type KeyValueStore interface {
	// Get retrieves the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
