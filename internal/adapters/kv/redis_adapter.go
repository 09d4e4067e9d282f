package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kishore28kumar/pulss/internal/domain/providers"
	redisclient "github.com/kishore28kumar/pulss/internal/infrastructure/clients/redis"
)

// RedisAdapter implements the KeyValueStore interface using Redis. Unlike a
// cache, values are persistent: no expiration is set.
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis key-value adapter
func NewRedisAdapter(client *redisclient.Client) providers.KeyValueStore {
	return &RedisAdapter{
		client: client,
	}
}

// Get retrieves the value for key, or providers.ErrKeyNotFound
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := a.client.Client().Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, providers.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return result, nil
}

// Set stores value under key, replacing any previous value
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte) error {
	if err := a.client.Client().Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}
