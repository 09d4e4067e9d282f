package trending

import (
	"context"
	"fmt"

	"github.com/kishore28kumar/pulss/internal/domain/providers"
	redisclient "github.com/kishore28kumar/pulss/internal/infrastructure/clients/redis"
)

const trendingKeyPrefix = "search:trending:"

// RedisAdapter implements TrendingProvider over a Redis sorted set scored
// by search volume. The trending job maintains the set; this adapter only
// reads it.
type RedisAdapter struct {
	client *redisclient.Client
}

// NewRedisAdapter creates a new Redis trending adapter
func NewRedisAdapter(client *redisclient.Client) providers.TrendingProvider {
	return &RedisAdapter{
		client: client,
	}
}

// FetchTrending returns up to limit trending terms for a tenant, highest
// volume first.
func (a *RedisAdapter) FetchTrending(ctx context.Context, tenantID string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	key := trendingKeyPrefix + tenantID
	terms, err := a.client.Client().ZRevRange(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending terms for %s: %w", tenantID, err)
	}
	return terms, nil
}
