package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
	"github.com/kishore28kumar/pulss/internal/domain/providers"
	redisclient "github.com/kishore28kumar/pulss/internal/infrastructure/clients/redis"
)

// RedisEventBus implements EventBus using Redis pub/sub
type RedisEventBus struct {
	client      *redisclient.Client
	subscribers map[string][]chan *entities.SearchEvent
	pubsubs     map[string]*redis.PubSub
	mu          sync.RWMutex
	closed      bool
}

// NewRedisEventBus creates a new Redis-backed event bus
func NewRedisEventBus(client *redisclient.Client) providers.EventBus {
	return &RedisEventBus{
		client:      client,
		subscribers: make(map[string][]chan *entities.SearchEvent),
		pubsubs:     make(map[string]*redis.PubSub),
	}
}

// Publish sends a search event to the given channel
func (b *RedisEventBus) Publish(ctx context.Context, channel string, event *entities.SearchEvent) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return fmt.Errorf("event bus is closed")
	}
	b.mu.RUnlock()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal search event: %w", err)
	}

	if err := b.client.Client().Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to channel %s: %w", channel, err)
	}
	return nil
}

// Subscribe returns a channel that receives search events published to the
// given channel. The returned channel is closed when Unsubscribe or Close
// is called.
func (b *RedisEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.SearchEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("event bus is closed")
	}

	events := make(chan *entities.SearchEvent, 16)
	b.subscribers[channel] = append(b.subscribers[channel], events)

	// First subscriber on this channel starts the Redis subscription.
	if _, ok := b.pubsubs[channel]; !ok {
		pubsub := b.client.Client().Subscribe(ctx, channel)
		b.pubsubs[channel] = pubsub
		go b.receiveMessages(channel, pubsub)
	}

	return events, nil
}

// receiveMessages reads from the Redis subscription and broadcasts each
// event to every local subscriber of the channel.
func (b *RedisEventBus) receiveMessages(channel string, pubsub *redis.PubSub) {
	for msg := range pubsub.Channel() {
		var event entities.SearchEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Warn().
				Err(err).
				Str("channel", channel).
				Msg("Failed to unmarshal search event, skipping")
			continue
		}

		b.mu.RLock()
		subs := make([]chan *entities.SearchEvent, len(b.subscribers[channel]))
		copy(subs, b.subscribers[channel])
		b.mu.RUnlock()

		for _, sub := range subs {
			select {
			case sub <- &event:
			default:
				// Slow subscriber; drop rather than block the reader.
				log.Warn().
					Str("channel", channel).
					Msg("Subscriber channel full, dropping search event")
			}
		}
	}

	// Redis subscription closed; close all local subscribers.
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subscribers[channel] {
		close(sub)
	}
	delete(b.subscribers, channel)
	delete(b.pubsubs, channel)
}

// Unsubscribe closes the Redis subscription for a channel and all local
// subscriber channels attached to it.
func (b *RedisEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	pubsub, ok := b.pubsubs[channel]
	b.mu.Unlock()

	if !ok {
		return nil
	}

	// Closing the pubsub ends receiveMessages, which cleans up subscribers.
	if err := pubsub.Close(); err != nil {
		return fmt.Errorf("failed to unsubscribe from channel %s: %w", channel, err)
	}
	return nil
}

// Close shuts down the event bus and all subscriptions
func (b *RedisEventBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	pubsubs := make([]*redis.PubSub, 0, len(b.pubsubs))
	for _, pubsub := range b.pubsubs {
		pubsubs = append(pubsubs, pubsub)
	}
	b.mu.Unlock()

	var firstErr error
	for _, pubsub := range pubsubs {
		if err := pubsub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
