package providers

import (
	"context"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// search events. The trending job and other storefront subsystems consume
// these; the search engine only publishes.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.SearchEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.SearchEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelSearches is the channel carrying every completed search
	EventChannelSearches = "search:completed"

	// EventChannelTenantPrefix is the prefix for tenant-specific channels
	EventChannelTenantPrefix = "search:tenant:"
)

// GetTenantChannel returns the channel name for a specific tenant.
func GetTenantChannel(tenantID string) string {
	return EventChannelTenantPrefix + tenantID
}
