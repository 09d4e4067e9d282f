package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

// fakeAnalyticsRepo captures logged events behind a mutex since TrackSearch
// writes from a background goroutine.
type fakeAnalyticsRepo struct {
	mu     sync.Mutex
	events []*entities.SearchEvent
	done   chan struct{}
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{done: make(chan struct{}, 8)}
}

func (f *fakeAnalyticsRepo) LogEvent(ctx context.Context, event *entities.SearchEvent) error {
	f.mu.Lock()
	f.events = append(f.events, event)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func (f *fakeAnalyticsRepo) GetZeroResultQueries(ctx context.Context, tenantID string, limit int) ([]*entities.SearchEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []*entities.SearchEvent{}
	for _, e := range f.events {
		if e.TenantID == tenantID && e.ResultCount == 0 {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeAnalyticsRepo) waitForEvent(t *testing.T) {
	t.Helper()
	select {
	case <-f.done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event to be logged")
	}
}

// fakeBus captures published events.
type fakeBus struct {
	mu       sync.Mutex
	channels []string
	events   []*entities.SearchEvent
	done     chan struct{}
}

func newFakeBus() *fakeBus {
	return &fakeBus{done: make(chan struct{}, 8)}
}

func (f *fakeBus) Publish(ctx context.Context, channel string, event *entities.SearchEvent) error {
	f.mu.Lock()
	f.channels = append(f.channels, channel)
	f.events = append(f.events, event)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func (f *fakeBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.SearchEvent, error) {
	return nil, nil
}

func (f *fakeBus) Unsubscribe(ctx context.Context, channel string) error { return nil }
func (f *fakeBus) Close() error                                          { return nil }

func TestTrackSearch_FillsIDAndTimestamp(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	svc := NewSearchAnalyticsService(repo, nil)

	svc.TrackSearch(context.Background(), &entities.SearchEvent{
		TenantID:        "tenant-1",
		Query:           "Paracetamol",
		NormalizedQuery: "paracetamol",
		ResultCount:     2,
	})
	repo.waitForEvent(t)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.events, 1)
	assert.NotEmpty(t, repo.events[0].ID)
	assert.False(t, repo.events[0].CreatedAt.IsZero())
}

func TestTrackSearch_PublishesOnTenantChannel(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	bus := newFakeBus()
	svc := NewSearchAnalyticsService(repo, bus)

	svc.TrackSearch(context.Background(), &entities.SearchEvent{
		TenantID: "tenant-1",
		Query:    "paracetamol",
	})
	repo.waitForEvent(t)
	select {
	case <-bus.done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for publish")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()
	require.Len(t, bus.channels, 1)
	assert.Equal(t, "search:tenant:tenant-1", bus.channels[0])
}

func TestTrackSearch_SurvivesCancelledRequestContext(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	svc := NewSearchAnalyticsService(repo, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The request context is already dead; tracking must still land.
	svc.TrackSearch(ctx, &entities.SearchEvent{TenantID: "tenant-1", Query: "x"})
	repo.waitForEvent(t)
}

func TestGetZeroResultQueries(t *testing.T) {
	repo := newFakeAnalyticsRepo()
	svc := NewSearchAnalyticsService(repo, nil)

	svc.TrackSearch(context.Background(), &entities.SearchEvent{TenantID: "tenant-1", Query: "hit", ResultCount: 3})
	repo.waitForEvent(t)
	svc.TrackSearch(context.Background(), &entities.SearchEvent{TenantID: "tenant-1", Query: "miss", ResultCount: 0})
	repo.waitForEvent(t)

	events, err := svc.GetZeroResultQueries(context.Background(), "tenant-1", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "miss", events[0].Query)
}
