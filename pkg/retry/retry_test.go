package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		MaxAttempts:     3,
		InitialDelay:    time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		BackoffFactor:   2.0,
		MaxTotalTimeout: time.Second,
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), "test", func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastConfig(), "test", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	sentinel := errors.New("permanent")
	calls := 0
	err := Do(context.Background(), fastConfig(), "test", func() error {
		calls++
		return sentinel
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, sentinel)
}

func TestDo_CancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, fastConfig(), "test", func() error {
		return errors.New("should not matter")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_TotalTimeoutBoundsRetries(t *testing.T) {
	cfg := Config{
		MaxAttempts:     100,
		InitialDelay:    20 * time.Millisecond,
		MaxDelay:        20 * time.Millisecond,
		BackoffFactor:   1.0,
		MaxTotalTimeout: 50 * time.Millisecond,
	}

	start := time.Now()
	err := Do(context.Background(), cfg, "test", func() error {
		return errors.New("always fails")
	})

	require.Error(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
