package crm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowsBurst(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 5})
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}

	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestRateLimiter_ZeroConfigUsesDefaults(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{})

	assert.NoError(t, limiter.Wait(context.Background()))
}

func TestRateLimiter_BackoffHonoursContext(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 1})
	limiter.RecordRateLimitError(60)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_BackoffExpires(t *testing.T) {
	limiter := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 1})
	limiter.retryAt = time.Now().Add(10 * time.Millisecond)

	assert.NoError(t, limiter.Wait(context.Background()))
}
