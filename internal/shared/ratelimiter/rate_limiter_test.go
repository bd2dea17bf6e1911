package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_BurstThenWait(t *testing.T) {
	rl := NewRateLimiter(2, 100*time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	assert.NoError(t, rl.Wait(ctx))
	assert.NoError(t, rl.Wait(ctx))
	assert.Less(t, time.Since(start), 40*time.Millisecond, "burst is immediate")

	assert.NoError(t, rl.Wait(ctx))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond, "third call waits")
}

func TestRateLimiter_ContextCanceled(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	assert.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, rl.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		assert.NoError(t, rl.Wait(context.Background()))
	}
}
