package ratelimiter_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DONGWAN-LEE/vibe-gateway/internal/infrastructure/ratelimiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(maxRate, maxBurst int) *ratelimiter.RateLimiter {
	return ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: maxRate,
		MaxBurst:         maxBurst,
		CacheTTL:         time.Minute,
		SourceHeaderKey:  "X-Forwarded-For",
	})
}

func TestRateLimiter_BurstThenDeny(t *testing.T) {
	rl := newLimiter(1, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("client-a"), "request %d within burst", i)
	}
	assert.False(t, rl.Allow("client-a"), "burst exhausted")

	// Another source has its own bucket.
	assert.True(t, rl.Allow("client-b"))
}

func TestRateLimiter_Refill(t *testing.T) {
	rl := newLimiter(1000, 2)

	assert.True(t, rl.Allow("client-a"))
	assert.True(t, rl.Allow("client-a"))
	assert.False(t, rl.Allow("client-a"))

	require.Eventually(t, func() bool {
		return rl.Allow("client-a")
	}, time.Second, 5*time.Millisecond, "bucket refills over time")
}

func TestRateLimiter_SustainedRequestsAboveLimit(t *testing.T) {
	// One token per 10ms; the client polls every 5ms, twice the limit.
	rl := newLimiter(100, 1)

	require.True(t, rl.Allow("client-a"))

	allowed := 0
	const attempts = 60
	for i := 0; i < attempts; i++ {
		if rl.Allow("client-a") {
			allowed++
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Each poll accrues only half a token, so the accrual must carry across
	// requests. ~300ms permits ~30 grants; starvation would yield zero.
	assert.Greater(t, allowed, attempts/4, "client above the limit still gets the configured rate")
	assert.Less(t, allowed, attempts, "client above the limit is still throttled")
}

func TestRateLimiter_Remaining(t *testing.T) {
	rl := newLimiter(1, 5)

	assert.Equal(t, 5, rl.Remaining("client-a"))
	rl.Allow("client-a")
	assert.Equal(t, 4, rl.Remaining("client-a"))
}

func TestRateLimiter_GetSourceKey(t *testing.T) {
	rl := newLimiter(1, 1)

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", rl.GetSourceKey(r))

	r = httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.1:51234"
	assert.Equal(t, "192.0.2.1", rl.GetSourceKey(r))
}
