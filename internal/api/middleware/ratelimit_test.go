package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/dentaldesk/internal/domain/providers"
)

type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	ttls    map[string]time.Duration
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return v, nil
}

func (c *mapCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func TestRateLimit(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		name     string
		counters func() providers.CacheProvider
	}{
		{name: "local", counters: func() providers.CacheProvider { return nil }},
		{name: "shared", counters: func() providers.CacheProvider { return newMapCache() }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			now := start
			handler := RateLimit(tc.counters(), 2, time.Minute, func() time.Time { return now })

			assert.Equal(t, http.StatusOK, serve(t, handler, nil).Code)
			now = now.Add(10 * time.Second)
			assert.Equal(t, http.StatusOK, serve(t, handler, nil).Code)

			rec := serve(t, handler, nil)
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
			assert.Equal(t, "50", rec.Header().Get("Retry-After"))
			assert.Contains(t, rec.Body.String(), "RATE_LIMITED")

			now = start.Add(time.Minute)
			assert.Equal(t, http.StatusOK, serve(t, handler, nil).Code)
		})
	}
}

func TestRateLimit_KeysBySubject(t *testing.T) {
	counters := newMapCache()
	limit := RateLimit(counters, 1, time.Minute, nil)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(SubjectKey, c.GetHeader("X-Subject"))
		c.Next()
	})
	router.Use(limit)
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(subject string) int {
		req, err := http.NewRequest(http.MethodGet, "/ping", nil)
		require.NoError(t, err)
		req.Header.Set("X-Subject", subject)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("front-desk"))
	assert.Equal(t, http.StatusTooManyRequests, call("front-desk"))
	assert.Equal(t, http.StatusOK, call("hygienist"))

	assert.Contains(t, counters.entries, "ratelimit:sub:front-desk")
	assert.Equal(t, time.Minute, counters.ttls["ratelimit:sub:hygienist"])
}

func TestRateLimit_Disabled(t *testing.T) {
	handler := RateLimit(nil, 0, time.Minute, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(t, handler, nil).Code)
	}
}

func TestLocalRateLimiter_EvictsExpiredWindows(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	limiter := newLocalRateLimiter(func() time.Time { return now })
	ctx := context.Background()

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		ok, _ := limiter.allow(ctx, "ratelimit:ip:"+ip, 5, time.Minute)
		require.True(t, ok)
	}
	assert.Len(t, limiter.states, 3)

	now = now.Add(time.Minute)
	ok, _ := limiter.allow(ctx, "ratelimit:ip:10.0.0.4", 5, time.Minute)
	require.True(t, ok)

	assert.Len(t, limiter.states, 1)
	assert.Contains(t, limiter.states, "ratelimit:ip:10.0.0.4")
}
