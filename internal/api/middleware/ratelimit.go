package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zatekoja/dentaldesk/internal/domain/providers"
	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
)

// RateLimit allows limit requests per caller per fixed window and answers
// 429 with Retry-After beyond that. Callers are keyed by token subject, or
// by client IP when unauthenticated. Counters live in counters when given,
// so several instances share them, and in process memory otherwise.
func RateLimit(counters providers.CacheProvider, limit int, window time.Duration, now func() time.Time) gin.HandlerFunc {
	if now == nil {
		now = time.Now
	}

	var limiter rateLimiter = newLocalRateLimiter(now)
	if counters != nil {
		limiter = &cacheRateLimiter{cache: counters, now: now}
	}

	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		key := "ratelimit:ip:" + c.ClientIP()
		if subject := c.GetString(SubjectKey); subject != "" {
			key = "ratelimit:sub:" + subject
		}

		allowed, retryAfter := limiter.allow(c.Request.Context(), key, limit, window)
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(max(1, int(retryAfter.Round(time.Second).Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "rate limit exceeded",
				"code":    "RATE_LIMITED",
			})
			return
		}

		c.Next()
	}
}

type rateLimiter interface {
	allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration)
}

type rateLimitState struct {
	Count   int       `json:"count"`
	ResetAt time.Time `json:"resetAt"`
}

type cacheRateLimiter struct {
	cache providers.CacheProvider
	now   func() time.Time
}

// allow is a read-modify-write on the shared counter; concurrent requests
// may briefly overshoot the limit. Cache failures let the request through.
func (l *cacheRateLimiter) allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration) {
	now := l.now()

	state := rateLimitState{}
	if data, err := l.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}
	if state.ResetAt.IsZero() || !now.Before(state.ResetAt) {
		state = rateLimitState{ResetAt: now.Add(window)}
	}

	if state.Count >= limit {
		return false, state.ResetAt.Sub(now)
	}

	state.Count++
	data, _ := json.Marshal(state)
	if err := l.cache.Set(ctx, key, data, state.ResetAt.Sub(now)); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("key", key).Msg("Failed to store rate limit state")
	}
	return true, 0
}

type localRateLimiter struct {
	mu        sync.Mutex
	now       func() time.Time
	states    map[string]*rateLimitState
	nextSweep time.Time
}

func newLocalRateLimiter(now func() time.Time) *localRateLimiter {
	return &localRateLimiter{
		now:    now,
		states: make(map[string]*rateLimitState),
	}
}

func (l *localRateLimiter) allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if !now.Before(l.nextSweep) {
		l.evictExpired(now)
		l.nextSweep = now.Add(window)
	}

	state, ok := l.states[key]
	if !ok || !now.Before(state.ResetAt) {
		state = &rateLimitState{ResetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.Count >= limit {
		return false, state.ResetAt.Sub(now)
	}

	state.Count++
	return true, 0
}

// evictExpired drops callers whose window has closed; callers must hold mu
func (l *localRateLimiter) evictExpired(now time.Time) {
	for key, state := range l.states {
		if !now.Before(state.ResetAt) {
			delete(l.states, key)
		}
	}
}
