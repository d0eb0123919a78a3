package dentalapi

import (
	"context"
	"net/http"
	"time"

	"github.com/zatekoja/dentaldesk/internal/domain/providers"
	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
	"github.com/zatekoja/dentaldesk/pkg/retry"
)

// Option configures a Client at construction time
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTokenProvider sets where bearer tokens come from
func WithTokenProvider(tp providers.TokenProvider) Option {
	return func(c *Client) {
		c.tokens = tp
	}
}

// WithSleeper replaces the wait between retries
func WithSleeper(s retry.Sleeper) Option {
	return func(c *Client) {
		if s != nil {
			c.sleep = s
		}
	}
}

// WithMetrics records attempts, retries and failures
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithDefaultHeader adds a header sent on every request
func WithDefaultHeader(key, value string) Option {
	return func(c *Client) {
		c.headers.Set(key, value)
	}
}

// RequestOption overrides client defaults for a single call
type RequestOption func(*requestOptions)

type requestOptions struct {
	timeout time.Duration
	retries *int
	headers http.Header
}

// WithTimeout bounds each attempt of the call
func WithTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRetries sets how many times a retryable failure is retried
func WithRetries(n int) RequestOption {
	return func(o *requestOptions) {
		if n < 0 {
			n = 0
		}
		o.retries = &n
	}
}

// WithHeader sets a header for the call, overriding defaults and the Authorization header
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = make(http.Header)
		}
		o.headers.Set(key, value)
	}
}

type ctxKey string

const optionsKey ctxKey = "dentalapi.options"

// ContextWithOptions attaches per-call overrides to ctx, so callers going
// through a resource client can still tune timeout and retries.
func ContextWithOptions(ctx context.Context, opts ...RequestOption) context.Context {
	existing, _ := ctx.Value(optionsKey).([]RequestOption)
	merged := make([]RequestOption, 0, len(existing)+len(opts))
	merged = append(merged, existing...)
	merged = append(merged, opts...)
	return context.WithValue(ctx, optionsKey, merged)
}

func optionsFromContext(ctx context.Context) []RequestOption {
	opts, _ := ctx.Value(optionsKey).([]RequestOption)
	return opts
}
