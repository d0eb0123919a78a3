package dentalapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/zatekoja/dentaldesk/internal/domain/providers"
	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
	"github.com/zatekoja/dentaldesk/pkg/config"
	apierrors "github.com/zatekoja/dentaldesk/pkg/errors"
	"github.com/zatekoja/dentaldesk/pkg/retry"
)

// RequestIDHeader carries one ID per logical call, shared by all its attempts
const RequestIDHeader = "X-Request-ID"

// Config holds transport settings
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	Retries       int
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration
}

// DefaultConfig mirrors the backend defaults: 10s timeout plus retry.DefaultConfig
func DefaultConfig() Config {
	r := retry.DefaultConfig()
	return Config{
		BaseURL:       config.DefaultBaseURL,
		Timeout:       10 * time.Second,
		Retries:       r.Retries,
		RetryDelay:    r.InitialDelay,
		MaxRetryDelay: r.MaxDelay,
	}
}

// Client executes JSON requests against the dental backend with per-attempt
// timeout, bounded exponential-backoff retry and bearer-token injection.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     providers.TokenProvider
	headers    http.Header
	timeout    time.Duration
	retry      retry.Config
	sleep      retry.Sleeper
	metrics    *observability.Metrics
}

// NewClient creates a new dental API client
func NewClient(cfg Config, opts ...Option) *Client {
	defaults := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{},
		headers: http.Header{
			"Content-Type": []string{"application/json"},
			"Accept":       []string{"application/json"},
		},
		timeout: cfg.Timeout,
		retry: retry.Config{
			Retries:       cfg.Retries,
			InitialDelay:  cfg.RetryDelay,
			MaxDelay:      cfg.MaxRetryDelay,
			BackoffFactor: retry.DefaultConfig().BackoffFactor,
		},
		sleep: retry.SleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// NewClientFromConfig creates a client from the application configuration
func NewClientFromConfig(cfg *config.APIConfig, opts ...Option) *Client {
	return NewClient(Config{
		BaseURL:       cfg.BaseURL,
		Timeout:       cfg.Timeout,
		Retries:       cfg.RetryAttempts,
		RetryDelay:    cfg.RetryDelay,
		MaxRetryDelay: cfg.MaxRetryDelay,
	}, opts...)
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the response into out
func (c *Client) Get(ctx context.Context, path string, out interface{}, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a POST with in as JSON body and decodes the response into out
func (c *Client) Post(ctx context.Context, path string, in, out interface{}, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, in, out, opts...)
}

// Put issues a PUT with in as JSON body and decodes the response into out
func (c *Client) Put(ctx context.Context, path string, in, out interface{}, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, in, out, opts...)
}

// Delete issues a DELETE; out may be nil when no body is expected
func (c *Client) Delete(ctx context.Context, path string, out interface{}, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// Do performs one logical call. The returned error is nil, a *ValidationError,
// an *APIError, or a *NetworkError (see pkg/errors).
func (c *Client) Do(ctx context.Context, method, path string, in, out interface{}, opts ...RequestOption) error {
	ro := c.requestOptions(ctx, opts)

	var body []byte
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request body: %w", method, path, err)
		}
		body = encoded
	}

	ctx, span := observability.StartSpan(ctx, fmt.Sprintf("%s %s", method, path))
	defer span.End()

	requestID := uuid.NewString()
	ctx = observability.WithRequestID(ctx, requestID)
	observability.SetSpanAttributes(span,
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.String("http.request_id", requestID),
	)

	headers := c.buildHeaders(ctx, ro, requestID)
	endpoint := c.baseURL + path
	logger := observability.LoggerFromContext(ctx)

	policy := retry.Policy{
		Config: c.retry,
		Retryable: func(err error) bool {
			return ctx.Err() == nil && apierrors.IsRetryable(err)
		},
		Sleep: c.sleep,
		OnRetry: func(attempt int, err error, nextDelay time.Duration) {
			observability.RecordRetry(ctx, c.metrics, method, path)
			logger.Warn().
				Err(err).
				Str("method", method).
				Str("path", path).
				Int("attempt", attempt+1).
				Dur("next_delay", nextDelay).
				Msg("Retrying dental API request")
		},
	}
	if ro.retries != nil {
		policy.Config.Retries = *ro.retries
	}

	err := retry.Do(ctx, policy, func(attempt int) error {
		return c.attempt(ctx, method, endpoint, path, headers, body, ro.timeout, out)
	})
	if err == nil {
		return nil
	}

	err = c.finalError(ctx, err)

	kind := apierrors.KindOf(err)
	observability.RecordFailure(ctx, c.metrics, method, path, string(kind))
	observability.RecordError(span, err)
	span.SetStatus(codes.Error, string(kind))

	return err
}

// finalError maps what the retry loop returned onto the taxonomy
func (c *Client) finalError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		var netErr *apierrors.NetworkError
		if errors.As(err, &netErr) && (netErr.Canceled || netErr.Timeout) {
			return err
		}
		return abortError(ctxErr)
	}

	var exhausted *retry.Exhausted
	if errors.As(err, &exhausted) {
		return apierrors.NewNetworkError("max retries exceeded", exhausted.Last)
	}

	return err
}

func (c *Client) attempt(ctx context.Context, method, endpoint, path string, headers http.Header, body []byte, timeout time.Duration, out interface{}) error {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header = headers.Clone()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.RecordRequestMetric(ctx, c.metrics, method, path, 0, time.Since(start))
		return transportError(ctx, attemptCtx, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	observability.RecordRequestMetric(ctx, c.metrics, method, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return transportError(ctx, attemptCtx, err)
	}

	return interpretResponse(resp.StatusCode, resp.Header.Get("Content-Type"), payload, out)
}

func (c *Client) requestOptions(ctx context.Context, opts []RequestOption) requestOptions {
	ro := requestOptions{timeout: c.timeout}
	for _, opt := range optionsFromContext(ctx) {
		opt(&ro)
	}
	for _, opt := range opts {
		opt(&ro)
	}
	return ro
}

// buildHeaders merges defaults, the bearer token and per-call headers, in that order
func (c *Client) buildHeaders(ctx context.Context, ro requestOptions, requestID string) http.Header {
	headers := c.headers.Clone()
	headers.Set(RequestIDHeader, requestID)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Msg("Failed to read access token, sending request unauthenticated")
		} else if token != "" {
			headers.Set("Authorization", "Bearer "+token)
		}
	}

	for key, values := range ro.headers {
		headers[key] = append([]string(nil), values...)
	}

	return headers
}

// transportError classifies a failure that produced no usable response
func transportError(parent, attemptCtx context.Context, err error) error {
	if parent.Err() != nil {
		return abortError(parent.Err())
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(err)
	}
	return apierrors.NewNetworkError("request failed", err)
}

// abortError classifies a finished caller context: a caller deadline is a
// timeout, anything else is a cancellation.
func abortError(ctxErr error) error {
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(ctxErr)
	}
	return apierrors.NewCanceledError(ctxErr)
}
