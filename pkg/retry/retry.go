package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// Config holds retry configuration
type Config struct {
	// Retries is the number of attempts made after the first one
	Retries       int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// Sleeper waits for d or until ctx is done
type Sleeper func(ctx context.Context, d time.Duration) error

// DefaultConfig returns the client defaults: 3 retries starting at 1s, doubling
func DefaultConfig() Config {
	return Config{
		Retries:       3,
		InitialDelay:  time.Second,
		BackoffFactor: 2.0,
	}
}

// ErrExhausted is wrapped by the error returned from Do when every attempt failed
var ErrExhausted = errors.New("max retry attempts exceeded")

// Exhausted is returned by Do when every attempt failed with a retryable error
type Exhausted struct {
	Attempts int
	Last     error
}

// Error implements the error interface
func (e *Exhausted) Error() string {
	return fmt.Sprintf("%v after %d attempts: %v", ErrExhausted, e.Attempts, e.Last)
}

// Unwrap exposes both ErrExhausted and the last attempt's error to errors.Is and errors.As
func (e *Exhausted) Unwrap() []error {
	return []error{ErrExhausted, e.Last}
}

// Policy drives Do
type Policy struct {
	Config Config

	// Retryable decides whether err deserves another attempt; nil retries everything
	Retryable func(err error) bool

	// Sleep defaults to SleepContext
	Sleep Sleeper

	// OnRetry is called before each wait
	OnRetry func(attempt int, err error, nextDelay time.Duration)
}

// Delay returns the wait before retry number attempt (0-based): InitialDelay × factor^attempt
func (c Config) Delay(attempt int) time.Duration {
	factor := c.BackoffFactor
	if factor <= 0 {
		factor = 2.0
	}
	delay := time.Duration(float64(c.InitialDelay) * math.Pow(factor, float64(attempt)))
	if c.MaxDelay > 0 && delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

// SleepContext waits for d unless ctx finishes first
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Do executes fn with exponential backoff retry logic. fn receives the
// 0-based attempt number. A non-retryable error is returned as is; when all
// attempts fail an *Exhausted wrapping the last error is returned. If ctx
// finishes while waiting, the last error is returned as is.
func Do(ctx context.Context, p Policy, fn func(attempt int) error) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}
	retries := p.Config.Retries
	if retries < 0 {
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt == retries {
			break
		}

		delay := p.Config.Delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, delay)
		}
		if err := sleep(ctx, delay); err != nil {
			return lastErr
		}
	}

	return &Exhausted{Attempts: retries + 1, Last: lastErr}
}
