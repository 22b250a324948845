package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/time/rate"

	app_errors "ragline/backend/internal/errors"
)

// RetryConfig configures the retry behavior for generation calls.
type RetryConfig struct {
	MaxRetries    int           // retry attempts after the first call
	BaseDelay     time.Duration // initial backoff interval, doubled per retry
	MaxDelay      time.Duration // backoff cap
	ThrottleFloor time.Duration // minimum delay after a throttling error
}

// DefaultRetryConfig returns the production retry policy.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		BaseDelay:     time.Second,
		MaxDelay:      30 * time.Second,
		ThrottleFloor: 3 * time.Second,
	}
}

// probeQuery is the cheapest possible request used for availability checks.
const probeQuery = "ping"

// Client wraps a Provider with rate limiting, retry-with-backoff, and error
// normalization. One Client instance is shared process-wide so that the
// minimum inter-request spacing holds across concurrent requests; the
// limiter is the only shared mutable state and is safe for concurrent use.
type Client struct {
	provider Provider
	limiter  *rate.Limiter
	retry    RetryConfig
	logger   *slog.Logger

	// sleep is swapped out in tests to observe backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a generation client. interval is the minimum spacing
// between any two provider calls, probes included.
func NewClient(provider Provider, interval time.Duration, retry RetryConfig, logger *slog.Logger) *Client {
	return &Client{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		retry:    retry,
		logger:   logger,
		sleep:    sleepContext,
	}
}

// Generate performs one retrieve-and-generate call. Transient provider
// failures are retried with exponential backoff and jitter; throttling
// errors wait at least the configured floor. Once the retry budget is
// exhausted, or on the first non-retryable failure, the error is normalized
// to the application taxonomy and returned.
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	var lastErr error
	start := time.Now()

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		resp, err := c.provider.RetrieveAndGenerate(ctx, req)
		if err == nil {
			c.logger.Debug("generation succeeded",
				"model", req.ModelID,
				"attempts", attempt+1,
				"elapsed", time.Since(start),
			)
			return resp, nil
		}

		lastErr = err
		kind := Classify(err)

		if !kind.Retryable() {
			return nil, c.normalize(err, kind)
		}

		if attempt == c.retry.MaxRetries {
			break
		}

		delay := c.backoffDelay(attempt, kind)
		c.logger.Debug("retrying generation after error",
			"model", req.ModelID,
			"attempt", attempt+1,
			"delay", delay,
			"kind", kind.String(),
		)
		if err := c.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	c.logger.Warn("generation retries exhausted",
		"model", req.ModelID,
		"attempts", c.retry.MaxRetries+1,
		"elapsed", time.Since(start),
		"error", lastErr,
	)
	return nil, c.normalize(lastErr, Classify(lastErr))
}

// Probe issues a minimal one-token generation against modelID to validate
// its availability. The probe goes through the same limiter as real
// requests so availability checks cannot bypass the request spacing. The
// raw (classified, not normalized) error is returned so the caller can
// distinguish throttling from genuine unavailability.
func (c *Client) Probe(ctx context.Context, modelID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	_, err := c.provider.RetrieveAndGenerate(ctx, &GenerateRequest{
		ModelID:   modelID,
		Query:     probeQuery,
		MaxTokens: 1,
	})
	return err
}

// backoffDelay computes the delay before the next retry: exponential from
// the base delay with ±25% jitter, capped, and never below the throttle
// floor for throttling-class errors.
func (c *Client) backoffDelay(attempt int, kind ErrorKind) time.Duration {
	delay := c.retry.BaseDelay << attempt
	if delay > c.retry.MaxDelay {
		delay = c.retry.MaxDelay
	}

	// ±25% jitter so synchronized clients do not retry in lockstep.
	jitter := 0.75 + rand.Float64()*0.5
	delay = time.Duration(float64(delay) * jitter)

	if kind == KindThrottled && delay < c.retry.ThrottleFloor {
		delay = c.retry.ThrottleFloor
	}
	return delay
}

// Classify extracts the error kind from a provider failure. Non-provider
// errors (context cancellation, unexpected transport problems) classify as
// unknown.
func Classify(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindUnknown
}

// normalize maps a classified provider failure to the application taxonomy
// with a safe, stable message. The original error is wrapped for
// server-side logs but its text is never what the caller displays.
func (c *Client) normalize(err error, kind ErrorKind) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var sentinel error
	switch kind {
	case KindValidation:
		sentinel = app_errors.ErrValidation
	case KindNotFound:
		sentinel = app_errors.ErrKnowledgeBaseNotFound
	case KindAccessDenied:
		sentinel = app_errors.ErrAuthorization
	case KindThrottled:
		sentinel = app_errors.ErrRateLimited
	case KindQuotaExceeded:
		sentinel = app_errors.ErrQuotaExceeded
	case KindServiceUnavailable, KindConflict, KindTimeout, KindBusy:
		sentinel = app_errors.ErrServiceBusy
	case KindInternal, KindUnknown:
		sentinel = app_errors.ErrInternal
	default:
		sentinel = app_errors.ErrInternal
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
