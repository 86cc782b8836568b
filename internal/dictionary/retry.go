package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
)

var errRateLimited = errors.New("rate limited by upstream")

// RetryPolicy resolves a word through Upstream, retrying only while the
// upstream reports rate limiting. Transient failures are returned at once.
type RetryPolicy struct {
	upstream   Upstream
	maxRetries uint
	retryDelay time.Duration
}

func NewRetryPolicy(upstream Upstream, maxRetries uint, retryDelay time.Duration) *RetryPolicy {
	return &RetryPolicy{
		upstream:   upstream,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
	}
}

// Resolve returns whether word has a French entry. It fails with
// ErrUpstreamExhausted after maxRetries+1 rate-limited attempts, and with
// ErrUpstreamError on any other failure.
func (p *RetryPolicy) Resolve(ctx context.Context, word string) (bool, error) {
	var (
		valid       bool
		lastOutcome Outcome
		lastErr     error
	)
	err := retry.Do(
		func() error {
			outcome, err := p.upstream.Lookup(ctx, word)
			lastOutcome, lastErr = outcome, err

			switch outcome {
			case OutcomeValidFrench:
				valid = true
				return nil
			case OutcomeNotValid:
				valid = false
				return nil
			case OutcomeRateLimited:
				lastErr = errRateLimited
				if err != nil {
					lastErr = fmt.Errorf("%w: %w", errRateLimited, err)
				}
				return lastErr
			}
			if err == nil {
				err = fmt.Errorf("unexpected outcome %s", outcome)
				lastErr = err
			}
			return retry.Unrecoverable(err)
		},
		retry.Context(ctx),
		retry.Attempts(p.maxRetries+1),
		retry.Delay(p.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			if n >= p.maxRetries {
				return
			}
			slog.Default().Info("Retrying upstream lookup",
				"word", word,
				"attempt", n+1,
				"delay", p.retryDelay,
				"lastError", err)
		}),
	)
	if err == nil {
		return valid, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, fmt.Errorf("%w: %w", ErrUpstreamError, ctxErr)
	}
	if lastOutcome == OutcomeRateLimited {
		slog.Default().Warn("Upstream still rate limited after retries",
			"word", word,
			"attempts", p.maxRetries+1)
		return false, fmt.Errorf("%w after %d attempts: %w", ErrUpstreamExhausted, p.maxRetries+1, lastErr)
	}
	slog.Default().Warn("Upstream lookup failed",
		"word", word,
		"outcome", lastOutcome,
		"error", lastErr)
	return false, fmt.Errorf("%w: %w", ErrUpstreamError, lastErr)
}
