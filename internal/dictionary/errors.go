package dictionary

import "errors"

var (
	// ErrInvalidWord is returned when a word is empty after normalization.
	ErrInvalidWord = errors.New("invalid word")
	// ErrUpstreamExhausted is returned once every retry was rate limited.
	ErrUpstreamExhausted = errors.New("upstream retries exhausted")
	// ErrUpstreamError is returned for failures that are not retried.
	ErrUpstreamError = errors.New("upstream error")

	// ErrRateLimitExceeded and ErrInternal are what callers of Service see.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrInternal          = errors.New("internal error")
)
