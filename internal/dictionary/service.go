package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// PipelineConfig holds the process-wide pacing settings of a Service.
type PipelineConfig struct {
	// RequestInterval is the minimum pause between two upstream dispatches.
	RequestInterval time.Duration
	// MaxRetries is how many times a rate-limited lookup is retried.
	MaxRetries uint
	RetryDelay time.Duration
	// CacheLifetime is the period of the full cache sweep.
	CacheLifetime time.Duration
}

const (
	DefaultRequestInterval = time.Second
	DefaultMaxRetries      = 3
	DefaultRetryDelay      = 2 * time.Second
	DefaultCacheLifetime   = 24 * time.Hour
)

// Stats is a snapshot used by the liveness endpoint.
type Stats struct {
	QueueLength int `json:"queueLength"`
	CacheSize   int `json:"cacheSize"`
}

// Service answers whether a word has a French entry, consulting the cache
// before sending a lookup through the admission queue.
type Service struct {
	cache         *ResultCache
	queue         *AdmissionQueue
	flights       singleflight.Group
	cacheLifetime time.Duration
}

func NewService(upstream Upstream, config PipelineConfig) *Service {
	policy := NewRetryPolicy(upstream, config.MaxRetries, config.RetryDelay)
	return &Service{
		cache:         NewResultCache(),
		queue:         NewAdmissionQueue(policy, config.RequestInterval),
		cacheLifetime: config.CacheLifetime,
	}
}

// Start runs the periodic cache sweep until ctx is done.
func (s *Service) Start(ctx context.Context) {
	if s.cacheLifetime <= 0 {
		return
	}
	go s.cache.RunSweeper(ctx, s.cacheLifetime)
}

func (s *Service) Close() {
	s.queue.Close()
}

// CheckWord normalizes rawWord and reports whether it has a French entry.
// Errors wrap ErrInvalidWord, ErrRateLimitExceeded or ErrInternal, except
// when ctx ends first, in which case ctx.Err() is returned as is.
//
// Concurrent misses for the same word share a single queued lookup. ctx
// only limits how long the caller waits: a queued lookup always runs to
// completion and its result is cached.
func (s *Service) CheckWord(ctx context.Context, rawWord string) (bool, error) {
	word, err := NormalizeWord(rawWord)
	if err != nil {
		return false, err
	}

	if valid, ok := s.cache.Get(word); ok {
		slog.Default().Debug("Word found in cache", "word", word, "isValid", valid)
		return valid, nil
	}

	flight := s.flights.DoChan(word, func() (interface{}, error) {
		return s.fetch(word)
	})
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return false, toCallerError(res.Err)
		}
		return res.Val.(bool), nil
	}
}

func (s *Service) fetch(word string) (bool, error) {
	// A flight that finished just before this one started may have filled it.
	if valid, ok := s.cache.Get(word); ok {
		return valid, nil
	}

	res := <-s.queue.Enqueue(word)
	if res.err != nil {
		return false, res.err
	}
	s.cache.Set(word, res.valid)
	slog.Default().Info("Word checked", "word", word, "isValid", res.valid)
	return res.valid, nil
}

func toCallerError(err error) error {
	if errors.Is(err, ErrUpstreamExhausted) {
		return fmt.Errorf("%w: %w", ErrRateLimitExceeded, err)
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// ClearCache drops every cached result.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

func (s *Service) Stats() Stats {
	return Stats{
		QueueLength: s.queue.Len(),
		CacheSize:   s.cache.Len(),
	}
}
