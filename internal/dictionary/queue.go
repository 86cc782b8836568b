package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

type resolver interface {
	Resolve(ctx context.Context, word string) (bool, error)
}

type lookupResult struct {
	valid bool
	err   error
}

type queuedRequest struct {
	word   string
	result chan lookupResult
}

// AdmissionQueue serializes upstream lookups. Requests are dispatched one
// at a time in enqueue order, and a dispatch never starts sooner than
// interval after the previous one settled.
//
// At most one drain goroutine runs at a time; it is started by Enqueue and
// exits once the queue is empty.
type AdmissionQueue struct {
	resolver resolver
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	pending     []*queuedRequest
	lastSettled time.Time

	draining atomic.Bool
}

func NewAdmissionQueue(resolver resolver, interval time.Duration) *AdmissionQueue {
	ctx, cancel := context.WithCancel(context.Background())
	return &AdmissionQueue{
		resolver: resolver,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Enqueue appends word to the queue. The returned channel receives exactly
// one result.
func (q *AdmissionQueue) Enqueue(word string) <-chan lookupResult {
	req := &queuedRequest{
		word:   word,
		result: make(chan lookupResult, 1),
	}

	q.mu.Lock()
	q.pending = append(q.pending, req)
	q.mu.Unlock()

	if q.draining.CompareAndSwap(false, true) {
		go q.drain()
	}
	return req.result
}

// Len returns the number of requests the drain loop has not picked up yet.
func (q *AdmissionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close stops waiting between dispatches. Requests still queued, and any
// enqueued later, fail with ErrUpstreamError.
func (q *AdmissionQueue) Close() {
	q.cancel()
}

func (q *AdmissionQueue) drain() {
	for {
		for {
			req, ok := q.pop()
			if !ok {
				break
			}
			q.dispatch(req)
		}

		q.draining.Store(false)
		// An Enqueue between the last pop and the Store above saw draining
		// still set and did not start a loop, so pick its request up here.
		if q.Len() == 0 || !q.draining.CompareAndSwap(false, true) {
			return
		}
	}
}

func (q *AdmissionQueue) dispatch(req *queuedRequest) {
	if err := q.waitForSlot(); err != nil {
		req.result <- lookupResult{err: fmt.Errorf("%w: %w", ErrUpstreamError, err)}
		return
	}

	slog.Default().Debug("Dispatching upstream lookup", "word", req.word, "remaining", q.Len())
	valid, err := q.resolver.Resolve(q.ctx, req.word)

	q.mu.Lock()
	q.lastSettled = time.Now()
	q.mu.Unlock()

	req.result <- lookupResult{valid: valid, err: err}
}

func (q *AdmissionQueue) waitForSlot() error {
	if err := q.ctx.Err(); err != nil {
		return err
	}

	q.mu.Lock()
	wait := time.Until(q.lastSettled.Add(q.interval))
	q.mu.Unlock()
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-q.ctx.Done():
		return q.ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (q *AdmissionQueue) pop() (*queuedRequest, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil, false
	}
	req := q.pending[0]
	q.pending[0] = nil
	q.pending = q.pending[1:]
	return req, true
}
