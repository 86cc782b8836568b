package dictionary

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ResultCache maps a normalized word to its last known validity.
// Entries are only ever dropped all at once, by Clear.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[string]bool
}

func NewResultCache() *ResultCache {
	return &ResultCache{
		entries: make(map[string]bool),
	}
}

func (c *ResultCache) Get(word string) (bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	valid, ok := c.entries[word]
	return valid, ok
}

func (c *ResultCache) Set(word string, valid bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[word] = valid
}

func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]bool)
}

func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// RunSweeper clears the cache every interval until ctx is done.
func (c *ResultCache) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			size := c.Len()
			c.Clear()
			slog.Default().Info("Cleared word cache", "entries", size)
		}
	}
}
