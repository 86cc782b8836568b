// Package testutil provides shared test helpers for config files and a fake
// Wiktionary API.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig writes a config file that points at wiktionaryURL and
// disables pacing delays. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, wiktionaryURL string) string {
	t.Helper()

	configContent := fmt.Sprintf(`server:
  port: 3001
wiktionary:
  base_url: %s
  user_agent: wordcheck-test
  timeout_ms: 5000
pipeline:
  request_interval_ms: 0
  max_retries: 1
  retry_delay_ms: 1
  cache_lifetime_ms: 60000
`, wiktionaryURL)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// FakeWiktionary serves the MediaWiki parse API from a map of page title
// to wikitext. Unknown titles get a missingtitle error; titles listed in
// RateLimited always get HTTP 429.
type FakeWiktionary struct {
	*httptest.Server

	mu          sync.Mutex
	pages       map[string]string
	rateLimited map[string]bool
	requests    []string
}

func NewFakeWiktionary(t *testing.T, pages map[string]string, rateLimited ...string) *FakeWiktionary {
	t.Helper()

	fake := &FakeWiktionary{
		pages:       pages,
		rateLimited: make(map[string]bool, len(rateLimited)),
	}
	for _, title := range rateLimited {
		fake.rateLimited[title] = true
	}
	fake.Server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.Close)
	return fake
}

// Requests returns the requested page titles in arrival order.
func (f *FakeWiktionary) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *FakeWiktionary) serve(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("page")

	f.mu.Lock()
	f.requests = append(f.requests, title)
	wikitext, found := f.pages[title]
	limited := f.rateLimited[title]
	f.mu.Unlock()

	if limited {
		w.WriteHeader(http.StatusTooManyRequests)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if !found {
		_, _ = w.Write([]byte(`{"error":{"code":"missingtitle","info":"The page you specified doesn't exist."}}`))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"parse": map[string]any{
			"title":    title,
			"wikitext": wikitext,
		},
	})
}
