package main

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordcheck/internal/dictionary"
	"github.com/at-ishikawa/wordcheck/internal/server"
)

type fixedChecker struct {
	results map[string]bool
	errs    map[string]error
}

func (f fixedChecker) CheckWord(ctx context.Context, rawWord string) (bool, error) {
	if err, ok := f.errs[rawWord]; ok {
		return false, err
	}
	return f.results[rawWord], nil
}

func (f fixedChecker) Stats() dictionary.Stats {
	return dictionary.Stats{}
}

func newTestWordServer(t *testing.T, checker server.WordChecker) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(server.NewWordHandler(checker).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteChecker_CheckWord(t *testing.T) {
	srv := newTestWordServer(t, fixedChecker{
		results: map[string]bool{"chat": true, "été": true},
		errs: map[string]error{
			"bouchon": dictionary.ErrRateLimitExceeded,
			"panne":   dictionary.ErrInternal,
		},
	})
	checker := newRemoteChecker(srv.URL, time.Second)

	tests := []struct {
		name    string
		word    string
		want    bool
		wantErr error
	}{
		{
			name: "valid word",
			word: "chat",
			want: true,
		},
		{
			name: "accented word is escaped",
			word: "été",
			want: true,
		},
		{
			name: "unknown word",
			word: "xyzzynotaword",
			want: false,
		},
		{
			name:    "rate limited",
			word:    "bouchon",
			wantErr: dictionary.ErrRateLimitExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.CheckWord(context.Background(), tt.word)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("server error", func(t *testing.T) {
		_, err := checker.CheckWord(context.Background(), "panne")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status code: 500")
	})
}

func TestCheckCommand(t *testing.T) {
	srv := newTestWordServer(t, fixedChecker{
		results: map[string]bool{"chat": true},
		errs:    map[string]error{"bouchon": dictionary.ErrRateLimitExceeded},
	})

	t.Run("all words checked", func(t *testing.T) {
		out, err := executeCommand(t, "check", "chat", "xyzzynotaword", "--server", srv.URL, "--format", "json")
		require.NoError(t, err)

		var got []wordResult
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, []wordResult{
			{Word: "chat", IsValid: true},
			{Word: "xyzzynotaword", IsValid: false},
		}, got)
	})

	t.Run("failed word makes the command fail", func(t *testing.T) {
		out, err := executeCommand(t, "check", "chat", "bouchon", "--server", srv.URL, "-o", "json")
		assert.EqualError(t, err, "1 of 2 words could not be checked")

		var got []wordResult
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 2)
		assert.Contains(t, got[1].Error, "rate limit exceeded")
	})
}
