package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/wordcheck/internal/config"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

type wordChecker interface {
	CheckWord(ctx context.Context, rawWord string) (bool, error)
}

type wordResult struct {
	Word    string `json:"word" yaml:"word"`
	IsValid bool   `json:"isValid" yaml:"is_valid"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// checkWords checks all words concurrently and returns results in the
// order of words.
func checkWords(ctx context.Context, checker wordChecker, words []string) []wordResult {
	results := make([]wordResult, len(words))

	var g errgroup.Group
	for i, word := range words {
		g.Go(func() error {
			isValid, err := checker.CheckWord(ctx, word)
			results[i] = wordResult{Word: word, IsValid: isValid}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func countFailures(results []wordResult) error {
	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d words could not be checked", failed, len(results))
	}
	return nil
}
