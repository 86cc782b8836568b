package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordcheck/internal/dictionary"
	"github.com/at-ishikawa/wordcheck/internal/server"
)

const defaultServerURL = "http://localhost:3001"

func newCheckCommand() *cobra.Command {
	var (
		format    OutputFormat
		serverURL string
		timeout   time.Duration
	)
	command := &cobra.Command{
		Use:   "check WORD...",
		Short: "Check words through a running wordcheck server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := newRemoteChecker(serverURL, timeout)
			results := checkWords(cmd.Context(), checker, args)
			if err := writeResults(cmd.OutOrStdout(), format, results); err != nil {
				return fmt.Errorf("writeResults > %w", err)
			}
			return countFailures(results)
		},
	}
	flags := command.Flags()
	addFormatFlag(flags, &format)
	flags.StringVar(&serverURL, "server", defaultServerURL, "base URL of the wordcheck server")
	flags.DurationVar(&timeout, "timeout", 2*time.Minute, "timeout of each request; queued words can take a while")
	return command
}

// remoteChecker calls the /check-word endpoint of a wordcheck server.
type remoteChecker struct {
	client *resty.Client
}

func newRemoteChecker(serverURL string, timeout time.Duration) *remoteChecker {
	return &remoteChecker{
		client: resty.New().
			SetBaseURL(serverURL).
			SetTimeout(timeout),
	}
}

func (c *remoteChecker) CheckWord(ctx context.Context, word string) (bool, error) {
	var (
		result server.CheckWordResponse
		apiErr server.ErrorResponse
	)
	res, err := c.client.R().
		SetContext(ctx).
		SetPathParam("word", word).
		SetResult(&result).
		SetError(&apiErr).
		Get("/check-word/{word}")
	if err != nil {
		return false, fmt.Errorf("client.R.Get > %w", err)
	}

	switch res.StatusCode() {
	case http.StatusOK:
		return result.IsValid, nil
	case http.StatusTooManyRequests:
		return false, fmt.Errorf("%w: %s", dictionary.ErrRateLimitExceeded, apiErr.Message)
	case http.StatusBadRequest:
		return false, fmt.Errorf("%w: %s", dictionary.ErrInvalidWord, apiErr.Message)
	}
	return false, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
}
