package wiktionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"resty.dev/v3"

	"github.com/at-ishikawa/wordcheck/internal/dictionary"
)

const (
	DefaultBaseURL   = "https://fr.wiktionary.org"
	DefaultUserAgent = "wordcheck/1.0 (+https://github.com/at-ishikawa/wordcheck)"
	apiPath          = "/w/api.php"
)

// StatusError is returned with a failed lookup. StatusCode is 0 when no
// HTTP response was received.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.StatusCode == 0 {
		return "no response from wiktionary"
	}
	return fmt.Sprintf("wiktionary responded with status %d", e.StatusCode)
}

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client looks words up through the MediaWiki parse API. It never retries.
type Client struct {
	httpClient *resty.Client
}

var _ dictionary.Upstream = (*Client)(nil)

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	client := resty.New()
	client.SetBaseURL(config.BaseURL)
	client.SetHeader("User-Agent", config.UserAgent)
	client.SetHeader("Accept", "application/json")
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}
	return &Client{
		httpClient: client,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// Lookup fetches the wikitext of the page titled word.
func (client *Client) Lookup(ctx context.Context, word string) (dictionary.Outcome, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":        "parse",
			"page":          word,
			"format":        "json",
			"prop":          "wikitext",
			"formatversion": "2",
			"redirects":     "1",
		}).
		Get(apiPath)
	if err != nil {
		return dictionary.OutcomeTransientError, fmt.Errorf("httpClient.Get > %w: %w", &StatusError{}, err)
	}

	body := response.String()
	switch {
	case response.StatusCode() == http.StatusTooManyRequests:
		return dictionary.OutcomeRateLimited, &StatusError{StatusCode: response.StatusCode(), Body: body}
	case !response.IsSuccess():
		return dictionary.OutcomeTransientError, &StatusError{StatusCode: response.StatusCode(), Body: body}
	}

	var parsed ParseResponse
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return dictionary.OutcomeTransientError, fmt.Errorf("json.Unmarshal(%s) > %w", word, err)
	}
	if parsed.HasFrenchSection() {
		return dictionary.OutcomeValidFrench, nil
	}
	return dictionary.OutcomeNotValid, nil
}
