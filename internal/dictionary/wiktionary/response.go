// https://www.mediawiki.org/wiki/API:Parsing_wikitext
package wiktionary

import (
	"encoding/json"
	"fmt"
	"strings"
)

// French-language section markers used by fr.wiktionary.org.
var frenchMarkers = []string{"{{langue|fr}}", "{{=fr=}}"}

// ParseResponse is the body of an action=parse request with prop=wikitext.
type ParseResponse struct {
	Error *APIError    `json:"error,omitempty"`
	Parse *ParseResult `json:"parse,omitempty"`
}

type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type ParseResult struct {
	Title    string   `json:"title"`
	PageID   int      `json:"pageid"`
	Wikitext Wikitext `json:"wikitext"`
}

// Wikitext is the raw page content.
type Wikitext struct {
	Content string
}

func (w *Wikitext) UnmarshalJSON(data []byte) error {
	// formatversion=2 returns a plain string, formatversion=1 an object
	if len(data) > 0 && data[0] == '{' {
		var legacy struct {
			Star    string `json:"*"`
			Content string `json:"content"`
		}
		if err := json.Unmarshal(data, &legacy); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		w.Content = legacy.Star
		if w.Content == "" {
			w.Content = legacy.Content
		}
		return nil
	}

	var content string
	if err := json.Unmarshal(data, &content); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	w.Content = content
	return nil
}

// HasFrenchSection reports whether the page content declares a French
// language section.
func (r ParseResponse) HasFrenchSection() bool {
	if r.Error != nil || r.Parse == nil {
		return false
	}
	return HasFrenchMarker(r.Parse.Wikitext.Content)
}

func HasFrenchMarker(wikitext string) bool {
	for _, marker := range frenchMarkers {
		if strings.Contains(wikitext, marker) {
			return true
		}
	}
	return false
}
