package dictionary

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeWord returns the key used by the cache and the admission queue.
// Accented letters are composed (NFC) so that decomposed input such as
// "é" shares a key with "é".
func NormalizeWord(raw string) (string, error) {
	word := norm.NFC.String(strings.ToLower(strings.TrimSpace(raw)))
	if word == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidWord, raw)
	}
	return word, nil
}
