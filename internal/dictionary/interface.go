package dictionary

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/dictionary/mock_upstream.go -package=mock_dictionary

// Upstream performs a single lookup of a word against the dictionary API.
// Implementations must not retry; the error, when present, describes why
// the outcome is OutcomeRateLimited or OutcomeTransientError.
type Upstream interface {
	Lookup(ctx context.Context, word string) (Outcome, error)
}

// Outcome is the classified result of one upstream lookup.
type Outcome int

const (
	OutcomeNotValid Outcome = iota
	OutcomeValidFrench
	OutcomeRateLimited
	OutcomeTransientError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotValid:
		return "not_valid"
	case OutcomeValidFrench:
		return "valid_french"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeTransientError:
		return "transient_error"
	}
	return "unknown"
}
