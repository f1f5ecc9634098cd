package domain

import (
	"fmt"
	"strings"
)

// Weight selects a scoring function for routes.
type Weight int

const (
	// AnswerSetCounting scores a route by the number of answer sets under it.
	AnswerSetCounting Weight = iota
	// FacetCounting scores a route by twice the number of facet-inducing atoms under it.
	FacetCounting
)

func (w Weight) String() string {
	switch w {
	case AnswerSetCounting:
		return "answer-sets"
	case FacetCounting:
		return "facets"
	default:
		return fmt.Sprintf("Weight(%d)", int(w))
	}
}

// ParseWeight accepts the names produced by String plus a few short aliases.
func ParseWeight(s string) (Weight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "answer-sets", "as", "answersets", "models":
		return AnswerSetCounting, nil
	case "facets", "fc", "facet-counting":
		return FacetCounting, nil
	}
	return 0, fmt.Errorf("%w: unknown weight %q", ErrInvalidInput, s)
}
