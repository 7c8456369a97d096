package core

import (
	"errors"
	"time"
)

// PriceReading is a single successfully decoded price
type PriceReading struct {
	Source     string
	Price      float64 // USD
	ObservedAt time.Time
}

// NewPriceReading builds a reading stamped in UTC
func NewPriceReading(source string, price float64, at time.Time) PriceReading {
	return PriceReading{Source: source, Price: price, ObservedAt: at.UTC()}
}

// OutcomeKind classifies what happened to one source during a cycle
type OutcomeKind string

const (
	OutcomeSuccess      OutcomeKind = "success"
	OutcomeFetchError   OutcomeKind = "fetch_error"
	OutcomeRateLimited  OutcomeKind = "rate_limited"
	OutcomeDataError    OutcomeKind = "data_error"
	OutcomePersistError OutcomeKind = "persist_error"
)

// Outcome is the per-source, per-cycle result. It is only reported, never stored.
type Outcome struct {
	Source string
	Kind   OutcomeKind
	Price  float64
	Err    error
}

// OK reports whether the source was fetched and persisted.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// Classify maps an error from a fetch or save onto an OutcomeKind.
func Classify(err error) OutcomeKind {
	switch {
	case err == nil:
		return OutcomeSuccess
	case IsRateLimited(err):
		return OutcomeRateLimited
	case errors.Is(err, ErrDataShape):
		return OutcomeDataError
	case errors.Is(err, ErrPersist):
		return OutcomePersistError
	default:
		return OutcomeFetchError
	}
}
