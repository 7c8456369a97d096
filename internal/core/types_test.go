package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestNewPriceReading_UTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, loc)

	r := NewPriceReading("Bitcoin", 65000.5, at)
	if r.ObservedAt.Location() != time.UTC {
		t.Errorf("expected UTC, got %s", r.ObservedAt.Location())
	}
	if r.ObservedAt.Hour() != 0 {
		t.Errorf("expected hour 0, got %d", r.ObservedAt.Hour())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected OutcomeKind
	}{
		{"nil", nil, OutcomeSuccess},
		{"rate limited", NewStatusError(http.StatusTooManyRequests, "u"), OutcomeRateLimited},
		{"server error", NewStatusError(http.StatusBadGateway, "u"), OutcomeFetchError},
		{"transport", WrapError(ErrTransport, errors.New("connection refused")), OutcomeFetchError},
		{"data shape", WrapError(ErrDataShape, errors.New("Bitcoin price not found in response")), OutcomeDataError},
		{"persist", WrapError(ErrPersist, errors.New("disk full")), OutcomePersistError},
		{"wrapped data shape", fmt.Errorf("fetching: %w", ErrDataShape), OutcomeDataError},
		{"unknown", errors.New("boom"), OutcomeFetchError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.expected {
				t.Errorf("Classify() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestOutcome_OK(t *testing.T) {
	if !(Outcome{Kind: OutcomeSuccess}).OK() {
		t.Error("success outcome should be OK")
	}
	if (Outcome{Kind: OutcomeRateLimited}).OK() {
		t.Error("rate limited outcome should not be OK")
	}
}
