package crypto

import (
	"context"
)

// Quoter defines the interface for combined crypto price endpoints
type Quoter interface {
	// Name returns the provider identifier (e.g., "coingecko")
	Name() string

	// SimplePrice fetches prices for all ids in a single call.
	// Result is keyed by coin id, then by quote currency. A null price is nil.
	SimplePrice(ctx context.Context, ids []string, vsCurrency string) (map[string]map[string]*float64, error)
}
