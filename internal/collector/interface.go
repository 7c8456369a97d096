package collector

import (
	"context"
)

// Collector is a price source: one external endpoint decoded into a single USD price
type Collector interface {
	// Metadata
	Name() string

	// FetchPrice performs exactly one call to the upstream and decodes it.
	// Retrying is left to the next scheduled cycle.
	FetchPrice(ctx context.Context) (float64, error)
}
