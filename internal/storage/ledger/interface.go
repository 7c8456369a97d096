// internal/storage/ledger/interface.go
package ledger

import (
	"context"

	"github.com/newthinker/pricelog/internal/core"
)

// TimeLayout is the timestamp layout of every persisted entry
const TimeLayout = "2006-01-02 15:04:05 UTC"

// Ledger defines the interface for append-only price logs
type Ledger interface {
	// Save appends one entry for the reading's source. Existing entries
	// are never rewritten.
	Save(ctx context.Context, reading core.PriceReading) error
}
