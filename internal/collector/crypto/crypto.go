package crypto

import (
	"context"
	"fmt"

	"github.com/newthinker/pricelog/internal/core"
)

// DefaultVsCurrency is the quote currency every asset is priced in
const DefaultVsCurrency = "usd"

// Spec describes one crypto asset to poll
type Spec struct {
	Name   string // human readable, e.g. "Bitcoin"
	CoinID string // upstream id, e.g. "bitcoin"
}

// Asset implements collector.Collector for a single coin on a combined endpoint
type Asset struct {
	name       string
	coinID     string
	vsCurrency string
	ids        []string
	quoter     Quoter
}

// NewAsset creates an Asset that only requests its own coin
func NewAsset(spec Spec, q Quoter) *Asset {
	return &Asset{
		name:       spec.Name,
		coinID:     spec.CoinID,
		vsCurrency: DefaultVsCurrency,
		ids:        []string{spec.CoinID},
		quoter:     q,
	}
}

// NewAssets creates one Asset per spec, each requesting every coin in the
// group so the upstream sees the same combined query from all of them.
func NewAssets(q Quoter, specs ...Spec) []*Asset {
	ids := make([]string, 0, len(specs))
	seen := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		if _, ok := seen[s.CoinID]; ok {
			continue
		}
		seen[s.CoinID] = struct{}{}
		ids = append(ids, s.CoinID)
	}

	assets := make([]*Asset, 0, len(specs))
	for _, s := range specs {
		a := NewAsset(s, q)
		a.ids = ids
		assets = append(assets, a)
	}
	return assets
}

func (a *Asset) Name() string {
	return a.name
}

// CoinID returns the upstream coin id
func (a *Asset) CoinID() string {
	return a.coinID
}

// FetchPrice fetches the combined quote and picks this asset's price
func (a *Asset) FetchPrice(ctx context.Context) (float64, error) {
	body, err := a.quoter.SimplePrice(ctx, a.ids, a.vsCurrency)
	if err != nil {
		return 0, fmt.Errorf("fetching %s price from %s: %w", a.name, a.quoter.Name(), err)
	}
	return a.decode(body)
}

// decode selects this asset's field; absence is a data error, not a transport one
func (a *Asset) decode(body map[string]map[string]*float64) (float64, error) {
	coin, ok := body[a.coinID]
	if !ok || coin == nil {
		return 0, core.WrapError(core.ErrDataShape,
			fmt.Errorf("%s price not found in response", a.name))
	}
	price, ok := coin[a.vsCurrency]
	if !ok || price == nil {
		return 0, core.WrapError(core.ErrDataShape,
			fmt.Errorf("%s price not found in response", a.name))
	}
	return *price, nil
}
