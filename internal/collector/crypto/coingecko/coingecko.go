package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/newthinker/pricelog/internal/collector"
)

const (
	baseURL = "https://api.coingecko.com/api/v3"
)

// Symbol to CoinGecko ID mapping
var symbolToIDMap = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"BNB":   "binancecoin",
	"SOL":   "solana",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"ADA":   "cardano",
	"AVAX":  "avalanche-2",
	"DOT":   "polkadot",
	"MATIC": "matic-network",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"LTC":   "litecoin",
	"ETC":   "ethereum-classic",
	"XLM":   "stellar",
	"ALGO":  "algorand",
	"NEAR":  "near",
}

// CoinID resolves a ticker ("BTC") or an existing CoinGecko id ("bitcoin")
func CoinID(symbolOrID string) string {
	if id, ok := symbolToIDMap[strings.ToUpper(symbolOrID)]; ok {
		return id
	}
	return strings.ToLower(symbolOrID)
}

// CoinGecko is the wire client for the /simple/price endpoint
type CoinGecko struct {
	client  *collector.HTTPClient
	baseURL string
	apiKey  string
}

// New creates a new CoinGecko client
func New(apiKey string) *CoinGecko {
	c := &CoinGecko{
		baseURL: baseURL,
		apiKey:  apiKey,
	}
	return c.WithHTTPClient(collector.NewHTTPClient(10 * time.Second))
}

// NewWithBaseURL creates a CoinGecko client with custom base URL (for testing)
func NewWithBaseURL(apiKey, url string) *CoinGecko {
	c := New(apiKey)
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithHTTPClient replaces the underlying HTTP client
func (c *CoinGecko) WithHTTPClient(hc *collector.HTTPClient) *CoinGecko {
	if c.apiKey != "" {
		if hc.Headers == nil {
			hc.Headers = make(map[string]string)
		}
		hc.Headers["x-cg-demo-api-key"] = c.apiKey
	}
	c.client = hc
	return c
}

func (c *CoinGecko) Name() string {
	return "coingecko"
}

// SimplePrice fetches prices for several coins in one call.
// The result maps coin id to currency to price; ids or currencies the
// upstream does not know are simply absent, and a null price stays nil.
func (c *CoinGecko) SimplePrice(ctx context.Context, ids []string, vsCurrency string) (map[string]map[string]*float64, error) {
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", vsCurrency)
	u := fmt.Sprintf("%s/simple/price?%s", c.baseURL, q.Encode())

	var result map[string]map[string]*float64
	if err := c.client.GetJSON(ctx, u, &result); err != nil {
		return nil, fmt.Errorf("coingecko simple price: %w", err)
	}
	return result, nil
}
