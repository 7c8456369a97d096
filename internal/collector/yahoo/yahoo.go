package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/newthinker/pricelog/internal/collector"
	"github.com/newthinker/pricelog/internal/core"
)

const (
	baseURL = "https://query2.finance.yahoo.com/v8/finance/chart"

	// Yahoo answers 429 to clients without a browser-like agent
	userAgent = "Mozilla/5.0 (compatible; pricelog/1.0)"
)

// validSymbol matches symbols like AAPL, ^GSPC, 600519.SH, 0700.HK
var validSymbol = regexp.MustCompile(`^\^?[A-Za-z0-9]{1,10}(\.[A-Za-z]{1,4})?$`)

// validateSymbol checks if a symbol has valid format
func validateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if len(symbol) > 20 {
		return fmt.Errorf("symbol too long: %s", symbol)
	}
	if !validSymbol.MatchString(symbol) {
		return fmt.Errorf("invalid symbol format: %s", symbol)
	}
	return nil
}

// Yahoo implements collector.Collector for one chart symbol
type Yahoo struct {
	client  *collector.HTTPClient
	baseURL string
	name    string
	symbol  string
}

// New creates a new Yahoo collector for symbol, reported under name
func New(name, symbol string) (*Yahoo, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, err
	}
	y := &Yahoo{
		baseURL: baseURL,
		name:    name,
		symbol:  symbol,
	}
	return y.WithHTTPClient(collector.NewHTTPClient(10 * time.Second)), nil
}

// NewWithBaseURL creates a Yahoo collector with custom base URL (for testing)
func NewWithBaseURL(name, symbol, base string) (*Yahoo, error) {
	y, err := New(name, symbol)
	if err != nil {
		return nil, err
	}
	y.baseURL = strings.TrimSuffix(base, "/")
	return y, nil
}

// WithHTTPClient replaces the underlying HTTP client
func (y *Yahoo) WithHTTPClient(hc *collector.HTTPClient) *Yahoo {
	if hc.UserAgent == "" {
		hc.UserAgent = userAgent
	}
	y.client = hc
	return y
}

func (y *Yahoo) Name() string {
	return y.name
}

// Symbol returns the configured ticker
func (y *Yahoo) Symbol() string {
	return y.symbol
}

// toYahooSymbol converts internal symbol format to Yahoo format
func (y *Yahoo) toYahooSymbol(symbol string) string {
	// Shanghai stocks: 600519.SH -> 600519.SS
	if strings.HasSuffix(symbol, ".SH") {
		return strings.TrimSuffix(symbol, ".SH") + ".SS"
	}
	return symbol
}

// FetchPrice fetches the chart meta and returns regularMarketPrice
func (y *Yahoo) FetchPrice(ctx context.Context) (float64, error) {
	u := fmt.Sprintf("%s/%s?interval=1d&range=1d", y.baseURL, url.PathEscape(y.toYahooSymbol(y.symbol)))

	var result chartResponse
	if err := y.client.GetJSON(ctx, u, &result); err != nil {
		return 0, fmt.Errorf("fetching %s price from yahoo: %w", y.name, err)
	}
	return y.decode(result)
}

// decode takes the first chart result; an empty sequence is a data error
func (y *Yahoo) decode(result chartResponse) (float64, error) {
	if result.Chart.Error != nil {
		return 0, core.WrapError(core.ErrDataShape,
			fmt.Errorf("yahoo error for %s: %s", y.symbol, result.Chart.Error.Description))
	}

	if len(result.Chart.Result) == 0 {
		return 0, core.WrapError(core.ErrDataShape,
			fmt.Errorf("%s price not found in response", y.name))
	}

	price := result.Chart.Result[0].Meta.RegularMarketPrice
	if price == nil {
		return 0, core.WrapError(core.ErrDataShape,
			fmt.Errorf("%s regularMarketPrice missing in response", y.name))
	}
	return *price, nil
}

// Yahoo API response types
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta chartMeta `json:"meta"`
}

type chartMeta struct {
	Symbol             string   `json:"symbol"`
	Currency           string   `json:"currency"`
	RegularMarketPrice *float64 `json:"regularMarketPrice"`
	RegularMarketTime  int64    `json:"regularMarketTime"`
}
