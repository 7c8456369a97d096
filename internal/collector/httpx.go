package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/newthinker/pricelog/internal/core"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single upstream call
const DefaultTimeout = 10 * time.Second

// HTTPClient issues one JSON GET per call, with no retries.
// Limiter, when set, spaces out requests made through this client.
type HTTPClient struct {
	HTTP      *http.Client
	UserAgent string
	Headers   map[string]string
	Limiter   *rate.Limiter
}

// NewHTTPClient creates a client with the given timeout
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		HTTP: &http.Client{Timeout: timeout},
	}
}

// WithRateLimit allows at most perSecond requests with the given burst
func (c *HTTPClient) WithRateLimit(perSecond float64, burst int) *HTTPClient {
	if perSecond <= 0 {
		c.Limiter = nil
		return c
	}
	if burst < 1 {
		burst = 1
	}
	c.Limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	return c
}

// GetJSON fetches url and decodes the body into out.
//
// Network failures and unparseable bodies are wrapped in core.ErrTransport.
// Well-formed JSON of the wrong shape is core.ErrDataShape. A non-2xx
// status becomes a core.StatusError, tagged core.ErrRateLimited on 429.
func (c *HTTPClient) GetJSON(ctx context.Context, url string, out any) error {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return core.WrapError(core.ErrTransport, fmt.Errorf("waiting for rate limiter: %w", err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.WrapError(core.ErrTransport, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return core.WrapError(core.ErrTransport, fmt.Errorf("fetching: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.NewStatusError(resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return core.WrapError(core.ErrDataShape, fmt.Errorf("decoding response: %w", err))
		}
		return core.WrapError(core.ErrTransport, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}
