// Package coingecko is a typed client for the public CoinGecko market-data
// API: global aggregates, market listings, coin details and historical
// chart series. Historical fetches are paced by a Limiter and retry once on
// throttling.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the public API endpoint.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	// DefaultTimeout bounds the plain market-data calls.
	DefaultTimeout = 5 * time.Second

	// DefaultChartTimeout bounds the heavier historical-chart call.
	DefaultChartTimeout = 10 * time.Second

	// DefaultRetryBackoff is how long to wait before the single retry
	// after the API throttles a chart fetch.
	DefaultRetryBackoff = 5 * time.Second

	// The public API blocks default Go user agents aggressively.
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Client is a market-data API client.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	limiter      *Limiter
	timeout      time.Duration
	chartTimeout time.Duration
	retryBackoff time.Duration

	// Injectable for tests.
	sleep func(context.Context, time.Duration) error
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithLimiter injects the pacer guarding historical-chart fetches.
func WithLimiter(l *Limiter) ClientOption {
	return func(c *Client) { c.limiter = l }
}

// WithTimeouts overrides the plain and chart call budgets.
func WithTimeouts(plain, chart time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = plain
		c.chartTimeout = chart
	}
}

// NewClient creates a market-data client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		httpClient:   &http.Client{},
		limiter:      NewLimiter(DefaultMinInterval),
		timeout:      DefaultTimeout,
		chartTimeout: DefaultChartTimeout,
		retryBackoff: DefaultRetryBackoff,
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Global fetches the global market aggregates.
func (c *Client) Global(ctx context.Context) (*GlobalMarket, error) {
	body, status, err := c.fetch(ctx, c.baseURL+"/global", c.timeout)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &StatusError{Code: status, Body: snippet(body)}
	}

	var env globalEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ParseError{Op: "global market", Err: err}
	}
	return &env.Data, nil
}

// Markets fetches the top coins by market cap, descending.
func (c *Client) Markets(ctx context.Context, perPage int) ([]MarketCoin, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("order", "market_cap_desc")
	q.Set("per_page", fmt.Sprintf("%d", perPage))
	q.Set("page", "1")
	q.Set("sparkline", "false")

	body, status, err := c.fetch(ctx, c.baseURL+"/coins/markets?"+q.Encode(), c.timeout)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &StatusError{Code: status, Body: snippet(body)}
	}

	var coins []MarketCoin
	if err := json.Unmarshal(body, &coins); err != nil {
		return nil, &ParseError{Op: "markets", Err: err}
	}
	return coins, nil
}

// Coin fetches detail data for a single coin id.
func (c *Client) Coin(ctx context.Context, id string) (*CoinDetail, error) {
	q := url.Values{}
	q.Set("localization", "false")
	q.Set("tickers", "false")
	q.Set("market_data", "true")
	q.Set("community_data", "true")
	q.Set("developer_data", "true")

	u := fmt.Sprintf("%s/coins/%s?%s", c.baseURL, url.PathEscape(id), q.Encode())
	body, status, err := c.fetch(ctx, u, c.timeout)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &NotFoundError{ID: id}
	default:
		return nil, &StatusError{Code: status, Body: snippet(body)}
	}

	var detail CoinDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, &ParseError{Op: "coin detail", Err: err}
	}
	return &detail, nil
}

// MarketChart fetches the historical price/volume series for a coin. Calls
// are paced by the limiter; a throttled response is retried exactly once
// after a fixed backoff, and a second throttle surfaces as ThrottledError.
func (c *Client) MarketChart(ctx context.Context, id, days, interval string) (*MarketChart, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("days", days)
	q.Set("interval", interval)

	u := fmt.Sprintf("%s/coins/%s/market_chart?%s", c.baseURL, url.PathEscape(id), q.Encode())

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, status, err := c.fetch(ctx, u, c.chartTimeout)
		if err != nil {
			return nil, err
		}

		switch status {
		case http.StatusOK:
			var chart MarketChart
			if err := json.Unmarshal(body, &chart); err != nil {
				return nil, &ParseError{Op: "market chart", Err: err}
			}
			return &chart, nil
		case http.StatusNotFound:
			return nil, &NotFoundError{ID: id}
		case http.StatusTooManyRequests:
			if attempt > 0 {
				return nil, &ThrottledError{}
			}
			if err := c.sleep(ctx, c.retryBackoff); err != nil {
				return nil, err
			}
		default:
			return nil, &StatusError{Code: status, Body: snippet(body)}
		}
	}
}

// fetch issues a GET and returns the body and status. Transport failures
// come back as errors; HTTP status handling is left to the caller.
func (c *Client) fetch(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

// snippet trims an error body for inclusion in messages.
func snippet(body []byte) string {
	s := string(body)
	if len(s) > 100 {
		return s[:100]
	}
	return s
}
