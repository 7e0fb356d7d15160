package llm

import (
	"net/http"
	"time"
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the completions API base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout bounds non-streaming completion calls. Streaming calls are
// never bounded by this.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}
