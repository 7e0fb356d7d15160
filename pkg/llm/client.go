package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the hosted completions API endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultTimeout bounds non-streaming completion calls.
	DefaultTimeout = 10 * time.Second

	// doneMarker terminates an SSE completion stream.
	doneMarker = "[DONE]"

	// maxScanTokenSize allows for large single-chunk deltas.
	maxScanTokenSize = 1024 * 1024
)

// StreamHandler receives one content delta at a time, in arrival order.
// Returning an error stops the stream and surfaces the error to the caller.
type StreamHandler func(delta string) error

// Client is a chat completions API client.
type Client struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a completions client. The API key is required.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		// No client-level timeout: streaming responses stay open for as
		// long as the model generates. Non-streaming calls are bounded
		// per request via context.
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// CreateChatCompletion performs a single-shot completion request.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	req.Stream = false

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpResp, err := c.post(ctx, req, "")
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, apiError(httpResp.StatusCode, body)
	}

	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("completion contained no choices")
	}

	return &resp, nil
}

// StreamChatCompletion performs a streaming completion request, invoking fn
// for every non-empty content delta. It returns once the upstream stream is
// exhausted, fn returns an error, or the stream fails.
func (c *Client) StreamChatCompletion(ctx context.Context, req ChatRequest, fn StreamHandler) error {
	req.Stream = true

	httpResp, err := c.post(ctx, req, "text/event-stream")
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		return apiError(httpResp.StatusCode, body)
	}

	scanner := bufio.NewScanner(httpResp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScanTokenSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}
		if payload == doneMarker {
			return nil
		}

		var chunk StreamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return fmt.Errorf("unmarshal chunk: %w", err)
		}

		for _, choice := range chunk.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			if err := fn(choice.Delta.Content); err != nil {
				return err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}

	return nil
}

// post marshals req and issues it against the completions endpoint.
func (c *Client) post(ctx context.Context, req ChatRequest, accept string) (*http.Response, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if accept != "" {
		httpReq.Header.Set("Accept", accept)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	return httpResp, nil
}

// apiError decodes the API error envelope, falling back to the raw body.
func apiError(status int, body []byte) *APIError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return &APIError{StatusCode: status, Message: env.Error.Message, Type: env.Error.Type}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return &APIError{StatusCode: status, Message: msg}
}
