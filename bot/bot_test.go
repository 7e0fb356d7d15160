package bot

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2"
)

// stubUpstream is an httptest server that counts how often it is hit.
type stubUpstream struct {
	*httptest.Server
	hits atomic.Int64
}

func newStubUpstream(t *testing.T, handler http.HandlerFunc) *stubUpstream {
	t.Helper()
	s := &stubUpstream{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

// unusedUpstream fails the test if anything calls it.
func unusedUpstream(t *testing.T) *stubUpstream {
	t.Helper()
	return newStubUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	})
}

// testBot wires a Bot to stub upstream servers.
func testBot(t *testing.T, cfg Config) *Bot {
	t.Helper()
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":0"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4-turbo-preview"
	}
	logger, _ := zap.NewDevelopment()
	b, err := New(cfg, logger)
	require.NoError(t, err)
	return b
}

func getJSON(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v), "body: %s", body)
}

func TestHealthEndpoint(t *testing.T) {
	openai := unusedUpstream(t)
	gecko := unusedUpstream(t)
	b := testBot(t, Config{
		OpenAIAPIKey:     "test-key",
		OpenAIBaseURL:    openai.URL,
		CoinGeckoBaseURL: gecko.URL,
	})

	resp := getJSON(t, b.server, "/health")
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]any
	decodeJSON(t, resp, &result)
	assert.Equal(t, "healthy", result["status"])
	assert.Equal(t, "gpt-4-turbo-preview", result["model"])
	assert.Equal(t, true, result["openai_client"])
	assert.Equal(t, true, result["api_key_set"])
	assert.Equal(t, Version, result["version"])
	assert.NotEmpty(t, result["timestamp"])
}

func TestHealthReportsMissingKey(t *testing.T) {
	openai := unusedUpstream(t)
	gecko := unusedUpstream(t)
	b := testBot(t, Config{
		OpenAIBaseURL:    openai.URL,
		CoinGeckoBaseURL: gecko.URL,
	})

	resp := getJSON(t, b.server, "/health")
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]any
	decodeJSON(t, resp, &result)
	assert.Equal(t, "healthy", result["status"])
	assert.Equal(t, false, result["openai_client"])
	assert.Equal(t, false, result["api_key_set"])
}

func TestUnknownEndpoint(t *testing.T) {
	openai := unusedUpstream(t)
	gecko := unusedUpstream(t)
	b := testBot(t, Config{
		OpenAIAPIKey:     "test-key",
		OpenAIBaseURL:    openai.URL,
		CoinGeckoBaseURL: gecko.URL,
	})

	resp := getJSON(t, b.server, "/api/bogus")
	assert.Equal(t, 404, resp.StatusCode)

	var result errorResponse
	decodeJSON(t, resp, &result)
	assert.Equal(t, "Endpoint not found", result.Error)
	assert.False(t, result.Success)
}
