// Package bot implements the crypto research chat backend: a fiber server
// that relays conversations to an OpenAI-compatible completions API,
// enriches them with live market data, and serves chart descriptions.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/marketscope/cryptobot/pkg/chart"
	"github.com/marketscope/cryptobot/pkg/chat"
	"github.com/marketscope/cryptobot/pkg/coingecko"
	"github.com/marketscope/cryptobot/pkg/llm"
)

// Version is reported by /health and the CLI.
const Version = "2.0.0"

// Client-facing error strings.
const (
	errNoMessage        = "No message provided"
	errEmptyMessage     = "Message cannot be empty"
	errAPIKeyMissing    = "API key not configured. Please set OPENAI_API_KEY environment variable."
	errInvalidCryptoID  = "Invalid crypto ID"
	errInvalidTimeframe = "Invalid timeframe"
	errAPIError         = "API error occurred"
	errNetworkError     = "Network error occurred"
	errNoChartData      = "No price data available"
	errInternalError    = "Internal server error"
	errEndpointNotFound = "Endpoint not found"
)

// AIClient is the slice of the completions client the handlers use.
type AIClient interface {
	CreateChatCompletion(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error)
	StreamChatCompletion(ctx context.Context, req llm.ChatRequest, fn llm.StreamHandler) error
}

// MarketClient is the slice of the market-data client the handlers use.
type MarketClient interface {
	Global(ctx context.Context) (*coingecko.GlobalMarket, error)
	Markets(ctx context.Context, perPage int) ([]coingecko.MarketCoin, error)
	Coin(ctx context.Context, id string) (*coingecko.CoinDetail, error)
	MarketChart(ctx context.Context, id, days, interval string) (*coingecko.MarketChart, error)
}

// Bot is the research chat server. Handlers are stateless; the only shared
// state is the market-data rate limiter and the greeter RNG, both of which
// synchronize internally.
type Bot struct {
	config   Config
	logger   *zap.Logger
	ai       AIClient // nil when no API key is configured
	markets  MarketClient
	charts   *chart.Service
	greeter  *chat.Greeter
	enricher *chat.Enricher
	server   *fiber.App
}

// New creates a Bot and registers its routes. A missing API key is not
// fatal: the server still comes up, /health reports the gap, and chat
// requests fail with a configuration error.
func New(config Config, logger *zap.Logger) (*Bot, error) {
	markets := coingecko.NewClient(
		coingecko.WithBaseURL(config.CoinGeckoBaseURL),
	)

	b := &Bot{
		config:   config,
		logger:   logger,
		markets:  markets,
		charts:   chart.NewService(markets, logger),
		greeter:  chat.NewGreeter(time.Now().UnixNano()),
		enricher: chat.NewEnricher(markets, logger),
	}

	if config.OpenAIAPIKey != "" {
		ai, err := llm.NewClient(config.OpenAIAPIKey, llm.WithBaseURL(config.OpenAIBaseURL))
		if err != nil {
			return nil, fmt.Errorf("create completions client: %w", err)
		}
		b.ai = ai
	} else {
		logger.Warn("OPENAI_API_KEY not set, chat endpoints will return errors")
	}

	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		StreamRequestBody:     true,
		ErrorHandler:          b.errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	b.server = app
	b.registerRoutes(app)

	return b, nil
}

// registerRoutes wires up the HTTP endpoints. The static chart options
// route is registered before the parameterized chart route so "options"
// never matches as a coin ID.
func (b *Bot) registerRoutes(app *fiber.App) {
	app.Post("/api/chat", b.handleChat)
	app.Post("/api/chat/stream", b.handleChatStream)
	app.Get("/api/market-data", b.handleMarketData)
	app.Get("/api/crypto/:id", b.handleCryptoDetail)
	app.Get("/api/chart/options", b.handleChartOptions)
	app.Get("/api/chart/:id", b.handleChart)
	app.Get("/health", b.handleHealth)

	app.Use(func(c *fiber.Ctx) error {
		return errorJSON(c, fiber.StatusNotFound, errEndpointNotFound)
	})
}

// Run starts the server on the configured listen address and blocks until
// the server shuts down.
func (b *Bot) Run() error {
	b.logger.Info("starting crypto research bot",
		zap.String("listen", b.config.ListenAddr),
		zap.String("model", b.config.Model),
		zap.Bool("api_key_set", b.config.OpenAIAPIKey != ""),
	)
	return b.server.Listen(b.config.ListenAddr)
}

// Shutdown gracefully stops the server, letting in-flight requests finish.
func (b *Bot) Shutdown() error {
	b.logger.Info("shutting down")
	return b.server.Shutdown()
}

func (b *Bot) handleHealth(c *fiber.Ctx) error {
	return c.JSON(map[string]any{
		"status":        "healthy",
		"model":         b.config.Model,
		"openai_client": b.ai != nil,
		"api_key_set":   b.config.OpenAIAPIKey != "",
		"timestamp":     time.Now().Format(time.RFC3339),
		"version":       Version,
	})
}

// errorHandler renders unhandled errors, including recovered panics, in the
// shared error body shape.
func (b *Bot) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := errInternalError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code != fiber.StatusInternalServerError {
		code = fiberErr.Code
		msg = fiberErr.Message
	} else {
		b.logger.Error("unhandled error", zap.Error(err))
	}

	return errorJSON(c, code, msg)
}

// errorResponse is the error body shape shared by every endpoint.
type errorResponse struct {
	Error   string `json:"error"`
	Success bool   `json:"success"`
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorResponse{Error: msg})
}

// truncate shortens s for log previews.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
