package bot

import (
	"errors"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/marketscope/cryptobot/pkg/coingecko"
)

// validCryptoID guards path parameters before they reach the network.
var validCryptoID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// handleMarketData returns the top ten coins by market cap.
func (b *Bot) handleMarketData(c *fiber.Ctx) error {
	coins, err := b.markets.Markets(c.Context(), 10)
	if err != nil {
		b.logger.Error("market data fetch failed", zap.Error(err))
		return errorJSON(c, fiber.StatusBadGateway, marketErrorMessage(err))
	}

	return c.JSON(map[string]any{
		"success":   true,
		"data":      coins,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleCryptoDetail returns detailed data for a single coin.
func (b *Bot) handleCryptoDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validCryptoID.MatchString(id) {
		return errorJSON(c, fiber.StatusBadRequest, errInvalidCryptoID)
	}

	detail, err := b.markets.Coin(c.Context(), id)
	if err != nil {
		return b.marketError(c, err, "crypto detail")
	}

	return c.JSON(map[string]any{
		"success":   true,
		"data":      detail,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// marketError maps market-data failures onto HTTP statuses: 404 for unknown
// coins, 502 for anything upstream.
func (b *Bot) marketError(c *fiber.Ctx, err error, op string) error {
	var notFound *coingecko.NotFoundError
	if errors.As(err, &notFound) {
		return errorJSON(c, fiber.StatusNotFound, notFound.Error())
	}

	b.logger.Error("market data request failed", zap.String("op", op), zap.Error(err))
	return errorJSON(c, fiber.StatusBadGateway, marketErrorMessage(err))
}

// marketErrorMessage picks the client-facing message for an upstream
// failure. Protocol errors keep the upstream status; transport errors get a
// generic message so internals do not leak.
func marketErrorMessage(err error) string {
	var statusErr *coingecko.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	var throttled *coingecko.ThrottledError
	if errors.As(err, &throttled) {
		return throttled.Error()
	}
	var parseErr *coingecko.ParseError
	if errors.As(err, &parseErr) {
		return errAPIError
	}
	return errNetworkError
}
