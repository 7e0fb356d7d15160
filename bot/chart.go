package bot

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/marketscope/cryptobot/pkg/chart"
)

// handleChart returns the chart description for a coin over a timeframe.
// The timeframe query parameter defaults to the five-year view.
func (b *Bot) handleChart(c *fiber.Ctx) error {
	id := c.Params("id")
	if !validCryptoID.MatchString(id) {
		return errorJSON(c, fiber.StatusBadRequest, errInvalidCryptoID)
	}

	tf, ok := chart.TimeframeByValue(c.Query("timeframe", chart.DefaultTimeframe))
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, errInvalidTimeframe)
	}

	result, err := b.charts.ChartData(c.Context(), id, tf.Days, "daily")
	if err != nil {
		if errors.Is(err, chart.ErrNoData) {
			return errorJSON(c, fiber.StatusBadGateway, errNoChartData)
		}
		return b.marketError(c, err, "chart data")
	}

	return c.JSON(struct {
		Success bool `json:"success"`
		*chart.Result
	}{true, result})
}

// handleChartOptions lists the selectable coins and timeframes.
func (b *Bot) handleChartOptions(c *fiber.Ctx) error {
	return c.JSON(map[string]any{
		"success":          true,
		"cryptocurrencies": chart.SupportedCoins(),
		"timeframes":       chart.Timeframes(),
	})
}
