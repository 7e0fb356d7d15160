package chartcmder

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marketscope/cryptobot/pkg/chart"
	"github.com/marketscope/cryptobot/pkg/coingecko"
)

const chartLongDesc string = `Render a price/volume chart for a cryptocurrency to a standalone
HTML file.

By default the series is fetched live from the market-data API. With
--mock a deterministic synthetic series is rendered instead, which works
offline and sidesteps API rate limits.

Examples:
  cryptobot chart bitcoin
  cryptobot chart ethereum --timeframe 1M --output eth.html
  cryptobot chart solana --mock`

const chartShortDesc string = "Render a cryptocurrency chart to HTML"

type chartCommander struct {
	timeframe string
	output    string
	baseURL   string
	mock      bool
}

func NewChartCmd() *cobra.Command {
	cmder := &chartCommander{}

	cmd := &cobra.Command{
		Use:   "chart <coin-id>",
		Short: chartShortDesc,
		Long:  chartLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&cmder.timeframe, "timeframe", "t", chart.DefaultTimeframe, "Timeframe (1D, 1W, 1M, 3M, 1Y, 5Y)")
	cmd.Flags().StringVarP(&cmder.output, "output", "o", "chart.html", "Output HTML file")
	cmd.Flags().StringVar(&cmder.baseURL, "api-base", coingecko.DefaultBaseURL, "Market-data API base URL")
	cmd.Flags().BoolVar(&cmder.mock, "mock", false, "Render a synthetic series instead of fetching live data")

	return cmd
}

func (c *chartCommander) run(cmd *cobra.Command, coinID string) error {
	tf, ok := chart.TimeframeByValue(c.timeframe)
	if !ok {
		return fmt.Errorf("unknown timeframe %q", c.timeframe)
	}

	series, err := c.loadSeries(cmd, coinID, tf)
	if err != nil {
		return err
	}
	if len(series.Prices) == 0 {
		return fmt.Errorf("no price data for %s", coinID)
	}

	line, summary := chart.Compose(series)

	f, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", c.output, err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("could not render chart: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %s)\n", c.output, coinID, tf.Label)
	fmt.Fprintf(cmd.OutOrStdout(), "Current price: $%.2f (%+.2f%% 24h), volume $%.0f\n",
		summary.CurrentPrice, summary.PriceChange24h, summary.Volume24h)

	return nil
}

func (c *chartCommander) loadSeries(cmd *cobra.Command, coinID string, tf chart.Timeframe) (*coingecko.MarketChart, error) {
	if c.mock {
		days, err := strconv.Atoi(tf.Days)
		if err != nil {
			return nil, fmt.Errorf("bad timeframe span %q: %w", tf.Days, err)
		}
		return chart.MockSeries(coinID, days, chart.MockSeed), nil
	}

	client := coingecko.NewClient(coingecko.WithBaseURL(c.baseURL))
	series, err := client.MarketChart(cmd.Context(), coinID, tf.Days, "daily")
	if err != nil {
		return nil, fmt.Errorf("could not fetch chart data: %w", err)
	}
	return series, nil
}
