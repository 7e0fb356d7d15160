// Package chart turns historical price/volume series into chart-description
// objects (echarts option maps) for the research UI, with a seeded mock
// generator as a fallback when the market-data API throttles.
package chart

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"go.uber.org/zap"

	"github.com/marketscope/cryptobot/pkg/coingecko"
)

// Series colors, price line on the primary axis and movement-coded volume
// bars on the secondary one.
const (
	priceColor      = "#1f77b4"
	priceFillColor  = "rgba(31, 119, 180, 0.1)"
	volumeUpColor   = "#2ca02c"
	volumeDownColor = "#d62728"
)

// ErrNoData is returned when the upstream series carries no price points.
var ErrNoData = errors.New("no price data available")

// Source supplies historical market series.
type Source interface {
	MarketChart(ctx context.Context, id, days, interval string) (*coingecko.MarketChart, error)
}

// Summary holds the headline figures derived from a series.
type Summary struct {
	CurrentPrice   float64 `json:"current_price"`
	PriceChange24h float64 `json:"price_change_24h"`
	Volume24h      float64 `json:"volume_24h"`
}

// Result is a rendered chart plus its summary figures.
type Result struct {
	ChartData map[string]interface{} `json:"chart_data"`
	Summary
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Service builds chart Results from live market data.
type Service struct {
	source Source
	logger *zap.Logger
	seed   int64
}

// NewService creates a chart service reading series from source.
func NewService(source Source, logger *zap.Logger) *Service {
	return &Service{source: source, logger: logger, seed: MockSeed}
}

// ChartData fetches the series for a coin and renders it. When the API is
// still throttling after the client's single retry, it degrades to the
// seeded mock series and says so in the result note.
func (s *Service) ChartData(ctx context.Context, coinID, days, interval string) (*Result, error) {
	series, err := s.source.MarketChart(ctx, coinID, days, interval)
	if err != nil {
		var throttled *coingecko.ThrottledError
		if errors.As(err, &throttled) {
			s.logger.Warn("market chart throttled, serving mock data",
				zap.String("coin", coinID),
				zap.String("days", days),
			)
			return s.mockResult(coinID, days), nil
		}
		return nil, err
	}

	if len(series.Prices) == 0 {
		return nil, ErrNoData
	}

	line, summary := Compose(series)
	s.logger.Debug("chart data generated",
		zap.String("coin", coinID),
		zap.Int("points", len(series.Prices)),
	)

	return &Result{
		ChartData: chartJSON(line),
		Summary:   summary,
		Timestamp: time.Now(),
	}, nil
}

// mockResult renders the deterministic mock series for a coin.
func (s *Service) mockResult(coinID, days string) *Result {
	n, err := strconv.Atoi(days)
	if err != nil || n <= 0 {
		n = MockDays
	}

	series := MockSeries(coinID, n, s.seed)
	line, summary := Compose(series)

	return &Result{
		ChartData: chartJSON(line),
		Summary:   summary,
		Note:      "Mock data (API rate limited)",
		Timestamp: time.Now(),
	}
}

// Compose builds the price/volume chart for a series: a filled price line on
// the right-hand axis overlaid with volume bars, green when the price held
// or rose against the previous point and red when it fell.
func Compose(series *coingecko.MarketChart) (*charts.Line, Summary) {
	n := len(series.Prices)
	dates := make([]string, n)
	priceData := make([]opts.LineData, n)
	volumeData := make([]opts.BarData, n)

	for i, point := range series.Prices {
		dates[i] = time.UnixMilli(int64(point[0])).Format("2006-01-02")
		priceData[i] = opts.LineData{Value: point[1]}

		color := volumeUpColor
		if i > 0 && point[1] < series.Prices[i-1][1] {
			color = volumeDownColor
		}
		volumeData[i] = opts.BarData{
			Value:     volumeAt(series, i),
			ItemStyle: &opts.ItemStyle{Color: color, Opacity: 0.6},
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "cryptobot chart",
			Height:    "300px",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithGridOpts(opts.Grid{Left: "50", Right: "50", Top: "30", Bottom: "50"}),
	)
	// Volume bars live on a hidden secondary axis so their scale does not
	// squash the price line.
	line.ExtendYAxis(opts.YAxis{Type: "value", Show: opts.Bool(false)})

	line.SetXAxis(dates).AddSeries("Price", priceData,
		charts.WithLineStyleOpts(opts.LineStyle{Color: priceColor, Width: 2}),
		charts.WithAreaStyleOpts(opts.AreaStyle{Color: priceFillColor, Opacity: 0.1}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: priceColor}),
	)

	bar := charts.NewBar()
	bar.SetXAxis(dates).AddSeries("Volume", volumeData,
		charts.WithBarChartOpts(opts.BarChart{YAxisIndex: 1}),
	)
	line.Overlap(bar)

	return line, summarize(series)
}

// chartJSON validates the chart and returns its echarts option map.
func chartJSON(line *charts.Line) map[string]interface{} {
	line.Validate()
	return line.JSON()
}

// summarize derives the headline figures from a series.
func summarize(series *coingecko.MarketChart) Summary {
	n := len(series.Prices)
	if n == 0 {
		return Summary{}
	}

	s := Summary{
		CurrentPrice: series.Prices[n-1][1],
		Volume24h:    volumeAt(series, n-1),
	}
	if n > 1 {
		prev := series.Prices[n-2][1]
		if prev != 0 {
			s.PriceChange24h = (s.CurrentPrice - prev) / prev * 100
		}
	}
	return s
}

// volumeAt aligns the volume series to price index i, zero when missing.
func volumeAt(series *coingecko.MarketChart, i int) float64 {
	if i < len(series.TotalVolumes) {
		return series.TotalVolumes[i][1]
	}
	return 0
}
