package chart_test

import (
	"context"
	"encoding/json"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/marketscope/cryptobot/pkg/chart"
	"github.com/marketscope/cryptobot/pkg/coingecko"
)

// stubSource serves a fixed series or error and records the last request.
type stubSource struct {
	series *coingecko.MarketChart
	err    error

	calls    int
	lastID   string
	lastDays string
}

func (s *stubSource) MarketChart(ctx context.Context, id, days, interval string) (*coingecko.MarketChart, error) {
	s.calls++
	s.lastID = id
	s.lastDays = days
	return s.series, s.err
}

// chartOption is the slice of the echarts option map the specs inspect.
type chartOption struct {
	Series []struct {
		Name string `json:"name"`
		Type string `json:"type"`
		Data []struct {
			Value     float64 `json:"value"`
			ItemStyle struct {
				Color string `json:"color"`
			} `json:"itemStyle"`
		} `json:"data"`
	} `json:"series"`
	XAxis []struct {
		Data []string `json:"data"`
	} `json:"xAxis"`
}

func decodeOption(m map[string]interface{}) chartOption {
	raw, err := json.Marshal(m)
	Expect(err).NotTo(HaveOccurred())
	var opt chartOption
	Expect(json.Unmarshal(raw, &opt)).To(Succeed())
	return opt
}

func testSeries() *coingecko.MarketChart {
	return &coingecko.MarketChart{
		Prices: [][2]float64{
			{1700000000000, 100},
			{1700086400000, 110},
			{1700172800000, 105},
		},
		TotalVolumes: [][2]float64{
			{1700000000000, 10},
			{1700086400000, 20},
			{1700172800000, 30},
		},
	}
}

var _ = Describe("Compose", func() {
	It("builds a price line overlaid with volume bars", func() {
		line, _ := chart.Compose(testSeries())
		line.Validate()
		opt := decodeOption(line.JSON())

		Expect(opt.Series).To(HaveLen(2))
		Expect(opt.Series[0].Name).To(Equal("Price"))
		Expect(opt.Series[0].Type).To(Equal("line"))
		Expect(opt.Series[1].Name).To(Equal("Volume"))
		Expect(opt.Series[1].Type).To(Equal("bar"))

		Expect(opt.XAxis).NotTo(BeEmpty())
		Expect(opt.XAxis[0].Data).To(HaveLen(3))
	})

	It("colors volume bars by price direction", func() {
		line, _ := chart.Compose(testSeries())
		line.Validate()
		opt := decodeOption(line.JSON())

		bars := opt.Series[1].Data
		Expect(bars).To(HaveLen(3))
		Expect(bars[0].ItemStyle.Color).To(Equal("#2ca02c")) // first bar is green
		Expect(bars[1].ItemStyle.Color).To(Equal("#2ca02c")) // 100 -> 110
		Expect(bars[2].ItemStyle.Color).To(Equal("#d62728")) // 110 -> 105
	})

	It("summarizes the series", func() {
		_, summary := chart.Compose(testSeries())

		Expect(summary.CurrentPrice).To(Equal(105.0))
		Expect(summary.PriceChange24h).To(BeNumerically("~", -4.545, 0.001))
		Expect(summary.Volume24h).To(Equal(30.0))
	})

	It("handles a single-point series", func() {
		series := &coingecko.MarketChart{
			Prices:       [][2]float64{{1700000000000, 100}},
			TotalVolumes: [][2]float64{{1700000000000, 10}},
		}
		_, summary := chart.Compose(series)

		Expect(summary.CurrentPrice).To(Equal(100.0))
		Expect(summary.PriceChange24h).To(BeZero())
	})
})

var _ = Describe("MockSeries", func() {
	It("is deterministic for a given seed", func() {
		a := chart.MockSeries("bitcoin", 30, chart.MockSeed)
		b := chart.MockSeries("bitcoin", 30, chart.MockSeed)

		Expect(a.Prices).To(HaveLen(30))
		for i := range a.Prices {
			Expect(a.Prices[i][1]).To(Equal(b.Prices[i][1]))
			Expect(a.TotalVolumes[i][1]).To(Equal(b.TotalVolumes[i][1]))
		}
	})

	It("floors prices at a tenth of the base", func() {
		series := chart.MockSeries("bitcoin", 365, chart.MockSeed)
		for _, p := range series.Prices {
			Expect(p[1]).To(BeNumerically(">=", 4500.0))
		}
	})

	It("falls back to a default base for unknown coins", func() {
		series := chart.MockSeries("unknowncoin", 10, chart.MockSeed)
		Expect(series.Prices).To(HaveLen(10))
		for _, p := range series.Prices {
			Expect(p[1]).To(BeNumerically(">", 0.0))
		}
	})

	It("generates positive volumes", func() {
		series := chart.MockSeries("ethereum", 50, chart.MockSeed)
		Expect(series.TotalVolumes).To(HaveLen(50))
		for _, v := range series.TotalVolumes {
			Expect(v[1]).To(BeNumerically(">", 0.0))
		}
	})
})

var _ = Describe("Service", func() {
	var (
		source *stubSource
		svc    *chart.Service
		ctx    context.Context
	)

	BeforeEach(func() {
		source = &stubSource{series: testSeries()}
		svc = chart.NewService(source, zap.NewNop())
		ctx = context.Background()
	})

	It("renders live data", func() {
		result, err := svc.ChartData(ctx, "bitcoin", "1825", "daily")
		Expect(err).NotTo(HaveOccurred())

		Expect(result.ChartData).NotTo(BeEmpty())
		Expect(result.CurrentPrice).To(Equal(105.0))
		Expect(result.Note).To(BeEmpty())
		Expect(source.lastID).To(Equal("bitcoin"))
		Expect(source.lastDays).To(Equal("1825"))
	})

	It("falls back to mock data when throttled", func() {
		source.series = nil
		source.err = &coingecko.ThrottledError{}

		result, err := svc.ChartData(ctx, "bitcoin", "30", "daily")
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Note).To(Equal("Mock data (API rate limited)"))
		Expect(result.ChartData).NotTo(BeEmpty())
		Expect(result.CurrentPrice).To(BeNumerically(">", 0.0))
	})

	It("propagates not-found errors", func() {
		source.series = nil
		source.err = &coingecko.NotFoundError{ID: "bogus"}

		_, err := svc.ChartData(ctx, "bogus", "30", "daily")
		var notFound *coingecko.NotFoundError
		Expect(errors.As(err, &notFound)).To(BeTrue())
	})

	It("rejects an empty series", func() {
		source.series = &coingecko.MarketChart{}

		_, err := svc.ChartData(ctx, "bitcoin", "30", "daily")
		Expect(err).To(MatchError(chart.ErrNoData))
	})
})

var _ = Describe("Catalog", func() {
	It("lists ten supported coins", func() {
		coins := chart.SupportedCoins()
		Expect(coins).To(HaveLen(10))
		Expect(coins[0].ID).To(Equal("bitcoin"))
		Expect(coins[0].Symbol).To(Equal("BTC"))
	})

	It("lists six timeframes", func() {
		Expect(chart.Timeframes()).To(HaveLen(6))
	})

	It("resolves timeframe values case-insensitively", func() {
		tf, ok := chart.TimeframeByValue("1y")
		Expect(ok).To(BeTrue())
		Expect(tf.Days).To(Equal("365"))

		_, ok = chart.TimeframeByValue("2H")
		Expect(ok).To(BeFalse())
	})
})
