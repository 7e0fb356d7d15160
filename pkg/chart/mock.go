package chart

import (
	"math"
	"math/rand"
	"time"

	"github.com/marketscope/cryptobot/pkg/coingecko"
)

const (
	// MockSeed makes mock series reproducible across runs.
	MockSeed int64 = 42

	// MockDays is the default span of a mock series (5 years, daily).
	MockDays = 1825

	// mockDefaultBase is the base price for coins absent from the table.
	mockDefaultBase = 100
)

// mockBasePrices anchor the synthetic series per coin.
var mockBasePrices = map[string]float64{
	"bitcoin":       45000,
	"ethereum":      2800,
	"solana":        100,
	"binancecoin":   300,
	"cardano":       0.5,
	"ripple":        0.6,
	"avalanche-2":   35,
	"matic-network": 0.8,
	"dogecoin":      0.08,
	"polkadot":      7,
}

// MockSeries generates a deterministic daily price/volume series ending
// today: an upward linear trend with gaussian noise and a seasonal swing,
// floored at a tenth of the base price, plus lognormal volumes scaled up on
// big moves.
func MockSeries(coinID string, days int, seed int64) *coingecko.MarketChart {
	if days <= 0 {
		days = MockDays
	}

	base := mockBasePrices[coinID]
	if base == 0 {
		base = mockDefaultBase
	}

	rng := rand.New(rand.NewSource(seed))
	end := time.Now()

	prices := make([][2]float64, days)
	volumes := make([][2]float64, days)

	var prev float64
	for i := 0; i < days; i++ {
		ts := float64(end.AddDate(0, 0, -(days - 1 - i)).UnixMilli())

		var trend, seasonal float64
		if days > 1 {
			progress := float64(i) / float64(days-1)
			trend = 2 * progress
			seasonal = 0.1 * math.Sin(4*math.Pi*progress)
		}
		noise := rng.NormFloat64() * 0.02

		price := base * (1 + trend + noise + seasonal)
		if price < base*0.1 {
			price = base * 0.1
		}

		// The first point has no prior move, so its volume is unscaled.
		diff := 0.0
		if i > 0 {
			diff = math.Abs(price - prev)
		}
		volume := math.Exp(15+0.5*rng.NormFloat64()) * (1 + 0.5*diff)

		prices[i] = [2]float64{ts, price}
		volumes[i] = [2]float64{ts, volume}
		prev = price
	}

	return &coingecko.MarketChart{Prices: prices, TotalVolumes: volumes}
}
