package coingecko

// GlobalMarket holds the global market aggregates used for message
// enrichment. Figures are keyed by fiat currency ("usd", "eur", ...).
type GlobalMarket struct {
	TotalMarketCap           map[string]float64 `json:"total_market_cap"`
	TotalVolume              map[string]float64 `json:"total_volume"`
	MarketCapPercentage      map[string]float64 `json:"market_cap_percentage"`
	MarketCapChangePct24hUSD float64            `json:"market_cap_change_percentage_24h_usd"`
	ActiveCryptocurrencies   int                `json:"active_cryptocurrencies"`
	Markets                  int                `json:"markets"`
	UpdatedAt                int64              `json:"updated_at"`
}

// globalEnvelope is the wrapper object returned by /global.
type globalEnvelope struct {
	Data GlobalMarket `json:"data"`
}

// MarketCoin is one row of the /coins/markets listing.
type MarketCoin struct {
	ID                       string  `json:"id"`
	Symbol                   string  `json:"symbol"`
	Name                     string  `json:"name"`
	Image                    string  `json:"image"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	MarketCapRank            int     `json:"market_cap_rank"`
	TotalVolume              float64 `json:"total_volume"`
	High24h                  float64 `json:"high_24h"`
	Low24h                   float64 `json:"low_24h"`
	PriceChange24h           float64 `json:"price_change_24h"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
}

// CoinDetail is the subset of /coins/{id} the service exposes.
type CoinDetail struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank int    `json:"market_cap_rank"`

	Description struct {
		En string `json:"en"`
	} `json:"description"`

	Image struct {
		Thumb string `json:"thumb"`
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"image"`

	Links struct {
		Homepage []string `json:"homepage"`
	} `json:"links"`

	MarketData struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		MarketCap                map[string]float64 `json:"market_cap"`
		TotalVolume              map[string]float64 `json:"total_volume"`
		High24h                  map[string]float64 `json:"high_24h"`
		Low24h                   map[string]float64 `json:"low_24h"`
		PriceChangePercentage24h float64            `json:"price_change_percentage_24h"`
		CirculatingSupply        float64            `json:"circulating_supply"`
		TotalSupply              float64            `json:"total_supply"`
	} `json:"market_data"`
}

// MarketChart holds a historical price/volume series. Points are
// [timestamp_ms, value] pairs, oldest first.
type MarketChart struct {
	Prices       [][2]float64 `json:"prices"`
	MarketCaps   [][2]float64 `json:"market_caps"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}
