package chart

import "strings"

// Coin is one entry of the chart selector list.
type Coin struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Timeframe maps a selector value to the day span requested upstream.
type Timeframe struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Days  string `json:"days"`
}

// DefaultTimeframe is used when the caller picks none.
const DefaultTimeframe = "5Y"

var supportedCoins = []Coin{
	{ID: "bitcoin", Name: "Bitcoin", Symbol: "BTC"},
	{ID: "ethereum", Name: "Ethereum", Symbol: "ETH"},
	{ID: "solana", Name: "Solana", Symbol: "SOL"},
	{ID: "binancecoin", Name: "BNB", Symbol: "BNB"},
	{ID: "cardano", Name: "Cardano", Symbol: "ADA"},
	{ID: "ripple", Name: "XRP", Symbol: "XRP"},
	{ID: "avalanche-2", Name: "Avalanche", Symbol: "AVAX"},
	{ID: "matic-network", Name: "Polygon", Symbol: "MATIC"},
	{ID: "dogecoin", Name: "Dogecoin", Symbol: "DOGE"},
	{ID: "polkadot", Name: "Polkadot", Symbol: "DOT"},
}

var timeframes = []Timeframe{
	{Value: "1D", Label: "1 Day", Days: "1"},
	{Value: "1W", Label: "1 Week", Days: "7"},
	{Value: "1M", Label: "1 Month", Days: "30"},
	{Value: "3M", Label: "3 Months", Days: "90"},
	{Value: "1Y", Label: "1 Year", Days: "365"},
	{Value: "5Y", Label: "5 Years", Days: "1825"},
}

// SupportedCoins lists the coins offered by the chart selector.
func SupportedCoins() []Coin {
	coins := make([]Coin, len(supportedCoins))
	copy(coins, supportedCoins)
	return coins
}

// Timeframes lists the selectable chart spans.
func Timeframes() []Timeframe {
	tfs := make([]Timeframe, len(timeframes))
	copy(tfs, timeframes)
	return tfs
}

// TimeframeByValue resolves a selector value, case-insensitively.
func TimeframeByValue(value string) (Timeframe, bool) {
	for _, tf := range timeframes {
		if strings.EqualFold(tf.Value, value) {
			return tf, true
		}
	}
	return Timeframe{}, false
}
