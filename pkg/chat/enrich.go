package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/marketscope/cryptobot/pkg/coingecko"
)

// cryptoKeywords trigger market-data enrichment when any of them appears in
// the user message.
var cryptoKeywords = []string{
	"bitcoin", "btc", "ethereum", "eth", "price", "market", "crypto", "cryptocurrency",
	"altcoin", "defi", "nft", "blockchain", "trading", "pump", "dump", "moon",
	"hodl", "whale", "bull", "bear", "market cap", "volume", "doge", "ada",
	"bnb", "sol", "matic", "avax", "dot", "link", "uni", "sushi",
}

// GlobalSource supplies global market aggregates.
type GlobalSource interface {
	Global(ctx context.Context) (*coingecko.GlobalMarket, error)
}

// Enricher appends live market aggregates to crypto-related user messages.
// Enrichment is best-effort: any failure leaves the message untouched.
type Enricher struct {
	source  GlobalSource
	logger  *zap.Logger
	printer *message.Printer
}

// NewEnricher creates an Enricher backed by the given market-data source.
func NewEnricher(source GlobalSource, logger *zap.Logger) *Enricher {
	return &Enricher{
		source:  source,
		logger:  logger,
		printer: message.NewPrinter(language.English),
	}
}

// Enrich returns the message with a live-market-data line appended when the
// message mentions a crypto keyword and the aggregates fetch succeeds. In
// every other case the original message comes back unchanged.
func (e *Enricher) Enrich(ctx context.Context, userMessage string) string {
	if !mentionsCrypto(userMessage) {
		return userMessage
	}

	global, err := e.source.Global(ctx)
	if err != nil {
		e.logger.Warn("market data enrichment skipped", zap.Error(err))
		return userMessage
	}

	marketCap, capOK := global.TotalMarketCap["usd"]
	volume, volOK := global.TotalVolume["usd"]
	if !capOK || !volOK {
		e.logger.Warn("market data enrichment skipped: no usd aggregates")
		return userMessage
	}

	return fmt.Sprintf("%s\n\nLive Market Data: Total Market Cap: $%s, 24h Vol: $%s",
		userMessage, e.formatUSD(marketCap), e.formatUSD(volume))
}

// formatUSD renders a figure as a comma-grouped integer ("1,000,000,000").
func (e *Enricher) formatUSD(v float64) string {
	return e.printer.Sprintf("%.0f", v)
}

// mentionsCrypto reports whether the message contains any crypto keyword,
// case-insensitively.
func mentionsCrypto(userMessage string) bool {
	lower := strings.ToLower(userMessage)
	for _, kw := range cryptoKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
