// Package chat implements the conversation pipeline in front of the
// completions API: greeting short-circuiting, market-data enrichment and
// upstream context building.
package chat

import (
	"math/rand"
	"strings"
	"sync"
)

// InstantModel is the model name reported for canned greeting responses,
// which never touch the completions API.
const InstantModel = "instant-response"

// greetingPatterns are matched against the whole normalized message.
// "hi there everyone" is not a greeting.
var greetingPatterns = map[string]struct{}{
	"hi":             {},
	"hello":          {},
	"hey":            {},
	"hi there":       {},
	"hello there":    {},
	"good morning":   {},
	"good afternoon": {},
	"good evening":   {},
	"what's up":      {},
	"whats up":       {},
	"sup":            {},
	"yo":             {},
}

// greetingResponses is the canned response pool.
var greetingResponses = []string{
	"Hi there! 🚀 Ready to dive into crypto? Ask me about prices, analysis, or any coin!",
	"Hello! 📈 I'm your crypto research assistant. What would you like to know about the markets today?",
	"Hey! 💎 Looking for crypto insights? I can help with trading, DeFi, NFTs, and more!",
	"Hi! ⚡ What's on your crypto watchlist today? I'm here to help with analysis and data!",
	"Hello! 🌟 Ready to explore the crypto universe? Ask me anything about blockchain and digital assets!",
	"Hey there! 🔥 The crypto markets are always moving. What can I help you research today?",
	"Hi! 🎯 Your crypto research companion is here. Ask me about any coin, trend, or strategy!",
	"Hello! ⭐ From Bitcoin to DeFi, I've got you covered. What's your crypto question?",
}

// IsGreeting reports whether the message, trimmed and lowercased, is a
// plain greeting.
func IsGreeting(message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	_, ok := greetingPatterns[normalized]
	return ok
}

// Greeter picks canned greeting responses. The random source is seedable so
// tests can pin the selection; the mutex makes it safe to share across
// request goroutines.
type Greeter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGreeter creates a Greeter seeded with the given value.
func NewGreeter(seed int64) *Greeter {
	return &Greeter{rng: rand.New(rand.NewSource(seed))}
}

// Respond returns one response from the canned pool.
func (g *Greeter) Respond() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return greetingResponses[g.rng.Intn(len(greetingResponses))]
}
