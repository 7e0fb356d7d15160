package bot

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/marketscope/cryptobot/pkg/coingecko"
	"github.com/marketscope/cryptobot/pkg/llm"
)

// Config is the server configuration.
type Config struct {
	// Address to listen on (e.g., ":8000")
	ListenAddr string `toml:"listen_addr"`

	// Model requested from the completions API.
	Model string `toml:"model"`

	// OpenAIAPIKey authenticates completions calls. Environment only,
	// never read from the config file.
	OpenAIAPIKey string `toml:"-"`

	// OpenAIBaseURL overrides the completions API endpoint.
	OpenAIBaseURL string `toml:"openai_base_url"`

	// CoinGeckoBaseURL overrides the market-data API endpoint.
	CoinGeckoBaseURL string `toml:"coingecko_base_url"`

	// Debug enables debug logging.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr:       ":8000",
		Model:            "gpt-4-turbo-preview",
		OpenAIBaseURL:    llm.DefaultBaseURL,
		CoinGeckoBaseURL: coingecko.DefaultBaseURL,
	}
}

// LoadConfig assembles the configuration: defaults, then the optional TOML
// file, then environment variables. A .env file in the working directory is
// honored, with real environment variables winning.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	_ = godotenv.Load()

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.OpenAIBaseURL = v
	}
	if v := os.Getenv("COINGECKO_API_BASE"); v != "" {
		cfg.CoinGeckoBaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.ListenAddr = ":" + v
	}

	return cfg, nil
}
