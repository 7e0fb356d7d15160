package bot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketscope/cryptobot/pkg/coingecko"
	"github.com/marketscope/cryptobot/pkg/llm"
)

// clearConfigEnv blanks every variable LoadConfig reads so tests do not
// depend on the host environment.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL", "COINGECKO_API_BASE", "PORT"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.ListenAddr)
	assert.Equal(t, "gpt-4-turbo-preview", cfg.Model)
	assert.Equal(t, llm.DefaultBaseURL, cfg.OpenAIBaseURL)
	assert.Equal(t, coingecko.DefaultBaseURL, cfg.CoinGeckoBaseURL)
	assert.Empty(t, cfg.OpenAIAPIKey)
	assert.False(t, cfg.Debug)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("COINGECKO_API_BASE", "http://localhost:9998")
	t.Setenv("PORT", "9000")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "http://localhost:9999/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "http://localhost:9998", cfg.CoinGeckoBaseURL)
	assert.Equal(t, ":9000", cfg.ListenAddr)
}

func TestLoadConfigFile(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "cryptobot.toml")
	data := "listen_addr = \":9999\"\nmodel = \"gpt-4o-mini\"\ndebug = true\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.True(t, cfg.Debug)
	assert.Equal(t, llm.DefaultBaseURL, cfg.OpenAIBaseURL)
}

func TestLoadConfigEnvWinsOverFile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENAI_MODEL", "gpt-4o")

	path := filepath.Join(t.TempDir(), "cryptobot.toml")
	require.NoError(t, os.WriteFile(path, []byte("model = \"gpt-4o-mini\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.Model)
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearConfigEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
