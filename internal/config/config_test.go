package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-pricechart/internal/common"
	"go-pricechart/pkg/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	path := writeConfig(t, `
server:
  host: 0.0.0.0
  port: 6000
http:
  port: 9000
log_level: debug
seed: 42
tick_interval_sec: 2
pairs:
  - base: solana
    quote: usd-coin
    base_price: 150
    volatility: 0.03
live_pairs:
  - base: ethereum
    quote: usd-coin
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 6000, cfg.GetGRPCPort())
	assert.Equal(t, 9000, cfg.GetHTTPPort())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(42), cfg.GetSeed())
	assert.Equal(t, 2*time.Second, cfg.GetTickInterval())
	require.Len(t, cfg.Pairs, 1)
	assert.Equal(t, 150.0, cfg.Pairs[0].BasePrice)
	require.Len(t, cfg.LivePairs, 1)
	assert.Equal(t, "usd-coin", cfg.LivePairs[0].Quote)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)

	assert.Equal(t, common.DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, common.DefaultGRPCPort, cfg.GetGRPCPort())
	assert.Equal(t, common.DefaultHTTPPort, cfg.GetHTTPPort())
	assert.Equal(t, common.DefaultChannelBufferSize, cfg.GetChannelBufferSize())
	assert.Equal(t, common.DefaultStatsCron, cfg.GetStatsCron())
	assert.NotZero(t, cfg.GetSeed())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	t.Setenv("PRICECHART_GRPC_PORT", "7001")
	t.Setenv("PRICECHART_HTTP_PORT", "7002")
	t.Setenv("PRICECHART_LOG_LEVEL", "warn")
	t.Setenv("PRICECHART_SEED", "7")
	t.Setenv("PRICECHART_TIMEZONE", "UTC")

	cfg, err := LoadConfig(writeConfig(t, "log_level: info\n"))
	require.NoError(t, err)
	assert.Equal(t, 7001, cfg.GetGRPCPort())
	assert.Equal(t, 7002, cfg.GetHTTPPort())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, int64(7), cfg.GetSeed())

	loc, err := cfg.GetLocation()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoadConfig_BadEnv(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	t.Setenv("PRICECHART_GRPC_PORT", "not-a-port")
	_, err := LoadConfig(writeConfig(t, ""))
	assert.Error(t, err)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	t.Setenv("NO_DOTENV", "1")
	_, err := LoadConfig(writeConfig(t, "server: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"port out of range", Config{Server: ServerConfig{Port: 70000}}},
		{"pair without quote", Config{Pairs: []PairConfig{{Base: "x", BasePrice: 1}}}},
		{"pair zero price", Config{Pairs: []PairConfig{{Base: "x", Quote: "y"}}}},
		{"pair negative volatility", Config{Pairs: []PairConfig{{Base: "x", Quote: "y", BasePrice: 1, Volatility: -1}}}},
		{"token without price", Config{Tokens: []models.Token{{ID: "x"}}}},
		{"bad timezone", Config{Timezone: "Mars/Olympus"}},
	}
	for _, tt := range tests {
		assert.Error(t, tt.cfg.Validate(), tt.name)
	}

	assert.NoError(t, (&Config{}).Validate())
}
