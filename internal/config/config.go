package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go-pricechart/internal/common"
	"go-pricechart/pkg/models"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

// PairConfig overrides the generator parameters for one base/quote pair.
type PairConfig struct {
	Base       string  `yaml:"base"`
	Quote      string  `yaml:"quote"`
	BasePrice  float64 `yaml:"base_price"`
	Volatility float64 `yaml:"volatility"`
}

type LivePair struct {
	Base  string `yaml:"base"`
	Quote string `yaml:"quote"`
}

type Config struct {
	Server            ServerConfig   `yaml:"server"`
	HTTP              HTTPConfig     `yaml:"http"`
	LogLevel          string         `yaml:"log_level"`
	Seed              int64          `yaml:"seed"`
	Timezone          string         `yaml:"timezone"`
	TickIntervalSec   int            `yaml:"tick_interval_sec"`
	ChannelBufferSize int            `yaml:"channel_buffer_size"`
	StatsCron         string         `yaml:"stats_cron"`
	Pairs             []PairConfig   `yaml:"pairs"`
	Tokens            []models.Token `yaml:"tokens"`
	LivePairs         []LivePair     `yaml:"live_pairs"`
}

// LoadConfig reads the YAML file at path, then applies .env and environment
// overrides. A missing file yields a config built from defaults.
func LoadConfig(path string) (*Config, error) {
	config := &Config{
		LogLevel: common.DefaultLogLevel,
	}

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if os.Getenv("NO_DOTENV") != "1" {
		// Existing environment wins over .env.
		_ = godotenv.Load()
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PRICECHART_GRPC_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PRICECHART_GRPC_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("PRICECHART_HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PRICECHART_HTTP_PORT: %w", err)
		}
		c.HTTP.Port = port
	}
	if v := os.Getenv("PRICECHART_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PRICECHART_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("PRICECHART_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("PRICECHART_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	return nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	for _, p := range c.Pairs {
		if p.Base == "" || p.Quote == "" {
			return fmt.Errorf("pairs: base and quote are required")
		}
		if p.BasePrice <= 0 {
			return fmt.Errorf("pairs %s-%s: base_price must be positive", p.Base, p.Quote)
		}
		if p.Volatility < 0 {
			return fmt.Errorf("pairs %s-%s: volatility must not be negative", p.Base, p.Quote)
		}
	}
	for _, t := range c.Tokens {
		if t.ID == "" {
			return fmt.Errorf("tokens: id is required")
		}
		if t.Price <= 0 {
			return fmt.Errorf("tokens %s: price must be positive", t.ID)
		}
	}
	for _, lp := range c.LivePairs {
		if lp.Base == "" || lp.Quote == "" {
			return fmt.Errorf("live_pairs: base and quote are required")
		}
	}
	if _, err := c.GetLocation(); err != nil {
		return err
	}
	return nil
}

func (c *Config) GetGRPCPort() int {
	if c.Server.Port <= 0 {
		return common.DefaultGRPCPort
	}
	return c.Server.Port
}

func (c *Config) GetHTTPPort() int {
	if c.HTTP.Port <= 0 {
		return common.DefaultHTTPPort
	}
	return c.HTTP.Port
}

func (c *Config) GetTickInterval() time.Duration {
	if c.TickIntervalSec <= 0 {
		return time.Duration(common.DefaultTickIntervalSec) * time.Second
	}
	return time.Duration(c.TickIntervalSec) * time.Second
}

func (c *Config) GetChannelBufferSize() int {
	if c.ChannelBufferSize <= 0 {
		return common.DefaultChannelBufferSize
	}
	return c.ChannelBufferSize
}

func (c *Config) GetStatsCron() string {
	if c.StatsCron == "" {
		return common.DefaultStatsCron
	}
	return c.StatsCron
}

// GetSeed returns the configured seed, or a time-based one when unset.
func (c *Config) GetSeed() int64 {
	if c.Seed == 0 {
		return time.Now().UnixNano()
	}
	return c.Seed
}

func (c *Config) GetLocation() (*time.Location, error) {
	name := c.Timezone
	if name == "" {
		name = common.DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", name, err)
	}
	return loc, nil
}
