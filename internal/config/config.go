package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/newthinker/pricelog/internal/core"
	"github.com/spf13/viper"
)

// Source kinds
const (
	KindCrypto = "crypto"
	KindEquity = "equity"
)

type Config struct {
	Interval  time.Duration   `mapstructure:"interval"`
	DataDir   string          `mapstructure:"data_dir"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
	Yahoo     YahooConfig     `mapstructure:"yahoo"`
	Sources   []SourceConfig  `mapstructure:"sources"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Log       LogConfig       `mapstructure:"log"`
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type CoinGeckoConfig struct {
	BaseURL   string  `mapstructure:"base_url"`
	APIKey    string  `mapstructure:"api_key"`
	RateLimit float64 `mapstructure:"rate_limit"` // requests per second, 0 = unlimited
	Burst     int     `mapstructure:"burst"`
}

type YahooConfig struct {
	BaseURL   string  `mapstructure:"base_url"`
	RateLimit float64 `mapstructure:"rate_limit"`
	Burst     int     `mapstructure:"burst"`
}

// SourceConfig describes one price source. Order in the file is polling order.
type SourceConfig struct {
	Name   string `mapstructure:"name"`
	Kind   string `mapstructure:"kind"`    // "crypto" or "equity"
	CoinID string `mapstructure:"coin_id"` // crypto: CoinGecko id or ticker
	Symbol string `mapstructure:"symbol"`  // equity: Yahoo symbol
	File   string `mapstructure:"file"`    // optional log file name
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// Load reads configuration from file. An empty path skips the file and
// builds the config from defaults and PRICELOG_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	// Support environment variable overrides, e.g. PRICELOG_COINGECKO_API_KEY
	v.SetEnvPrefix("PRICELOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// setDefaults registers every scalar key so AutomaticEnv can override it
// during Unmarshal. Sources are filled in by applyDefaults.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("interval", d.Interval)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("coingecko.base_url", d.CoinGecko.BaseURL)
	v.SetDefault("coingecko.api_key", d.CoinGecko.APIKey)
	v.SetDefault("coingecko.rate_limit", d.CoinGecko.RateLimit)
	v.SetDefault("coingecko.burst", d.CoinGecko.Burst)
	v.SetDefault("yahoo.base_url", d.Yahoo.BaseURL)
	v.SetDefault("yahoo.rate_limit", d.Yahoo.RateLimit)
	v.SetDefault("yahoo.burst", d.Yahoo.Burst)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.encoding", d.Log.Encoding)
}

// DefaultSources are the three sources polled when none are configured
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{Name: "Bitcoin", Kind: KindCrypto, CoinID: "bitcoin", File: "bitcoin_prices.txt"},
		{Name: "Ethereum", Kind: KindCrypto, CoinID: "ethereum", File: "ethereum_prices.txt"},
		{Name: "S&P 500", Kind: KindEquity, Symbol: "^GSPC", File: "sp500_prices.txt"},
	}
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Interval: 30 * time.Second,
		DataDir:  ".",
		HTTP: HTTPConfig{
			Timeout: 10 * time.Second,
		},
		CoinGecko: CoinGeckoConfig{
			BaseURL: "https://api.coingecko.com/api/v3",
		},
		Yahoo: YahooConfig{
			BaseURL: "https://query2.finance.yahoo.com/v8/finance/chart",
		},
		Sources: DefaultSources(),
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9105",
			Path:    "/metrics",
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// applyDefaults fills fields a config file left unset
func (c *Config) applyDefaults() {
	d := Defaults()
	if c.Interval == 0 {
		c.Interval = d.Interval
	}
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = d.HTTP.Timeout
	}
	if c.CoinGecko.BaseURL == "" {
		c.CoinGecko.BaseURL = d.CoinGecko.BaseURL
	}
	if c.Yahoo.BaseURL == "" {
		c.Yahoo.BaseURL = d.Yahoo.BaseURL
	}
	if len(c.Sources) == 0 {
		c.Sources = d.Sources
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = d.Metrics.Addr
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = d.Metrics.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Encoding == "" {
		c.Log.Encoding = d.Log.Encoding
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("interval must be positive, got %s", c.Interval))
	}
	if c.HTTP.Timeout < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("http timeout cannot be negative, got %s", c.HTTP.Timeout))
	}
	if c.CoinGecko.RateLimit < 0 || c.Yahoo.RateLimit < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("rate_limit cannot be negative"))
	}

	if len(c.Sources) == 0 {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("at least one source is required"))
	}

	seen := make(map[string]struct{}, len(c.Sources))
	for i, s := range c.Sources {
		if s.Name == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("sources[%d]: name required", i))
		}
		if _, dup := seen[s.Name]; dup {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("sources[%d]: duplicate name %q", i, s.Name))
		}
		seen[s.Name] = struct{}{}

		switch s.Kind {
		case KindCrypto:
			if s.CoinID == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("sources[%d] %s: coin_id required for crypto sources", i, s.Name))
			}
		case KindEquity:
			if s.Symbol == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("sources[%d] %s: symbol required for equity sources", i, s.Name))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("sources[%d] %s: unknown kind %q", i, s.Name, s.Kind))
		}
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("metrics addr required when metrics are enabled"))
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	switch c.Log.Encoding {
	case "", "console", "json":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown log encoding %q", c.Log.Encoding))
	}

	return nil
}

// Files maps source names to pinned log file names
func (c *Config) Files() map[string]string {
	files := make(map[string]string, len(c.Sources))
	for _, s := range c.Sources {
		if s.File != "" {
			files[s.Name] = s.File
		}
	}
	return files
}
