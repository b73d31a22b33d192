// Package config provides configuration management for the trading simulator.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	apperrors "simtrader/internal/errors"
	"simtrader/internal/logging"
	"simtrader/internal/market"
	"simtrader/internal/models"
)

// EnvPrefix prefixes environment overrides, e.g. SIMTRADER_MARKET_SEED.
const EnvPrefix = "SIMTRADER"

// Config holds all application configuration.
type Config struct {
	Market  MarketConfig  `mapstructure:"market"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// MarketConfig holds the opening market and the price simulation settings.
type MarketConfig struct {
	VolatilityPercent float64       `mapstructure:"volatility_percent"`
	Seed              int64         `mapstructure:"seed"` // 0 picks a random seed
	Stocks            []StockConfig `mapstructure:"stocks"`
}

// StockConfig is one opening listing.
type StockConfig struct {
	Symbol string  `mapstructure:"symbol"`
	Name   string  `mapstructure:"name"`
	Price  float64 `mapstructure:"price"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	Currency     string `mapstructure:"currency"` // ISO 4217 code with two fraction digits
}

// LoggingConfig holds diagnostic logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/simtrader"
	}
	return filepath.Join(home, ".config", "simtrader")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Load reads configuration. An explicit configFile must exist; otherwise
// config.toml in the default directory is used when present and built-in
// defaults apply when it is not. Nothing is ever written to disk.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(DefaultConfigDir())
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config.toml: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Logging.FilePath = ExpandHome(cfg.Logging.FilePath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults are static; decoding them cannot fail.
	_ = v.Unmarshal(cfg)
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("market.volatility_percent", market.DefaultVolatilityPercent)
	v.SetDefault("market.seed", 0)

	listings := market.DefaultListings()
	stocks := make([]map[string]interface{}, 0, len(listings))
	for _, l := range listings {
		stocks = append(stocks, map[string]interface{}{
			"symbol": l.Symbol,
			"name":   l.Name,
			"price":  l.Price.InexactFloat64(),
		})
	}
	v.SetDefault("market.stocks", stocks)

	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.currency", money.USD)

	logCfg := logging.DefaultLogConfig()
	v.SetDefault("logging.level", logCfg.Level)
	v.SetDefault("logging.file", logCfg.File)
	v.SetDefault("logging.file_path", logCfg.FilePath)
	v.SetDefault("logging.max_size", logCfg.MaxSize)
	v.SetDefault("logging.max_backups", logCfg.MaxBackups)
	v.SetDefault("logging.max_age", logCfg.MaxAge)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Market.VolatilityPercent <= 0 || c.Market.VolatilityPercent >= 100 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid,
			"volatility_percent must be between 0 and 100 (exclusive), got %v", c.Market.VolatilityPercent)
	}

	if len(c.Market.Stocks) == 0 {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "market must list at least one stock")
	}
	seen := make(map[string]bool, len(c.Market.Stocks))
	for _, s := range c.Market.Stocks {
		sym := models.NormalizeSymbol(s.Symbol)
		if sym == "" {
			return apperrors.Wrap(apperrors.ErrConfigInvalid, "stock symbol cannot be empty")
		}
		if seen[sym] {
			return apperrors.Wrapf(apperrors.ErrConfigInvalid, "duplicate stock symbol %s", sym)
		}
		seen[sym] = true
		if err := models.ValidatePrice(decimal.NewFromFloat(s.Price)); err != nil {
			return apperrors.Wrapf(apperrors.ErrConfigInvalid, "stock %s: %v", sym, err)
		}
	}

	cur := money.GetCurrency(c.UI.Currency)
	if cur == nil {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "unknown currency %q", c.UI.Currency)
	}
	if cur.Fraction != 2 {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "currency %s must use two fraction digits", cur.Code)
	}

	if !logging.ValidLevel(c.Logging.Level) {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "invalid log level %q", c.Logging.Level)
	}

	return nil
}

// Listings converts the configured stocks into market listings.
func (c *Config) Listings() []market.Listing {
	listings := make([]market.Listing, 0, len(c.Market.Stocks))
	for _, s := range c.Market.Stocks {
		listings = append(listings, market.Listing{
			Symbol: s.Symbol,
			Name:   s.Name,
			Price:  decimal.NewFromFloat(s.Price),
		})
	}
	return listings
}

// LogConfig converts the logging section for the logging package.
func (c *Config) LogConfig() logging.LogConfig {
	cfg := logging.DefaultLogConfig()
	cfg.Level = c.Logging.Level
	cfg.File = c.Logging.File
	cfg.FilePath = c.Logging.FilePath
	cfg.MaxSize = c.Logging.MaxSize
	cfg.MaxBackups = c.Logging.MaxBackups
	cfg.MaxAge = c.Logging.MaxAge
	return cfg
}
