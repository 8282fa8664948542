// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config carries the optional knobs of the calculator. Everything has a
// working default: with no config file and no environment the tool behaves
// exactly as its flag defaults describe.
type Config struct {
	Fees    Fees    `mapstructure:"fees"`
	Report  Report  `mapstructure:"report"`
	OCR     OCR     `mapstructure:"ocr"`
	Logging Logging `mapstructure:"logging"`
}

// Fees are default fee parameters applied when the matching flag is absent.
// Values are kept as strings so they reach the calculator as exact decimals.
type Fees struct {
	ProfitFeePct  string `mapstructure:"profit_fee_pct"`
	TakerFeePct   string `mapstructure:"taker_fee_pct"`
	TradingFeePct string `mapstructure:"trading_fee_pct"`
	Gas           string `mapstructure:"gas"`
}

type Report struct {
	OutputDir string `mapstructure:"output_dir"` // default report directory
	Title     string `mapstructure:"title"`      // default market title
}

type OCR struct {
	TesseractPath string `mapstructure:"tesseract_path"` // engine override, empty means PATH lookup
}

type Logging struct {
	Debug      bool   `mapstructure:"debug"`
	LogFile    string `mapstructure:"log_file"` // empty disables file logging
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// DefaultPath is where Load looks when no explicit config path is given.
const DefaultPath = "configs/config.yaml"

// EnvPrefix scopes environment overrides, e.g. POLYPNL_FEES_TAKER_FEE_PCT.
const EnvPrefix = "POLYPNL"

// Load reads configuration from file, environment and built-in defaults, in
// ascending precedence order: defaults < file < env. An empty path means the
// default location, which may be absent; an explicitly given path must exist.
func Load(path string) (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	optional := path == ""
	if optional {
		path = DefaultPath
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if !optional || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return &cfg, validate(&cfg)
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"fees.profit_fee_pct":  "0",
		"fees.taker_fee_pct":   "0",
		"fees.trading_fee_pct": "0",
		"fees.gas":             "0",
		"report.output_dir":    "",
		"report.title":         "",
		"ocr.tesseract_path":   "",
		"logging.debug":        false,
		"logging.log_file":     "",
		"logging.max_size_mb":  100,
		"logging.max_backups":  3,
		"logging.max_age_days": 7,
		"logging.compress":     true,
	}
}

var one = decimal.NewFromInt(1)

func validate(cfg *Config) error {
	for _, fee := range []struct {
		key   string
		value string
	}{
		{"fees.profit_fee_pct", cfg.Fees.ProfitFeePct},
		{"fees.taker_fee_pct", cfg.Fees.TakerFeePct},
		{"fees.trading_fee_pct", cfg.Fees.TradingFeePct},
	} {
		pct, err := decimal.NewFromString(fee.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %q is not a number", fee.key, fee.value)
		}
		if pct.Sign() < 0 || pct.GreaterThanOrEqual(one) {
			return fmt.Errorf("invalid %s: must be in [0, 1)", fee.key)
		}
	}

	gas, err := decimal.NewFromString(cfg.Fees.Gas)
	if err != nil {
		return fmt.Errorf("invalid fees.gas: %q is not a number", cfg.Fees.Gas)
	}
	if gas.Sign() < 0 {
		return fmt.Errorf("invalid fees.gas: must be >= 0")
	}

	if cfg.Logging.MaxSizeMB < 0 || cfg.Logging.MaxBackups < 0 || cfg.Logging.MaxAgeDays < 0 {
		return fmt.Errorf("invalid logging rotation settings: sizes and counts must be >= 0")
	}
	return nil
}
