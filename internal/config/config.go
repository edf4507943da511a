package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Dex struct {
		BaseURL     string `yaml:"base_url"`
		ScanURL     string `yaml:"scan_url"`
		UserAddress string `yaml:"user_address"`
		PrivateKey  string `yaml:"-"` // environment only
	} `yaml:"dex"`
	Gemini struct {
		Model  string `yaml:"model"`
		APIKey string `yaml:"-"` // environment only
	} `yaml:"gemini"`
	Schedule struct {
		MinInterval Duration `yaml:"min_interval"`
		Cron        string   `yaml:"cron"` // empty = run once and exit
	} `yaml:"schedule"`
	Ledger struct {
		PriceFile      string   `yaml:"price_file"`
		RunFile        string   `yaml:"run_file"`
		ActionFile     string   `yaml:"action_file"`
		PriceRetention Duration `yaml:"price_retention"`
		MaxActions     int      `yaml:"max_actions"`
	} `yaml:"ledger"`
	Policy struct {
		FeeReserve float64 `yaml:"fee_reserve"`
		Slippage   float64 `yaml:"slippage"`
	} `yaml:"policy"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DEX_BASE_URL"); v != "" {
		cfg.Dex.BaseURL = v
	}
	if v := os.Getenv("GALASCAN_URL"); v != "" {
		cfg.Dex.ScanURL = v
	}
	if v := os.Getenv("USER_ADDRESS"); v != "" {
		cfg.Dex.UserAddress = v
	}
	if v := os.Getenv("PRIVATE_KEY"); v != "" {
		cfg.Dex.PrivateKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("RUN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Schedule.MinInterval = Duration{d}
		}
	}
	if v := os.Getenv("RUN_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Dex.BaseURL == "" {
		cfg.Dex.BaseURL = "https://dex-backend-prod1.defi.gala.com"
	}
	if cfg.Dex.ScanURL == "" {
		cfg.Dex.ScanURL = "https://galascan.gala.com"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	if cfg.Schedule.MinInterval.Duration == 0 {
		cfg.Schedule.MinInterval = Duration{time.Hour}
	}
	if cfg.Ledger.PriceFile == "" {
		cfg.Ledger.PriceFile = "data/price_history.csv"
	}
	if cfg.Ledger.RunFile == "" {
		cfg.Ledger.RunFile = "data/last_run.txt"
	}
	if cfg.Ledger.ActionFile == "" {
		cfg.Ledger.ActionFile = "data/history.json"
	}
	if cfg.Ledger.PriceRetention.Duration == 0 {
		cfg.Ledger.PriceRetention = Duration{72 * time.Hour}
	}
	if cfg.Ledger.MaxActions == 0 {
		cfg.Ledger.MaxActions = 20
	}
	if cfg.Policy.FeeReserve == 0 {
		cfg.Policy.FeeReserve = 10
	}
	if cfg.Policy.Slippage == 0 {
		cfg.Policy.Slippage = 0.95
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Dex.UserAddress == "" {
		return fmt.Errorf("dex.user_address (USER_ADDRESS) is required")
	}
	if c.Dex.PrivateKey == "" {
		return fmt.Errorf("PRIVATE_KEY is required")
	}
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Policy.Slippage <= 0 || c.Policy.Slippage > 1 {
		return fmt.Errorf("policy.slippage must be in (0, 1]")
	}
	if c.Policy.FeeReserve < 0 {
		return fmt.Errorf("policy.fee_reserve must not be negative")
	}
	return nil
}
