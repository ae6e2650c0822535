// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/simonvc/shopledger/internal/shop"
)

type Config struct {
	DBPath    string `envconfig:"SHOPLEDGER_DB" default:"ledger.db"`
	Addr      string `envconfig:"SHOPLEDGER_ADDR" default:":8888"`
	ServerURL string `envconfig:"SHOPLEDGER_SERVER" default:"http://localhost:8888"`
	Currency  string `envconfig:"SHOPLEDGER_CURRENCY" default:"EGP"`

	ReadTimeout     time.Duration `envconfig:"SHOPLEDGER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SHOPLEDGER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHOPLEDGER_SHUTDOWN_TIMEOUT" default:"10s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	GotenbergURL string `envconfig:"GOTENBERG_URL"`

	BackupDir  string `envconfig:"BACKUP_DIR" default:"backups"`
	BackupCron string `envconfig:"BACKUP_CRON"`
	BackupKeep int    `envconfig:"BACKUP_KEEP" default:"7"`

	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"600"`
}

// Load reads an optional env file and then the process environment. A
// missing env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DBPath == "" {
		return errors.New("SHOPLEDGER_DB must not be empty")
	}
	if !shop.ValidCurrency(c.Currency) {
		return fmt.Errorf("SHOPLEDGER_CURRENCY %q is not supported", c.Currency)
	}
	if c.BackupKeep < 0 {
		return errors.New("BACKUP_KEEP must not be negative")
	}
	if c.RateLimitPerMinute < 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}

// BackupsEnabled reports whether scheduled backups are configured.
func (c *Config) BackupsEnabled() bool {
	return c != nil && c.BackupCron != ""
}
