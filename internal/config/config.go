// Package config loads wablast configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string `mapstructure:"db_path"`

	Log     Log     `mapstructure:"log"`
	Browser Browser `mapstructure:"browser"`
	Send    Send    `mapstructure:"send"`
}

// Log configures logging output.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Browser configures the Chrome session.
type Browser struct {
	ChromePath       string `mapstructure:"chrome_path"`
	UserDataDir      string `mapstructure:"user_data_dir"`
	Headless         bool   `mapstructure:"headless"`
	QRTimeoutSeconds int    `mapstructure:"qr_timeout_seconds"`
}

// QRTimeout returns the QR scan timeout as a duration.
func (b Browser) QRTimeout() time.Duration {
	return time.Duration(b.QRTimeoutSeconds) * time.Second
}

// Send configures pacing and retries for the batch loop.
type Send struct {
	MessagesPerMinute   int     `mapstructure:"messages_per_minute"`
	BurstSize           int     `mapstructure:"burst_size"`
	MaxRetries          int     `mapstructure:"max_retries"`
	InitialDelaySeconds int     `mapstructure:"initial_delay_seconds"`
	MaxDelaySeconds     int     `mapstructure:"max_delay_seconds"`
	BackoffMultiplier   float64 `mapstructure:"backoff_multiplier"`
}

// DefaultDir returns the configuration directory, ~/.config/wablast.
func DefaultDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".config", "wablast")
	}
	return "."
}

// Load reads configuration from the given file path. When path is empty the
// default location is searched; a missing file is not an error, defaults and
// WABLAST_* environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", filepath.Join(DefaultDir(), "wablast.db"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("browser.chrome_path", "")
	v.SetDefault("browser.user_data_dir", filepath.Join(DefaultDir(), "chrome-data"))
	v.SetDefault("browser.headless", false)
	v.SetDefault("browser.qr_timeout_seconds", 120)
	v.SetDefault("send.messages_per_minute", 20)
	v.SetDefault("send.burst_size", 3)
	v.SetDefault("send.max_retries", 2)
	v.SetDefault("send.initial_delay_seconds", 2)
	v.SetDefault("send.max_delay_seconds", 30)
	v.SetDefault("send.backoff_multiplier", 2.0)

	v.SetEnvPrefix("WABLAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultDir())
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
