// Package config loads and validates crawler configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs, loadable from a file or from
// CHAMPSTATS_* environment variables.
type Config struct {
	Wiki    WikiConfig    `mapstructure:"wiki"`
	Crawl   CrawlConfig   `mapstructure:"crawl"`
	Browser BrowserConfig `mapstructure:"browser"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// WikiConfig identifies the wiki to crawl.
type WikiConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// CrawlConfig governs pipeline behavior.
type CrawlConfig struct {
	// MaxConcurrentDetails bounds how many stat pages are in flight at once.
	MaxConcurrentDetails int `mapstructure:"max_concurrent_details"`
	// MaxChampions truncates the roster when > 0; 0 processes everything.
	MaxChampions      int `mapstructure:"max_champions"`
	NavAttempts       int `mapstructure:"nav_attempts"`
	NavTimeoutSeconds int `mapstructure:"nav_timeout_seconds"`
}

// BrowserConfig controls the headless browser.
type BrowserConfig struct {
	UserAgent string `mapstructure:"user_agent"`
	Headless  bool   `mapstructure:"headless"`
}

// StorageConfig sets where the dataset and trace archive land. When GCSBucket
// is empty, artifacts are written under OutputDir instead.
type StorageConfig struct {
	GCSBucket    string `mapstructure:"gcs_bucket"`
	OutputDir    string `mapstructure:"output_dir"`
	OutputObject string `mapstructure:"output_object"`
	TracesObject string `mapstructure:"traces_object"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CHAMPSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("wiki.base_url", "https://leagueoflegends.fandom.com")
	v.SetDefault("crawl.max_concurrent_details", 3)
	v.SetDefault("crawl.max_champions", 0)
	v.SetDefault("crawl.nav_attempts", 3)
	v.SetDefault("crawl.nav_timeout_seconds", 10)
	v.SetDefault("browser.user_agent", "champstats-crawler/0.1")
	v.SetDefault("browser.headless", true)
	v.SetDefault("storage.output_dir", "out")
	v.SetDefault("storage.output_object", "champions.json")
	v.SetDefault("storage.traces_object", "traces.zip")
	v.SetDefault("logging.development", false)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Wiki.BaseURL == "" {
		return fmt.Errorf("wiki.base_url must be set")
	}
	if c.Crawl.MaxConcurrentDetails <= 0 {
		return fmt.Errorf("crawl.max_concurrent_details must be > 0")
	}
	if c.Crawl.MaxChampions < 0 {
		return fmt.Errorf("crawl.max_champions must be >= 0")
	}
	if c.Crawl.NavAttempts <= 0 {
		return fmt.Errorf("crawl.nav_attempts must be > 0")
	}
	if c.Crawl.NavTimeoutSeconds <= 0 {
		return fmt.Errorf("crawl.nav_timeout_seconds must be > 0")
	}
	if c.Storage.OutputObject == "" {
		return fmt.Errorf("storage.output_object must be set")
	}
	if c.Storage.TracesObject == "" {
		return fmt.Errorf("storage.traces_object must be set")
	}
	return nil
}

// NavTimeout returns the per-attempt navigation budget as a duration.
func (c Config) NavTimeout() time.Duration {
	return time.Duration(c.Crawl.NavTimeoutSeconds) * time.Second
}
