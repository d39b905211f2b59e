package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Wiki.BaseURL != "https://leagueoflegends.fandom.com" {
		t.Errorf("wiki.base_url = %q", cfg.Wiki.BaseURL)
	}
	if cfg.Crawl.MaxConcurrentDetails != 3 {
		t.Errorf("crawl.max_concurrent_details = %d, want 3", cfg.Crawl.MaxConcurrentDetails)
	}
	if cfg.Crawl.MaxChampions != 0 {
		t.Errorf("crawl.max_champions = %d, want 0", cfg.Crawl.MaxChampions)
	}
	if cfg.Crawl.NavAttempts != 3 {
		t.Errorf("crawl.nav_attempts = %d, want 3", cfg.Crawl.NavAttempts)
	}
	if !cfg.Browser.Headless {
		t.Error("browser.headless = false, want true")
	}
	if cfg.Storage.OutputObject != "champions.json" {
		t.Errorf("storage.output_object = %q", cfg.Storage.OutputObject)
	}
	if cfg.Storage.TracesObject != "traces.zip" {
		t.Errorf("storage.traces_object = %q", cfg.Storage.TracesObject)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
wiki:
  base_url: https://wiki.test
crawl:
  max_concurrent_details: 5
  max_champions: 10
  nav_timeout_seconds: 20
storage:
  gcs_bucket: champ-artifacts
logging:
  development: true
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Wiki.BaseURL != "https://wiki.test" {
		t.Errorf("wiki.base_url = %q", cfg.Wiki.BaseURL)
	}
	if cfg.Crawl.MaxConcurrentDetails != 5 {
		t.Errorf("crawl.max_concurrent_details = %d, want 5", cfg.Crawl.MaxConcurrentDetails)
	}
	if cfg.Crawl.MaxChampions != 10 {
		t.Errorf("crawl.max_champions = %d, want 10", cfg.Crawl.MaxChampions)
	}
	if cfg.Storage.GCSBucket != "champ-artifacts" {
		t.Errorf("storage.gcs_bucket = %q", cfg.Storage.GCSBucket)
	}
	if !cfg.Logging.Development {
		t.Error("logging.development = false, want true")
	}
	// Unset keys keep their defaults.
	if cfg.Crawl.NavAttempts != 3 {
		t.Errorf("crawl.nav_attempts = %d, want 3", cfg.Crawl.NavAttempts)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func validConfig() Config {
	return Config{
		Wiki: WikiConfig{BaseURL: "https://wiki.test"},
		Crawl: CrawlConfig{
			MaxConcurrentDetails: 3,
			NavAttempts:          3,
			NavTimeoutSeconds:    10,
		},
		Storage: StorageConfig{
			OutputObject: "champions.json",
			TracesObject: "traces.zip",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing base url", mutate: func(c *Config) { c.Wiki.BaseURL = "" }, wantErr: true},
		{name: "zero concurrency", mutate: func(c *Config) { c.Crawl.MaxConcurrentDetails = 0 }, wantErr: true},
		{name: "negative champion limit", mutate: func(c *Config) { c.Crawl.MaxChampions = -1 }, wantErr: true},
		{name: "zero nav attempts", mutate: func(c *Config) { c.Crawl.NavAttempts = 0 }, wantErr: true},
		{name: "zero nav timeout", mutate: func(c *Config) { c.Crawl.NavTimeoutSeconds = 0 }, wantErr: true},
		{name: "missing output object", mutate: func(c *Config) { c.Storage.OutputObject = "" }, wantErr: true},
		{name: "missing traces object", mutate: func(c *Config) { c.Storage.TracesObject = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNavTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Crawl.NavTimeoutSeconds = 25
	if got := cfg.NavTimeout(); got != 25*time.Second {
		t.Errorf("NavTimeout() = %v, want 25s", got)
	}
}
