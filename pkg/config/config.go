package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database   DatabaseConfig   `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Fetch      FetchConfig      `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`
	Schedule   ScheduleConfig   `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Reader content extraction configuration"`
	Feeds      []Feed           `yaml:"feeds" json:"feeds,omitempty" jsonschema:"description=Subscriptions added on first start"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// DatabaseConfig holds catalog store settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:feedsync.db?cache=shared&mode=rwc&_txlock=immediate,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// FetchConfig holds feed fetcher settings
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Feed request timeout"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for feed and page requests"`
	MaxBodySize int64         `yaml:"max_body_size" json:"max_body_size" jsonschema:"default=10485760,minimum=1024,description=Maximum response body size in bytes"`
}

// ScheduleConfig holds periodic refresh settings
type ScheduleConfig struct {
	UpdateInterval time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=30m,description=Interval between refreshes of all feeds"`
	MaxWorkers     int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Maximum feeds refreshed concurrently"`
}

// ExtractionConfig holds reader view extraction settings
type ExtractionConfig struct {
	Enabled         bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable reader view extraction"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction page request timeout"`
	RateLimit       time.Duration `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=1s,description=Minimum interval between extractions"`
	Burst           int           `yaml:"burst" json:"burst" jsonschema:"default=1,minimum=1,description=Extractions allowed without waiting"`
	IncludeImages   bool          `yaml:"include_images" json:"include_images" jsonschema:"default=false,description=Keep images in extracted content"`
	IncludeLinks    bool          `yaml:"include_links" json:"include_links" jsonschema:"default=false,description=Keep links in extracted content"`
	ReaderMinLength int           `yaml:"reader_min_length" json:"reader_min_length" jsonschema:"default=200,minimum=1,description=Articles with longer text skip extraction"`
}

// Feed is a subscription seeded on first start
type Feed struct {
	URL  string   `yaml:"url" json:"url" jsonschema:"required,description=Feed URL"`
	Tags []string `yaml:"tags" json:"tags,omitempty" jsonschema:"description=Feed tags"`
}

// rawExtraction lets Load tell an omitted enabled flag from an explicit false
type rawExtraction struct {
	Enabled *bool `yaml:"enabled"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse builds configuration from YAML content, applies defaults and validates it
func Parse(data []byte) (*Config, error) {
	// expand environment variables
	expanded := []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	var raw struct {
		Extraction rawExtraction `yaml:"extraction"`
	}
	if err := yaml.Unmarshal(expanded, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if raw.Extraction.Enabled == nil {
		cfg.Extraction.Enabled = true
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// supplementary check, don't fail
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults applied, used when no config file is given
func Default() *Config {
	cfg := &Config{}
	cfg.Extraction.Enabled = true
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:feedsync.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// fetch
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 15 * time.Second
	}
	if c.Fetch.MaxBodySize == 0 {
		c.Fetch.MaxBodySize = 10 * 1024 * 1024
	}

	// schedule
	if c.Schedule.UpdateInterval == 0 {
		c.Schedule.UpdateInterval = 30 * time.Minute
	}
	if c.Schedule.MaxWorkers == 0 {
		c.Schedule.MaxWorkers = 5
	}

	// extraction
	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = 30 * time.Second
	}
	if c.Extraction.RateLimit == 0 {
		c.Extraction.RateLimit = time.Second
	}
	if c.Extraction.Burst == 0 {
		c.Extraction.Burst = 1
	}
	if c.Extraction.ReaderMinLength == 0 {
		c.Extraction.ReaderMinLength = 200
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}
	if cfg.Fetch.Timeout < 100*time.Millisecond {
		return errors.New("fetch timeout must be at least 100ms")
	}
	if cfg.Fetch.MaxBodySize < 1024 {
		return errors.New("fetch max_body_size must be at least 1024 bytes")
	}
	if cfg.Schedule.UpdateInterval < time.Minute {
		return errors.New("schedule update_interval must be at least 1 minute")
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return errors.New("schedule max_workers must be at least 1")
	}

	if cfg.Extraction.Enabled {
		if cfg.Extraction.Timeout < time.Second {
			return errors.New("extraction timeout must be at least 1 second")
		}
		if cfg.Extraction.RateLimit < 0 {
			return errors.New("extraction rate_limit must be non-negative")
		}
		if cfg.Extraction.Burst < 1 {
			return errors.New("extraction burst must be at least 1")
		}
	}
	if cfg.Extraction.ReaderMinLength < 1 {
		return errors.New("extraction reader_min_length must be positive")
	}

	seen := make(map[string]bool, len(cfg.Feeds))
	for i, f := range cfg.Feeds {
		u, err := url.Parse(f.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("feeds[%d]: url %q must be an absolute http(s) url", i, f.URL)
		}
		if seen[f.URL] {
			return fmt.Errorf("feeds[%d]: duplicate url %q", i, f.URL)
		}
		seen[f.URL] = true
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetExtractionConfig returns reader extraction configuration
func (c *Config) GetExtractionConfig() ExtractionConfig {
	return c.Extraction
}

// GetFeeds returns the seed subscriptions
func (c *Config) GetFeeds() []Feed {
	return c.Feeds
}
