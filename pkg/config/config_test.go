package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configPath := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s
database:
  dsn: "file:test.db"
fetch:
  timeout: 5s
  user_agent: "TestAgent/1.0"
schedule:
  update_interval: 10m
  max_workers: 3
extraction:
  enabled: false
  reader_min_length: 500
feeds:
  - url: https://example.com/feed1.xml
    tags: [go, news]
  - url: https://example.com/feed2.xml
`)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "file:test.db", cfg.Database.DSN)
		assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, "TestAgent/1.0", cfg.Fetch.UserAgent)
		assert.Equal(t, 10*time.Minute, cfg.Schedule.UpdateInterval)
		assert.Equal(t, 3, cfg.Schedule.MaxWorkers)
		assert.False(t, cfg.Extraction.Enabled)
		assert.Equal(t, 500, cfg.Extraction.ReaderMinLength)

		require.Len(t, cfg.Feeds, 2)
		assert.Equal(t, "https://example.com/feed1.xml", cfg.Feeds[0].URL)
		assert.Equal(t, []string{"go", "news"}, cfg.Feeds[0].Tags)
		assert.Empty(t, cfg.Feeds[1].Tags)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "feeds: []\n"))
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "file:feedsync.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
		assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, int64(10*1024*1024), cfg.Fetch.MaxBodySize)
		assert.Equal(t, 30*time.Minute, cfg.Schedule.UpdateInterval)
		assert.Equal(t, 5, cfg.Schedule.MaxWorkers)
		assert.True(t, cfg.Extraction.Enabled, "extraction is on unless disabled explicitly")
		assert.Equal(t, time.Second, cfg.Extraction.RateLimit)
		assert.Equal(t, 1, cfg.Extraction.Burst)
		assert.Equal(t, 200, cfg.Extraction.ReaderMinLength)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("FEEDSYNC_TEST_DSN", "file:env.db")
		cfg, err := Load(writeConfig(t, "database:\n  dsn: ${FEEDSYNC_TEST_DSN}\n"))
		require.NoError(t, err)
		assert.Equal(t, "file:env.db", cfg.Database.DSN)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
invalid yaml content
  with bad indentation
    and no structure
`))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{name: "server timeout", yaml: "server:\n  timeout: 10ms\n", errMsg: "server timeout must be at least 1 second"},
		{name: "fetch timeout", yaml: "fetch:\n  timeout: 1ms\n", errMsg: "fetch timeout must be at least 100ms"},
		{name: "body size", yaml: "fetch:\n  max_body_size: 10\n", errMsg: "max_body_size must be at least 1024"},
		{name: "update interval", yaml: "schedule:\n  update_interval: 5s\n", errMsg: "update_interval must be at least 1 minute"},
		{name: "workers", yaml: "schedule:\n  max_workers: -1\n", errMsg: "max_workers must be at least 1"},
		{name: "extraction timeout", yaml: "extraction:\n  timeout: 10ms\n", errMsg: "extraction timeout must be at least 1 second"},
		{name: "reader min length", yaml: "extraction:\n  reader_min_length: -5\n", errMsg: "reader_min_length must be positive"},
		{name: "relative feed url", yaml: "feeds:\n  - url: /feed.xml\n", errMsg: "must be an absolute http(s) url"},
		{name: "ftp feed url", yaml: "feeds:\n  - url: ftp://example.com/feed.xml\n", errMsg: "must be an absolute http(s) url"},
		{
			name:   "duplicate feed",
			yaml:   "feeds:\n  - url: https://example.com/a.xml\n  - url: https://example.com/a.xml\n",
			errMsg: "duplicate url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("disabled extraction skips extraction checks", func(t *testing.T) {
		cfg, err := Parse([]byte("extraction:\n  enabled: false\n  timeout: 10ms\n"))
		require.NoError(t, err)
		assert.False(t, cfg.Extraction.Enabled)
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, validate(cfg))
	assert.True(t, cfg.Extraction.Enabled)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Empty(t, cfg.GetFeeds())
}

func TestConfig_Getters(t *testing.T) {
	cfg := &Config{
		Server:     ServerConfig{Listen: ":9090", Timeout: 45 * time.Second},
		Extraction: ExtractionConfig{Enabled: true, RateLimit: 2 * time.Second},
		Feeds:      []Feed{{URL: "https://feed1.com", Tags: []string{"a"}}},
	}

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
	assert.Equal(t, 2*time.Second, cfg.GetExtractionConfig().RateLimit)
	assert.Equal(t, cfg.Feeds, cfg.GetFeeds())
}
