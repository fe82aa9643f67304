package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "paraphrase-multilingual-MiniLM-L12-v2", cfg.Embedding.Model)
	assert.Equal(t, 384, cfg.Embedding.Dimension)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Matcher.SynonymExpansion)
	assert.Equal(t, 80.0, cfg.Matcher.FuzzyThreshold)
	assert.Empty(t, cfg.Database.Driver)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
embedding:
  model: custom-model
matcher:
  fuzzy_threshold: 90
cache:
  driver: redis
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "custom-model", cfg.Embedding.Model)
	assert.Equal(t, 90.0, cfg.Matcher.FuzzyThreshold)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	// Untouched sections keep defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8123")
	t.Setenv("EMBEDDING_URL", "http://encoder:9999/v1")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "sqlite:/tmp/audit.db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8123, cfg.Server.Port)
	assert.Equal(t, "http://encoder:9999/v1", cfg.Embedding.BaseURL)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/audit.db", cfg.Database.SQLite.Path)
}

func TestLoad_RedisURLEnv(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://redis:6379")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults valid", func(c *Config) {}, true},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, false},
		{"bad cache driver", func(c *Config) { c.Cache.Driver = "memcached" }, false},
		{"bad database driver", func(c *Config) { c.Database.Driver = "oracle" }, false},
		{"sqlite driver valid", func(c *Config) { c.Database.Driver = "sqlite" }, true},
		{"fuzzy threshold too high", func(c *Config) { c.Matcher.FuzzyThreshold = 150 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
