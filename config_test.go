package intelgraph

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, "intelgraph.yaml", `
redis:
  url: redis://redis.internal:6380/2
  connect_timeout: 10s
  read_timeout: 2s
  write_timeout: 4s
extraction:
  keyword_min_length: 4
  keyword_limit: 10
logging:
  level: debug
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "redis://redis.internal:6380/2", cfg.Redis.GetURL())
		assert.Equal(t, 10*time.Second, cfg.Redis.GetConnectTimeout())
		assert.Equal(t, 2*time.Second, cfg.Redis.GetReadTimeout())
		assert.Equal(t, 4*time.Second, cfg.Redis.GetWriteTimeout())
		assert.Equal(t, 4, cfg.Extraction.GetKeywordMinLength())
		assert.Equal(t, 10, cfg.Extraction.GetKeywordLimit())
		assert.Equal(t, "debug", cfg.Logging.GetLevel())
	})

	t.Run("from directory", func(t *testing.T) {
		path := writeConfig(t, "intelgraph.yaml", "redis:\n  url: redis://localhost:7000\n")
		cfg, err := LoadConfig(filepath.Dir(path))
		require.NoError(t, err)
		assert.Equal(t, "redis://localhost:7000", cfg.Redis.GetURL())
	})

	t.Run("yml fallback", func(t *testing.T) {
		path := writeConfig(t, "intelgraph.yml", "logging:\n  level: warn\n")
		cfg, err := LoadConfig(filepath.Dir(path))
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Logging.GetLevel())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := LoadConfig(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "intelgraph.yaml", "redis: [not: a map")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config

	assert.Equal(t, "redis://localhost:6379", cfg.Redis.GetURL())
	assert.Equal(t, 5*time.Second, cfg.Redis.GetConnectTimeout())
	assert.Equal(t, 3*time.Second, cfg.Redis.GetReadTimeout())
	assert.Equal(t, 3*time.Second, cfg.Redis.GetWriteTimeout())
	assert.Equal(t, 3, cfg.Extraction.GetKeywordMinLength())
	assert.Equal(t, 20, cfg.Extraction.GetKeywordLimit())
	assert.Equal(t, "info", cfg.Logging.GetLevel())

	opts := cfg.StoreOptions()
	assert.Equal(t, "redis://localhost:6379", opts.URL)
	assert.Equal(t, 5*time.Second, opts.ConnectTimeout)
}

func TestConfigInvalidDurationFallsBack(t *testing.T) {
	cfg := Config{Redis: &RedisConfig{ConnectTimeout: "soon"}}
	assert.Equal(t, 5*time.Second, cfg.Redis.GetConnectTimeout())
}
