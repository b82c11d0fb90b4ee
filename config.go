package intelgraph

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/obscura-osint/intelgraph/store"
)

// Config represents an intelgraph.yaml configuration file.
type Config struct {
	// Redis holds the Redis connection settings.
	Redis *RedisConfig `yaml:"redis,omitempty"`

	// Extraction holds entity-extraction settings.
	Extraction *ExtractionConfig `yaml:"extraction,omitempty"`

	// Logging holds structured-logging settings.
	Logging *LoggingConfig `yaml:"logging,omitempty"`
}

// RedisConfig defines how the entity store connects to Redis.
type RedisConfig struct {
	// URL is the Redis connection string.
	// Default: "redis://localhost:6379"
	URL string `yaml:"url,omitempty"`

	// ConnectTimeout is the maximum time to wait for connection
	// establishment. Format: Go duration string (e.g., "5s").
	// Default: 5s
	ConnectTimeout string `yaml:"connect_timeout,omitempty"`

	// ReadTimeout is the maximum time to wait for read operations.
	// Default: 3s
	ReadTimeout string `yaml:"read_timeout,omitempty"`

	// WriteTimeout is the maximum time to wait for write operations.
	// Default: 3s
	WriteTimeout string `yaml:"write_timeout,omitempty"`
}

// ExtractionConfig tunes keyword extraction from free-text searches.
type ExtractionConfig struct {
	// KeywordMinLength is the minimum length of an extracted keyword.
	// Default: 3
	KeywordMinLength int `yaml:"keyword_min_length,omitempty"`

	// KeywordLimit is the maximum number of keywords extracted per text.
	// Default: 20
	KeywordLimit int `yaml:"keyword_limit,omitempty"`
}

// LoggingConfig defines structured-logging settings.
type LoggingConfig struct {
	// Level is the minimum slog level: "debug", "info", "warn", or "error".
	// Default: "info"
	Level string `yaml:"level,omitempty"`
}

// GetURL returns the configured Redis URL or the default value.
func (r *RedisConfig) GetURL() string {
	if r == nil || r.URL == "" {
		return "redis://localhost:6379"
	}
	return r.URL
}

// GetConnectTimeout parses the connect timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (r *RedisConfig) GetConnectTimeout() time.Duration {
	if r == nil {
		return 5 * time.Second
	}
	return parseDuration(r.ConnectTimeout, 5*time.Second)
}

// GetReadTimeout parses the read timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (r *RedisConfig) GetReadTimeout() time.Duration {
	if r == nil {
		return 3 * time.Second
	}
	return parseDuration(r.ReadTimeout, 3*time.Second)
}

// GetWriteTimeout parses the write timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (r *RedisConfig) GetWriteTimeout() time.Duration {
	if r == nil {
		return 3 * time.Second
	}
	return parseDuration(r.WriteTimeout, 3*time.Second)
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

// GetKeywordMinLength returns the configured minimum keyword length or the
// default value.
func (e *ExtractionConfig) GetKeywordMinLength() int {
	if e == nil || e.KeywordMinLength <= 0 {
		return 3
	}
	return e.KeywordMinLength
}

// GetKeywordLimit returns the configured keyword limit or the default value.
func (e *ExtractionConfig) GetKeywordLimit() int {
	if e == nil || e.KeywordLimit <= 0 {
		return 20
	}
	return e.KeywordLimit
}

// GetLevel returns the configured log level or the default value.
func (l *LoggingConfig) GetLevel() string {
	if l == nil || l.Level == "" {
		return "info"
	}
	return l.Level
}

// StoreOptions maps the Redis configuration onto the entity store's
// connection options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		URL:            c.Redis.GetURL(),
		ConnectTimeout: c.Redis.GetConnectTimeout(),
		ReadTimeout:    c.Redis.GetReadTimeout(),
		WriteTimeout:   c.Redis.GetWriteTimeout(),
	}
}

// LoadConfig reads and parses an intelgraph.yaml file from the given path.
// If the path is a directory, it looks for intelgraph.yaml or intelgraph.yml
// in that directory.
func LoadConfig(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		yamlPath := filepath.Join(path, "intelgraph.yaml")
		if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			ymlPath := filepath.Join(path, "intelgraph.yml")
			if _, err := os.Stat(ymlPath); err == nil {
				configPath = ymlPath
			} else {
				return nil, fmt.Errorf("no intelgraph.yaml or intelgraph.yml found in %s", path)
			}
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}
