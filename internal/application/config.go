package application

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration, loaded from a YAML
// file with environment overrides for deployment secrets.
type Config struct {
	// Server configures the HTTP surface.
	Server ServerConfig `yaml:"server" validate:"required"`

	// Database configures the Postgres store adapter.
	Database DatabaseConfig `yaml:"database"`

	// Curation configures the duplicate-question detector.
	Curation CurationConfig `yaml:"curation"`
}

// ServerConfig controls the HTTP listener and write-path throttling.
type ServerConfig struct {
	// ListenAddr is the host:port the server binds to.
	ListenAddr string `yaml:"listen_addr" validate:"required"`

	// WriteRatePerSecond limits response saves per second across the
	// write path. Zero disables the limiter.
	WriteRatePerSecond float64 `yaml:"write_rate_per_second" validate:"min=0,max=10000"`

	// WriteBurst is the token bucket depth for the write limiter.
	WriteBurst int `yaml:"write_burst" validate:"min=0,max=10000"`
}

// DatabaseConfig holds the store connection settings.
type DatabaseConfig struct {
	// URL is the Postgres connection string. The DATABASE_URL
	// environment variable overrides it so secrets stay out of files.
	URL string `yaml:"url"`
}

// CurationConfig controls the catalog duplicate-question detector.
type CurationConfig struct {
	// SimilarityThreshold is the minimum similarity (0.0-1.0) for two
	// question texts to be reported as duplicates.
	SimilarityThreshold float64 `yaml:"similarity_threshold" validate:"min=0,max=1"`

	// CaseSensitive determines whether comparison preserves case.
	CaseSensitive bool `yaml:"case_sensitive"`
}

// DefaultConfig returns the configuration used when no file is given:
// a local listener, a moderate write limiter, and the curation
// threshold tuned for near-duplicate prompts.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:         ":8080",
			WriteRatePerSecond: 25,
			WriteBurst:         50,
		},
		Curation: CurationConfig{
			SimilarityThreshold: 0.85,
		},
	}
}

// LoadConfig reads, decodes, and validates the YAML configuration at
// path, starting from DefaultConfig so omitted fields keep their
// defaults. A DATABASE_URL environment variable overrides the file's
// database URL.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
