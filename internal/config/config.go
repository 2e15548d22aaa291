// Package config loads the pictograph.yaml settings file used by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "pictograph.yaml"

// EnvEncryptionKey overrides store.encryption_key, keeping the key out of the file.
const EnvEncryptionKey = "PICTOGRAPH_ENCRYPTION_KEY"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreLoam   = "loam"
)

// Config holds CLI settings. Flags override values read from the file.
type Config struct {
	LogLevel    string `yaml:"log_level"`
	LogJSON     bool   `yaml:"log_json"`
	AutoProcess bool   `yaml:"auto_process"`

	Store StoreConfig `yaml:"store"`
	HTTP  HTTPConfig  `yaml:"http"`
}

// StoreConfig selects and configures the document store.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	// Dir applies to the file and loam backends, Format to file only.
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`

	Redis RedisConfig `yaml:"redis"`

	// EncryptionKey is a base64 AES-256 key. When set, documents are
	// encrypted before they reach the backend.
	EncryptionKey string `yaml:"encryption_key"`
	// FallbackKeys still decrypt documents written before a key rotation.
	FallbackKeys []string `yaml:"fallback_keys"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// HTTPConfig configures `pictograph serve`.
type HTTPConfig struct {
	Port    int    `yaml:"port"`
	Metrics bool   `yaml:"metrics"`
	Graph   string `yaml:"graph"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		LogLevel: "info",
		Store: StoreConfig{
			Backend: StoreMemory,
			Dir:     ".pictograph/graphs",
			Format:  "json",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "pictograph:graph:",
			},
		},
		HTTP: HTTPConfig{
			Port:    8080,
			Metrics: true,
			Graph:   "default",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error when
// path is DefaultFile, so the CLI works without any configuration.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist) && path == DefaultFile:
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if key := os.Getenv(EnvEncryptionKey); key != "" {
		cfg.Store.EncryptionKey = key
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory, StoreFile, StoreRedis, StoreLoam:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	return nil
}
