// Package config loads tool configuration from a TOML file. File values
// act as defaults; CLI flags override them.
package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/quantforge/qweave/pkg/cache"
	"github.com/quantforge/qweave/pkg/errors"
	"github.com/quantforge/qweave/pkg/synth"
)

// Config is the on-disk configuration.
type Config struct {
	Synthesis synth.Options `toml:"synthesis"`
	Cache     CacheConfig   `toml:"cache"`
	Server    ServerConfig  `toml:"server"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is "null", "file" or "redis".
	Backend string `toml:"backend"`

	// Dir is the file backend directory. Empty uses the user cache
	// directory.
	Dir string `toml:"dir"`

	// RedisURL is the redis backend address (redis://host:port).
	RedisURL string `toml:"redis_url"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Synthesis: synth.DefaultOptions(),
		Cache:     CacheConfig{Backend: "file"},
		Server:    ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the standard config file location
// ($XDG_CONFIG_HOME/qweave/config.toml or the platform equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "qweave", "config.toml")
}

// Load reads a config file, layering its values over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing %s", path)
	}
	return cfg, nil
}

// LoadDefault loads the standard config file, or the defaults when no
// file exists.
func LoadDefault() (Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.GetCode(err) == errors.ErrCodeFileNotFound {
		return Default(), nil
	}
	return cfg, err
}

// Open constructs the configured cache backend.
func (c CacheConfig) Open() (cache.Cache, error) {
	switch c.Backend {
	case "", "null":
		return cache.NewNullCache(), nil
	case "file":
		dir := c.Dir
		if dir == "" {
			base, err := os.UserCacheDir()
			if err != nil {
				return nil, err
			}
			dir = filepath.Join(base, "qweave")
		}
		return cache.NewFileCache(dir)
	case "redis":
		if c.RedisURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "redis backend requires redis_url")
		}
		// Connection failures at startup are transient more often than
		// not, so retry before giving up.
		var rc cache.Cache
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			rc, err = cache.NewRedisCache(c.RedisURL)
			return err
		})
		return rc, err
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Backend)
	}
}
