// Package config loads squill configuration from file and environment.
//
// Lookup order is environment (SQUILL_ prefix) over squill.yaml over
// defaults. Connection URLs carry credentials and are never logged.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/squill-labs/squill/pkg/core"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "squill.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "squill.yml"

// EnvPrefix is the prefix for environment overrides, e.g.
// SQUILL_CACHE_MAX_CLIENTS=32.
const EnvPrefix = "SQUILL_"

// CacheConfig holds connection cache tunables.
type CacheConfig struct {
	MaxClients  int           `koanf:"max_clients"`
	IdleTimeout time.Duration `koanf:"idle_timeout"`
}

// ConnectionConfig is one named connection.
type ConnectionConfig struct {
	Engine string `koanf:"engine"`
	URL    string `koanf:"url"`
}

// Config is the full squill configuration.
type Config struct {
	LogLevel    string                      `koanf:"log_level"`
	Cache       CacheConfig                 `koanf:"cache"`
	Connections map[string]ConnectionConfig `koanf:"connections"`
}

// Default configuration values.
const (
	DefaultLogLevel    = "info"
	DefaultMaxClients  = 16
	DefaultIdleTimeout = 10 * time.Minute
)

// ApplyDefaults fills zero values with defaults.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Cache.MaxClients == 0 {
		c.Cache.MaxClients = DefaultMaxClients
	}
	if c.Cache.IdleTimeout == 0 {
		c.Cache.IdleTimeout = DefaultIdleTimeout
	}
}

// Connection resolves a named connection into an engine and URL.
func (c *Config) Connection(name string) (core.Engine, string, error) {
	conn, ok := c.Connections[name]
	if !ok {
		return "", "", fmt.Errorf("unknown connection %q (known: %s)", name, strings.Join(c.ConnectionNames(), ", "))
	}
	engine, err := core.ParseEngine(conn.Engine)
	if err != nil {
		return "", "", fmt.Errorf("connection %q: %w", name, err)
	}
	return engine, conn.URL, nil
}

// ConnectionNames returns the configured connection names.
func (c *Config) ConnectionNames() []string {
	names := make([]string, 0, len(c.Connections))
	for name := range c.Connections {
		names = append(names, name)
	}
	return names
}

// Load reads configuration from the given path, or from squill.yaml in the
// current directory when path is empty. A missing file is not an error; the
// environment and defaults still apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = findConfigFile(".")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	// SQUILL_LOG_LEVEL → log_level, SQUILL_CACHE_MAX_CLIENTS →
	// cache.max_clients.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if rest, ok := strings.CutPrefix(key, "cache_"); ok {
			return "cache." + rest
		}
		return key
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// findConfigFile finds the config file in the given directory. Returns
// empty string if not found.
func findConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
