package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences loaded from the TOML configuration file at
// ~/.config/charticulator/config.toml (or $XDG_CONFIG_HOME/charticulator/).
//
// Example:
//
//	# default output format for solve
//	format = "json"
//
//	[cache]
//	dir = "/var/cache/charticulator"
//
//	[serve]
//	addr = ":8080"
//	redis = "localhost:6379"
type Config struct {
	// Format is the default output format when --format is not given.
	Format string `toml:"format"`

	Cache struct {
		// Dir overrides the XDG cache directory.
		Dir string `toml:"dir"`
	} `toml:"cache"`

	Serve struct {
		// Addr is the default listen address of the HTTP service.
		Addr string `toml:"addr"`

		// Redis is the address of a shared Redis cache. Empty means the
		// service uses the local file cache.
		Redis string `toml:"redis"`
	} `toml:"serve"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Serve.Addr = ":8080"
	return cfg
}

// configPath returns the configuration file path using the XDG standard.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the configuration file at path.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the user's configuration file, falling back to
// defaults if the file is missing or unreadable. Configuration problems
// never block the CLI.
func LoadConfigOrDefault() *Config {
	path, err := configPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// ResolveCacheDir returns the configured cache directory, or the XDG default
// when the configuration does not set one.
func (c *Config) ResolveCacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return cacheDir()
}
