// Package config loads service configuration from an optional TOML file
// with sane defaults for every field.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/liblens/liblens/pkg/errors"
	"github.com/liblens/liblens/pkg/pydist"
)

// Defaults applied when a field is absent from the file.
const (
	DefaultListenAddr = ":5000"
	DefaultCacheTTL   = 6 * time.Hour
)

// Config holds all service settings.
type Config struct {
	// ListenAddr is the HTTP bind address for the serve command.
	ListenAddr string `toml:"listen_addr"`
	// Roots are the directories scanned for installed Python
	// distributions. Empty means autodetect from the environment.
	Roots []string `toml:"roots"`
	// CacheDir is where HTTP responses are cached on disk. Empty
	// selects a liblens directory under the user cache dir.
	CacheDir string `toml:"cache_dir"`
	// CacheTTL bounds how long cached index responses are reused.
	CacheTTL duration `toml:"cache_ttl"`
	// RedisAddr switches the HTTP response cache to Redis when set.
	RedisAddr string `toml:"redis_addr"`
	// CORSOrigins lists allowed origins for browser clients.
	CORSOrigins []string `toml:"cors_origins"`
	// PyPIBaseURL overrides the package index endpoint, mainly for
	// tests and mirrors.
	PyPIBaseURL string `toml:"pypi_base_url"`
}

// duration wraps time.Duration with TOML string decoding ("6h", "30m").
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ListenAddr:  DefaultListenAddr,
		CacheTTL:    duration(DefaultCacheTTL),
		CORSOrigins: []string{"*"},
	}
}

// Load reads a TOML config file and fills in defaults. An empty path
// returns Default(); a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = duration(DefaultCacheTTL)
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}
	return cfg, nil
}

// TTL returns the cache TTL as a plain duration.
func (c *Config) TTL() time.Duration { return time.Duration(c.CacheTTL) }

// ResolveRoots returns the configured site-packages roots, falling back
// to environment autodetection.
func (c *Config) ResolveRoots() []string {
	if len(c.Roots) > 0 {
		return c.Roots
	}
	return pydist.DefaultRoots()
}

// ResolveCacheDir returns the on-disk cache location, creating nothing.
func (c *Config) ResolveCacheDir() string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "liblens")
}
