// Package config loads pipecheck service configuration from TOML.
//
// All fields have working defaults; a config file only needs to name what it
// changes. Example:
//
//	[server]
//	addr = ":9090"
//	cors_origins = ["https://editor.example.com"]
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	verdict_ttl = "1h"
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	pcerrors "github.com/pipecheck/pipecheck/pkg/errors"
)

// Cache backend names accepted in [cache] backend.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Duration wraps time.Duration so TOML files can use "30s" / "1h" strings.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`

	// CORSOrigins lists the editor origins allowed to call the API.
	CORSOrigins []string `toml:"cors_origins"`

	// MaxBodyBytes caps the request body size; larger payloads get 413.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

// CacheConfig configures the verdict cache.
type CacheConfig struct {
	Backend string `toml:"backend"` // "none", "file", or "redis"

	// Dir is the file backend's directory. Empty means the user cache
	// directory (~/.cache/pipecheck), the same place the cache CLI manages.
	Dir        string   `toml:"dir"`
	RedisAddr  string   `toml:"redis_addr"`
	RedisDB    int      `toml:"redis_db"`
	VerdictTTL Duration `toml:"verdict_ttl"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8000",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
			CORSOrigins: []string{
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			},
			MaxBodyBytes: 10 << 20, // 10 MiB
		},
		Cache: CacheConfig{
			Backend:    BackendNone,
			RedisAddr:  "localhost:6379",
			VerdictTTL: Duration{15 * time.Minute},
		},
	}
}

// Load reads a TOML config file on top of the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if err := pcerrors.ValidateConfigPath(path); err != nil {
		return Config{}, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Config{}, pcerrors.New(pcerrors.ErrCodeFileNotFound, "config file not found: %s", path)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, pcerrors.Wrap(pcerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis:
	default:
		return pcerrors.New(pcerrors.ErrCodeInvalidConfig,
			"unknown cache backend %q (want %s, %s, or %s)",
			c.Cache.Backend, BackendNone, BackendFile, BackendRedis)
	}

	if c.Server.MaxBodyBytes <= 0 {
		return pcerrors.New(pcerrors.ErrCodeInvalidConfig, "max_body_bytes must be positive")
	}

	return nil
}

// String describes the config for startup logging, without secrets.
func (c Config) String() string {
	return fmt.Sprintf("addr=%s cache=%s origins=%d", c.Server.Addr, c.Cache.Backend, len(c.Server.CORSOrigins))
}
