package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	pcerrors "github.com/pipecheck/pipecheck/pkg/errors"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Server.Addr != ":8000" {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, ":8000")
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v, want 2 defaults", cfg.Server.CORSOrigins)
	}
	if cfg.Cache.Backend != BackendNone {
		t.Errorf("Backend = %q, want %q", cfg.Cache.Backend, BackendNone)
	}
	if cfg.Server.MaxBodyBytes != 10<<20 {
		t.Errorf("MaxBodyBytes = %d, want %d", cfg.Server.MaxBodyBytes, 10<<20)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipecheck.toml")
	content := `
[server]
addr = ":9090"
read_timeout = "10s"
cors_origins = ["https://editor.example.com"]

[cache]
backend = "file"
dir = "/tmp/pipecheck-cache"
verdict_ttl = "1h"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, ":9090")
	}
	if cfg.Server.ReadTimeout.Duration != 10*time.Second {
		t.Errorf("ReadTimeout = %v, want 10s", cfg.Server.ReadTimeout.Duration)
	}
	// Unset fields keep defaults.
	if cfg.Server.WriteTimeout.Duration != 30*time.Second {
		t.Errorf("WriteTimeout = %v, want default 30s", cfg.Server.WriteTimeout.Duration)
	}
	if got := cfg.Server.CORSOrigins; len(got) != 1 || got[0] != "https://editor.example.com" {
		t.Errorf("CORSOrigins = %v", got)
	}
	if cfg.Cache.Backend != BackendFile || cfg.Cache.Dir != "/tmp/pipecheck-cache" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.VerdictTTL.Duration != time.Hour {
		t.Errorf("VerdictTTL = %v, want 1h", cfg.Cache.VerdictTTL.Duration)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !pcerrors.Is(err, pcerrors.ErrCodeFileNotFound) {
		t.Errorf("Load(absent) error = %v, want %v", err, pcerrors.ErrCodeFileNotFound)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[server\naddr = "), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !pcerrors.Is(err, pcerrors.ErrCodeInvalidConfig) {
		t.Errorf("Load(bad) error = %v, want %v", err, pcerrors.ErrCodeInvalidConfig)
	}
}

func TestLoad_UnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backend.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"memcached\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !pcerrors.Is(err, pcerrors.ErrCodeInvalidConfig) {
		t.Errorf("Load(unknown backend) error = %v, want %v", err, pcerrors.ErrCodeInvalidConfig)
	}
}

func TestLoad_FileBackendEmptyDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodir.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"file\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// An empty dir is valid: serve falls back to the user cache directory.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(file backend without dir) error: %v", err)
	}
	if cfg.Cache.Backend != BackendFile || cfg.Cache.Dir != "" {
		t.Errorf("cache config = %+v, want file backend with empty dir", cfg.Cache)
	}
}
