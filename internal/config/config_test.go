package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "liblens.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.TTL() != DefaultCacheTTL {
		t.Errorf("TTL = %v", cfg.TTL())
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
listen_addr = "127.0.0.1:8080"
roots = ["/opt/venv/lib/python3.12/site-packages"]
cache_ttl = "30m"
redis_addr = "localhost:6379"
cors_origins = ["https://example.com"]
pypi_base_url = "https://mirror.internal"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.TTL() != 30*time.Minute {
		t.Errorf("TTL = %v", cfg.TTL())
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if got := cfg.ResolveRoots(); !reflect.DeepEqual(got, []string{"/opt/venv/lib/python3.12/site-packages"}) {
		t.Errorf("ResolveRoots = %v", got)
	}
	if cfg.PyPIBaseURL != "https://mirror.internal" {
		t.Errorf("PyPIBaseURL = %q", cfg.PyPIBaseURL)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `redis_addr = "localhost:6379"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.TTL() != DefaultCacheTTL {
		t.Errorf("TTL = %v", cfg.TTL())
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `cache_ttl = "soon"`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for bad duration")
	}
}

func TestResolveCacheDir_Override(t *testing.T) {
	cfg := Default()
	cfg.CacheDir = "/tmp/custom"
	if got := cfg.ResolveCacheDir(); got != "/tmp/custom" {
		t.Errorf("ResolveCacheDir = %q", got)
	}
}
