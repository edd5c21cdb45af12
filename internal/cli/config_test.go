package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
format = "dot"

[cache]
dir = "/tmp/charticulator-cache"

[serve]
addr = ":9090"
redis = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Format != "dot" {
		t.Errorf("Format = %q, want dot", cfg.Format)
	}
	if cfg.Cache.Dir != "/tmp/charticulator-cache" {
		t.Errorf("Cache.Dir = %q", cfg.Cache.Dir)
	}
	if cfg.Serve.Addr != ":9090" || cfg.Serve.Redis != "localhost:6379" {
		t.Errorf("Serve = %+v", cfg.Serve)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`format = "svg"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Format != "svg" {
		t.Errorf("Format = %q, want svg", cfg.Format)
	}
	// Unset sections keep the defaults.
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("Serve.Addr = %q, want default :8080", cfg.Serve.Addr)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadConfig succeeded on a missing file")
	}
}

func TestResolveCacheDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Dir = "/custom/cache"
	if dir, err := cfg.ResolveCacheDir(); err != nil || dir != "/custom/cache" {
		t.Errorf("ResolveCacheDir = %q, %v", dir, err)
	}

	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")
	cfg.Cache.Dir = ""
	dir, err := cfg.ResolveCacheDir()
	if err != nil {
		t.Fatalf("ResolveCacheDir: %v", err)
	}
	if dir != filepath.Join("/xdg/cache", appName) {
		t.Errorf("ResolveCacheDir = %q", dir)
	}
}
