package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/home/u/.cache")

	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Model != "medium" {
		t.Errorf("expected default model medium, got %q", cfg.Model)
	}
	if cfg.CacheDir != "/home/u/.cache/whisper" {
		t.Errorf("unexpected cache dir: %q", cfg.CacheDir)
	}
	if cfg.Environment != "development" {
		t.Errorf("unexpected environment: %q", cfg.Environment)
	}
	if cfg.Scheduler.MaxColdWorkers != 2 {
		t.Errorf("expected 2 cold workers by default, got %d", cfg.Scheduler.MaxColdWorkers)
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Server.Port)
	}

	// The shared model and cache settings feed both lanes.
	if cfg.ColdWorker.Model != "medium" || cfg.ColdWorker.CacheDir != cfg.CacheDir {
		t.Errorf("cold worker config not propagated: %+v", cfg.ColdWorker)
	}
	if cfg.Hot.Model != "medium" || cfg.Hot.CacheDir != cfg.CacheDir {
		t.Errorf("hot config not propagated: %+v", cfg.Hot)
	}
}

func TestApplyDefaultsCacheFallback(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	var cfg Config
	cfg.ApplyDefaults()

	if cfg.CacheDir != filepath.Join(defaultCacheRoot, "whisper") {
		t.Errorf("unexpected fallback cache dir: %q", cfg.CacheDir)
	}
}

func TestDebugWidensLogging(t *testing.T) {
	cfg := Config{Debug: true}
	cfg.ApplyDefaults()

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yml := `
model: small
cache_dir: /var/cache/whisper
scheduler:
  max_cold_workers: 4
server:
  port: 8080
`
	if err := os.WriteFile(path, []byte(yml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.Model != "small" {
		t.Errorf("model = %q", cfg.Model)
	}
	if cfg.CacheDir != "/var/cache/whisper" {
		t.Errorf("cache_dir = %q", cfg.CacheDir)
	}
	if cfg.Scheduler.MaxColdWorkers != 4 {
		t.Errorf("max_cold_workers = %d", cfg.Scheduler.MaxColdWorkers)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("model: small\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// Keys absent from the config file must still be reachable via env.
	t.Setenv("WHISPERD_SCHEDULER_MAX_COLD_WORKERS", "7")
	t.Setenv("WHISPERD_SERVER_PORT", "9999")
	t.Setenv("WHISPERD_CACHE_DIR", "/srv/whisper")
	t.Setenv("WHISPERD_MODEL", "base")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.Scheduler.MaxColdWorkers != 7 {
		t.Errorf("WHISPERD_SCHEDULER_MAX_COLD_WORKERS ignored: got %d", cfg.Scheduler.MaxColdWorkers)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("WHISPERD_SERVER_PORT ignored: got %d", cfg.Server.Port)
	}
	if cfg.CacheDir != "/srv/whisper" {
		t.Errorf("WHISPERD_CACHE_DIR ignored: got %q", cfg.CacheDir)
	}
	if cfg.Model != "base" {
		t.Errorf("WHISPERD_MODEL should override the file value, got %q", cfg.Model)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("scheduler_max_cold_workers")
	want := map[string]bool{}
	for _, v := range got {
		want[v] = true
	}
	if !want["scheduler.max_cold_workers"] {
		t.Errorf("missing scheduler.max_cold_workers in %v", got)
	}
	if !want["scheduler.max.cold.workers"] {
		t.Errorf("missing fully dotted variant in %v", got)
	}

	if got := envKeyVariants("model"); len(got) != 1 || got[0] != "model" {
		t.Errorf("single-part key must map to itself, got %v", got)
	}
}

func TestLegacyEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("model: small\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("WHISPER_MODEL", "large-v3")
	t.Setenv("DEBUG", "true")
	t.Setenv("MAX_COLD_WORKERS", "6")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if cfg.Model != "large-v3" {
		t.Errorf("WHISPER_MODEL not honored: %q", cfg.Model)
	}
	if !cfg.Debug || cfg.Logging.Level != "debug" {
		t.Errorf("DEBUG=true not honored: debug=%v level=%q", cfg.Debug, cfg.Logging.Level)
	}
	if cfg.Scheduler.MaxColdWorkers != 6 {
		t.Errorf("MAX_COLD_WORKERS not honored: %d", cfg.Scheduler.MaxColdWorkers)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestValidateRejectsBadEnvironment(t *testing.T) {
	cfg := Config{Environment: "prod-ish"}
	cfg.ApplyDefaults()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for unknown environment")
	}
	if !strings.Contains(err.Error(), "Environment") {
		t.Errorf("unexpected validation error: %v", err)
	}
}
