package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/recaplabs/recap/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "5m"
shutdown_timeout = "30s"

[api]
max_upload_size = "16MB"

[api.cors]
enabled = false

[staging]
dir = "uploads"
max_age = "1h"
cleanup_retries = 3
cleanup_backoff = "100ms"

[enhancer]
model = "gemini-2.5-flash"
timeout = "30s"
min_overlap = 0.2

[captioner]
name = "test-captioner"

[captioner.provider]
name = "ollama"
base_url = "http://localhost:11434"

[captioner.model]
name = "llama3.2-vision:11b"
`

const overlayConfig = `
[server]
port = 9090

[staging]
dir = "staged"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"RECAP_ENV", "RECAP_SERVER_PORT", "RECAP_STAGING_DIR",
		"GEMINI_API_KEY", "RECAP_ENHANCER_MODEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("addr: got %s", cfg.Server.Addr())
	}
	if cfg.Staging.Dir != "uploads" {
		t.Errorf("staging dir: got %s", cfg.Staging.Dir)
	}
	if cfg.Enhancer.Model != "gemini-2.5-flash" {
		t.Errorf("enhancer model: got %s", cfg.Enhancer.Model)
	}
	if cfg.API.MaxUploadSizeBytes() != 16*1024*1024 {
		t.Errorf("max upload size: got %d", cfg.API.MaxUploadSizeBytes())
	}
}

func TestLoadWithOverlay(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.prod.toml", overlayConfig)
	chdir(t, dir)
	t.Setenv("RECAP_ENV", "prod")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d, want overlay 9090", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host: got %s, want base 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Staging.Dir != "staged" {
		t.Errorf("staging dir: got %s, want overlay staged", cfg.Staging.Dir)
	}
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port: got %d, want default 8080", cfg.Server.Port)
	}
	if cfg.Staging.Dir != "uploads" {
		t.Errorf("staging dir: got %s, want default uploads", cfg.Staging.Dir)
	}
	if cfg.Enhancer.APIKey != "" {
		t.Error("api key should be empty without environment override")
	}
	if cfg.ShutdownTimeout != "30s" {
		t.Errorf("shutdown timeout: got %s", cfg.ShutdownTimeout)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("RECAP_SERVER_PORT", "9999")
	t.Setenv("RECAP_STAGING_DIR", "/tmp/staged")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("port: got %d, want 9999", cfg.Server.Port)
	}
	if cfg.Staging.Dir != "/tmp/staged" {
		t.Errorf("staging dir: got %s", cfg.Staging.Dir)
	}
	if cfg.Enhancer.APIKey != "test-key" {
		t.Errorf("api key: got %s", cfg.Enhancer.APIKey)
	}
}

func TestInvalidShutdownTimeout(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("RECAP_SHUTDOWN_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid shutdown timeout")
	}
}
