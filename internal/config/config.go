package config

import (
	"fmt"
	"os"
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"github.com/pelletier/go-toml/v2"

	"github.com/recaplabs/recap/internal/enhancer"
	"github.com/recaplabs/recap/pkg/staging"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvRecapEnv             = "RECAP_ENV"
	EnvRecapShutdownTimeout = "RECAP_SHUTDOWN_TIMEOUT"
	EnvRecapVersion         = "RECAP_VERSION"
)

var stagingEnv = &staging.Env{
	Dir:            "RECAP_STAGING_DIR",
	MaxAge:         "RECAP_STAGING_MAX_AGE",
	CleanupRetries: "RECAP_STAGING_CLEANUP_RETRIES",
	CleanupBackoff: "RECAP_STAGING_CLEANUP_BACKOFF",
	SweepWorkers:   "RECAP_STAGING_SWEEP_WORKERS",
}

// The enhancement credential reads GEMINI_API_KEY directly. It must never be
// committed to config files or source text.
var enhancerEnv = &enhancer.Env{
	APIKey:          "GEMINI_API_KEY",
	Model:           "RECAP_ENHANCER_MODEL",
	Timeout:         "RECAP_ENHANCER_TIMEOUT",
	MinOverlap:      "RECAP_ENHANCER_MIN_OVERLAP",
	SimulateLatency: "RECAP_ENHANCER_SIMULATE_LATENCY",
}

// Config is the root configuration for the Recap service.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	API             APIConfig            `toml:"api"`
	Staging         staging.Config       `toml:"staging"`
	Enhancer        enhancer.Config      `toml:"enhancer"`
	Captioner       gaconfig.AgentConfig `toml:"captioner"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the RECAP_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvRecapEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Staging.Merge(&overlay.Staging)
	c.Enhancer.Merge(&overlay.Enhancer)
	c.Captioner.Merge(&overlay.Captioner)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Staging.Finalize(stagingEnv); err != nil {
		return fmt.Errorf("staging: %w", err)
	}
	if err := c.Enhancer.Finalize(enhancerEnv); err != nil {
		return fmt.Errorf("enhancer: %w", err)
	}
	if err := FinalizeCaptioner(&c.Captioner); err != nil {
		return fmt.Errorf("captioner: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvRecapShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvRecapVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvRecapEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
