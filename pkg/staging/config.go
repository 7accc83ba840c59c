package staging

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds staging directory parameters.
type Config struct {
	Dir            string `toml:"dir"`
	MaxAge         string `toml:"max_age"`
	CleanupRetries int    `toml:"cleanup_retries"`
	CleanupBackoff string `toml:"cleanup_backoff"`
	SweepWorkers   int    `toml:"sweep_workers"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Dir            string
	MaxAge         string
	CleanupRetries string
	CleanupBackoff string
	SweepWorkers   string
}

// MaxAgeDuration returns MaxAge as a time.Duration.
func (c *Config) MaxAgeDuration() time.Duration {
	d, _ := time.ParseDuration(c.MaxAge)
	return d
}

// CleanupBackoffDuration returns CleanupBackoff as a time.Duration.
func (c *Config) CleanupBackoffDuration() time.Duration {
	d, _ := time.ParseDuration(c.CleanupBackoff)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Dir != "" {
		c.Dir = overlay.Dir
	}
	if overlay.MaxAge != "" {
		c.MaxAge = overlay.MaxAge
	}
	if overlay.CleanupRetries != 0 {
		c.CleanupRetries = overlay.CleanupRetries
	}
	if overlay.CleanupBackoff != "" {
		c.CleanupBackoff = overlay.CleanupBackoff
	}
	if overlay.SweepWorkers != 0 {
		c.SweepWorkers = overlay.SweepWorkers
	}
}

func (c *Config) loadDefaults() {
	if c.Dir == "" {
		c.Dir = "uploads"
	}
	if c.MaxAge == "" {
		c.MaxAge = "1h"
	}
	if c.CleanupRetries == 0 {
		c.CleanupRetries = 3
	}
	if c.CleanupBackoff == "" {
		c.CleanupBackoff = "100ms"
	}
	if c.SweepWorkers == 0 {
		c.SweepWorkers = 4
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Dir != "" {
		if v := os.Getenv(env.Dir); v != "" {
			c.Dir = v
		}
	}
	if env.MaxAge != "" {
		if v := os.Getenv(env.MaxAge); v != "" {
			c.MaxAge = v
		}
	}
	if env.CleanupRetries != "" {
		if v := os.Getenv(env.CleanupRetries); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.CleanupRetries = n
			}
		}
	}
	if env.CleanupBackoff != "" {
		if v := os.Getenv(env.CleanupBackoff); v != "" {
			c.CleanupBackoff = v
		}
	}
	if env.SweepWorkers != "" {
		if v := os.Getenv(env.SweepWorkers); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.SweepWorkers = n
			}
		}
	}
}

func (c *Config) validate() error {
	if c.Dir == "" {
		return fmt.Errorf("dir required")
	}
	if _, err := time.ParseDuration(c.MaxAge); err != nil {
		return fmt.Errorf("invalid max_age: %w", err)
	}
	if _, err := time.ParseDuration(c.CleanupBackoff); err != nil {
		return fmt.Errorf("invalid cleanup_backoff: %w", err)
	}
	if c.CleanupRetries < 1 {
		return fmt.Errorf("cleanup_retries must be positive: %d", c.CleanupRetries)
	}
	return nil
}
