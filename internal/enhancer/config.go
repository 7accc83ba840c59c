package enhancer

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds caption enhancement parameters. An empty APIKey leaves the
// enhancer disabled for the life of the instance.
type Config struct {
	APIKey          string  `toml:"api_key"`
	Model           string  `toml:"model"`
	Timeout         string  `toml:"timeout"`
	MinOverlap      float64 `toml:"min_overlap"`
	SimulateLatency bool    `toml:"simulate_latency"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	APIKey          string
	Model           string
	Timeout         string
	MinOverlap      string
	SimulateLatency string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
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

// Merge overwrites non-zero fields from overlay. SimulateLatency always applies.
func (c *Config) Merge(overlay *Config) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MinOverlap != 0 {
		c.MinOverlap = overlay.MinOverlap
	}
	c.SimulateLatency = overlay.SimulateLatency
}

func (c *Config) loadDefaults() {
	if c.Model == "" {
		c.Model = "gemini-2.5-flash"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.MinOverlap == 0 {
		c.MinOverlap = 0.2
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.Model != "" {
		if v := os.Getenv(env.Model); v != "" {
			c.Model = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MinOverlap != "" {
		if v := os.Getenv(env.MinOverlap); v != "" {
			if ratio, err := strconv.ParseFloat(v, 64); err == nil {
				c.MinOverlap = ratio
			}
		}
	}
	if env.SimulateLatency != "" {
		if v := os.Getenv(env.SimulateLatency); v != "" {
			if simulate, err := strconv.ParseBool(v); err == nil {
				c.SimulateLatency = simulate
			}
		}
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.MinOverlap < 0 || c.MinOverlap > 1 {
		return fmt.Errorf("min_overlap must be within [0, 1]: %g", c.MinOverlap)
	}
	return nil
}
